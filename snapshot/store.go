package snapshot

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/wbrown/caveat-datalog/datalog"
)

// namespaceFact separates fact keys from any future key families sharing
// the same database (e.g. a later symbol-table checkpoint).
const namespaceFact byte = 0x01

// Store durably persists a World's facts across process restarts using
// a BadgerDB handle. Each Fact's encoded bytes double as its key, so
// Put is naturally idempotent: asserting a Fact that already exists on
// disk overwrites an identical value in place.
type Store struct {
	db *badger.DB
}

// Open creates or opens a BadgerDB-backed store rooted at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.MemTableSize = 64 << 20
	opts.ValueThreshold = 1 << 10

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open badger: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func factKey(f datalog.Fact) []byte {
	encoded := encodeFact(f)
	key := make([]byte, 0, len(encoded)+1)
	key = append(key, namespaceFact)
	key = append(key, encoded...)
	return key
}

// Put writes a single fact to disk.
func (s *Store) Put(f datalog.Fact) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := factKey(f)
		return txn.Set(key, key[1:])
	})
}

// PutAll writes every fact in facts to disk in a single transaction.
func (s *Store) PutAll(facts []datalog.Fact) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, f := range facts {
			key := factKey(f)
			if err := txn.Set(key, key[1:]); err != nil {
				return fmt.Errorf("snapshot: put fact: %w", err)
			}
		}
		return nil
	})
}

// SaveWorld persists every fact currently held by w, overwriting
// whatever facts were previously stored under the same keys.
func (s *Store) SaveWorld(w *datalog.World) error {
	return s.PutAll(w.Facts().Slice())
}

// LoadFacts reads back every fact previously written to the store.
func (s *Store) LoadFacts() ([]datalog.Fact, error) {
	var facts []datalog.Fact
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte{namespaceFact}
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				f, err := decodeFact(val)
				if err != nil {
					return err
				}
				facts = append(facts, f)
				return nil
			})
			if err != nil {
				return fmt.Errorf("snapshot: decode stored fact: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return facts, nil
}

// LoadWorld builds a new World seeded with every fact previously saved
// to the store, preserving opts for its run limits.
func LoadWorld(path string, opts ...datalog.WorldOption) (*datalog.World, *Store, error) {
	store, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	facts, err := store.LoadFacts()
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	w := datalog.NewWorld(opts...)
	for _, f := range facts {
		w.AddFact(f)
	}
	return w, store, nil
}

// Count returns the number of facts currently stored.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte{namespaceFact}
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
