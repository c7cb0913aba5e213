package snapshot_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wbrown/caveat-datalog/datalog"
	"github.com/wbrown/caveat-datalog/snapshot"
)

func openTestStore(t *testing.T) *snapshot.Store {
	t.Helper()
	store, err := snapshot.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStorePutAndLoadFacts(t *testing.T) {
	const parent = uint64(1)
	store := openTestStore(t)

	f1 := datalog.NewFact(parent, datalog.Symbol(1), datalog.Symbol(2))
	f2 := datalog.NewFact(parent, datalog.Symbol(2), datalog.Symbol(3))
	require.NoError(t, store.Put(f1))
	require.NoError(t, store.Put(f2))

	loaded, err := store.LoadFacts()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	matches := func(f datalog.Fact) bool {
		for _, l := range loaded {
			if l.Predicate.Equal(f.Predicate) {
				return true
			}
		}
		return false
	}
	require.True(t, matches(f1))
	require.True(t, matches(f2))
}

func TestStorePutIsIdempotent(t *testing.T) {
	const item = uint64(1)
	store := openTestStore(t)

	f := datalog.NewFact(item, datalog.Integer(5))
	require.NoError(t, store.Put(f))
	require.NoError(t, store.Put(f))

	count, err := store.Count()
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestStoreSaveAndLoadWorld(t *testing.T) {
	const parent = uint64(1)
	const grandparent = uint64(2)
	dir := t.TempDir()

	w := datalog.NewWorld()
	w.AddFact(datalog.NewFact(parent, datalog.Symbol(1), datalog.Symbol(2)))
	w.AddFact(datalog.NewFact(parent, datalog.Symbol(2), datalog.Symbol(3)))

	x, y, z := datalog.Variable(0), datalog.Variable(1), datalog.Variable(2)
	rule, err := datalog.NewRule(
		datalog.NewPredicate(grandparent, x, z),
		datalog.NewPredicate(parent, x, y),
		datalog.NewPredicate(parent, y, z),
	)
	require.NoError(t, err)
	w.AddRule(rule)
	require.NoError(t, w.Run())

	store, err := snapshot.Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveWorld(w))
	require.NoError(t, store.Close())

	loaded, store2, err := snapshot.LoadWorld(dir)
	require.NoError(t, err)
	defer store2.Close()

	require.Equal(t, w.Facts().Len(), loaded.Facts().Len())
	results := loaded.Query(datalog.NewPredicate(grandparent, datalog.Variable(0), datalog.Variable(1)))
	require.Len(t, results, 1)
}

func TestStoreCountOnEmptyStore(t *testing.T) {
	store := openTestStore(t)
	count, err := store.Count()
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
