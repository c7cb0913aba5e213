// Package snapshot persists a World's fact set to disk so a long-lived
// caveat-verification process can warm-start from the last saturation
// instead of re-deriving every fact from scratch on every restart.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/wbrown/caveat-datalog/datalog"
)

// encodeFact serializes f into a self-delimiting byte string. The
// encoding doubles as the Badger key (see Store.Put): two equal Facts
// always encode to identical bytes, so writing the same Fact twice is
// naturally idempotent, the same set semantics FactSet.Insert gives
// the in-memory engine.
func encodeFact(f datalog.Fact) []byte {
	var buf bytes.Buffer
	putUvarint(&buf, f.Name)
	putUvarint(&buf, uint64(len(f.Args)))
	for _, arg := range f.Args {
		encodeValue(&buf, arg)
	}
	return buf.Bytes()
}

func decodeFact(b []byte) (datalog.Fact, error) {
	r := bytes.NewReader(b)
	name, err := binary.ReadUvarint(r)
	if err != nil {
		return datalog.Fact{}, fmt.Errorf("snapshot: decode fact name: %w", err)
	}
	arity, err := binary.ReadUvarint(r)
	if err != nil {
		return datalog.Fact{}, fmt.Errorf("snapshot: decode fact arity: %w", err)
	}
	args := make([]datalog.Value, arity)
	for i := range args {
		v, err := decodeValue(r)
		if err != nil {
			return datalog.Fact{}, fmt.Errorf("snapshot: decode fact arg %d: %w", i, err)
		}
		args[i] = v
	}
	return datalog.NewFact(name, args...), nil
}

const (
	tagSymbol byte = iota
	tagInteger
	tagString
	tagDate
	tagBytes
	tagBool
)

func encodeValue(buf *bytes.Buffer, v datalog.Value) {
	switch v.Kind() {
	case datalog.KindSymbol:
		buf.WriteByte(tagSymbol)
		putUvarint(buf, v.SymbolID())
	case datalog.KindInteger:
		buf.WriteByte(tagInteger)
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], uint64(v.IntegerValue()))
		buf.Write(tmp[:])
	case datalog.KindString:
		buf.WriteByte(tagString)
		s := v.StringValue()
		putUvarint(buf, uint64(len(s)))
		buf.WriteString(s)
	case datalog.KindDate:
		buf.WriteByte(tagDate)
		putUvarint(buf, v.DateValue())
	case datalog.KindBytes:
		buf.WriteByte(tagBytes)
		b := v.BytesValue()
		putUvarint(buf, uint64(len(b)))
		buf.Write(b)
	case datalog.KindBool:
		buf.WriteByte(tagBool)
		if v.BoolValue() {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	default:
		// A ground Fact's args never contain a Variable; encode as an
		// empty symbol so a stray one never corrupts the stream.
		buf.WriteByte(tagSymbol)
		putUvarint(buf, 0)
	}
}

func decodeValue(r *bytes.Reader) (datalog.Value, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return datalog.Value{}, err
	}
	switch tag {
	case tagSymbol:
		id, err := binary.ReadUvarint(r)
		if err != nil {
			return datalog.Value{}, err
		}
		return datalog.Symbol(id), nil
	case tagInteger:
		var tmp [8]byte
		if _, err := r.Read(tmp[:]); err != nil {
			return datalog.Value{}, err
		}
		return datalog.Integer(int64(binary.BigEndian.Uint64(tmp[:]))), nil
	case tagString:
		n, err := binary.ReadUvarint(r)
		if err != nil {
			return datalog.Value{}, err
		}
		s := make([]byte, n)
		if _, err := r.Read(s); err != nil {
			return datalog.Value{}, err
		}
		return datalog.Str(string(s)), nil
	case tagDate:
		ts, err := binary.ReadUvarint(r)
		if err != nil {
			return datalog.Value{}, err
		}
		return datalog.Date(ts), nil
	case tagBytes:
		n, err := binary.ReadUvarint(r)
		if err != nil {
			return datalog.Value{}, err
		}
		b := make([]byte, n)
		if _, err := r.Read(b); err != nil {
			return datalog.Value{}, err
		}
		return datalog.Bytes(b), nil
	case tagBool:
		b, err := r.ReadByte()
		if err != nil {
			return datalog.Value{}, err
		}
		return datalog.Bool(b != 0), nil
	default:
		return datalog.Value{}, fmt.Errorf("snapshot: unknown value tag %d", tag)
	}
}

func putUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}
