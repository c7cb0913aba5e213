package datalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wbrown/caveat-datalog/datalog"
)

func TestValueEqual(t *testing.T) {
	cases := []struct {
		name  string
		a, b  datalog.Value
		equal bool
	}{
		{"same symbol", datalog.Symbol(1), datalog.Symbol(1), true},
		{"different symbol", datalog.Symbol(1), datalog.Symbol(2), false},
		{"same integer", datalog.Integer(42), datalog.Integer(42), true},
		{"different kind same payload shape", datalog.Integer(0), datalog.Bool(false), false},
		{"same string", datalog.Str("a"), datalog.Str("a"), true},
		{"different string", datalog.Str("a"), datalog.Str("b"), false},
		{"same bytes content", datalog.Bytes([]byte("ab")), datalog.Bytes([]byte("ab")), true},
		{"different bytes content", datalog.Bytes([]byte("ab")), datalog.Bytes([]byte("ac")), false},
		{"same date", datalog.Date(100), datalog.Date(100), true},
		{"same bool", datalog.Bool(true), datalog.Bool(true), true},
		{"variable identity", datalog.Variable(3), datalog.Variable(3), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.equal, c.a.Equal(c.b))
		})
	}
}

func TestValueBytesAreCopied(t *testing.T) {
	raw := []byte("hello")
	v := datalog.Bytes(raw)
	raw[0] = 'X'
	require.Equal(t, "hello", string(v.BytesValue()))
}

func TestValueHashKeyDistinguishesBytesByContent(t *testing.T) {
	a := datalog.Bytes([]byte("ab"))
	b := datalog.Bytes([]byte("ab"))
	c := datalog.Bytes([]byte("cd"))
	require.Equal(t, a.HashKey(), b.HashKey())
	require.NotEqual(t, a.HashKey(), c.HashKey())
}

func TestValueStringNeverResolvesSymbols(t *testing.T) {
	// Value.String is display-only and has no access to a symbol table,
	// so a Symbol always renders as its numeric id.
	require.Equal(t, "#7", datalog.Symbol(7).String())
}
