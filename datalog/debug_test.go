package datalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wbrown/caveat-datalog/datalog"
)

func TestDebuggerResolvesSymbols(t *testing.T) {
	syms := datalog.NewInMemorySymbolTable()
	parent := syms.Intern("parent")
	alice := syms.Intern("alice")
	bob := syms.Intern("bob")

	dbg := datalog.Debugger{Symbols: syms}
	pred := datalog.NewPredicate(parent, datalog.Symbol(alice), datalog.Symbol(bob))

	require.Equal(t, "#parent(#alice, #bob)", dbg.Predicate(pred))
}

func TestDebuggerUnknownSymbolIsMarked(t *testing.T) {
	syms := datalog.NewInMemorySymbolTable()
	dbg := datalog.Debugger{Symbols: syms}

	require.Equal(t, "#<unknown:42>", dbg.Value(datalog.Symbol(42)))
}

func TestDebuggerNonSymbolValuesUseStringer(t *testing.T) {
	syms := datalog.NewInMemorySymbolTable()
	dbg := datalog.Debugger{Symbols: syms}

	require.Equal(t, datalog.Integer(7).String(), dbg.Value(datalog.Integer(7)))
}

func TestDebuggerWorldRendersFactsAndRules(t *testing.T) {
	syms := datalog.NewInMemorySymbolTable()
	parent := syms.Intern("parent")
	grandparent := syms.Intern("grandparent")
	a, b := syms.Intern("a"), syms.Intern("b")

	w := datalog.NewWorld()
	w.AddFact(datalog.NewFact(parent, datalog.Symbol(a), datalog.Symbol(b)))

	x, y, z := datalog.Variable(0), datalog.Variable(1), datalog.Variable(2)
	rule, err := datalog.NewRule(
		datalog.NewPredicate(grandparent, x, z),
		datalog.NewPredicate(parent, x, y),
		datalog.NewPredicate(parent, y, z),
	)
	require.NoError(t, err)
	w.AddRule(rule)

	dbg := datalog.Debugger{Symbols: syms}
	out := dbg.World(w)
	require.Contains(t, out, "#parent(#a, #b)")
	require.Contains(t, out, "#grandparent")
}
