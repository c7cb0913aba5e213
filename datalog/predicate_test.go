package datalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wbrown/caveat-datalog/datalog"
)

func TestPredicateMatches(t *testing.T) {
	pattern := datalog.NewPredicate(1, datalog.Variable(0), datalog.Integer(5))
	ground := datalog.NewPredicate(1, datalog.Symbol(9), datalog.Integer(5))
	require.True(t, pattern.Matches(ground))

	mismatchValue := datalog.NewPredicate(1, datalog.Symbol(9), datalog.Integer(6))
	require.False(t, pattern.Matches(mismatchValue))

	wrongArity := datalog.NewPredicate(1, datalog.Variable(0))
	require.False(t, pattern.Matches(wrongArity))

	wrongName := datalog.NewPredicate(2, datalog.Symbol(9), datalog.Integer(5))
	require.False(t, pattern.Matches(wrongName))
}

func TestPredicateMatchesBothSidesVariable(t *testing.T) {
	a := datalog.NewPredicate(1, datalog.Variable(0))
	b := datalog.NewPredicate(1, datalog.Variable(7))
	require.True(t, a.Matches(b))
}

func TestPredicateCloneIsIndependent(t *testing.T) {
	p := datalog.NewPredicate(1, datalog.Integer(1))
	clone := p.Clone()
	clone.Args[0] = datalog.Integer(2)
	require.Equal(t, int64(1), p.Args[0].IntegerValue())
}

func TestFactSetInsertDeduplicates(t *testing.T) {
	s := datalog.NewFactSet()
	f := datalog.NewFact(1, datalog.Integer(1))
	require.True(t, s.Insert(f))
	require.False(t, s.Insert(f))
	require.Equal(t, 1, s.Len())
}

func TestFactSetCloneIsIndependent(t *testing.T) {
	s := datalog.NewFactSet()
	s.Insert(datalog.NewFact(1, datalog.Integer(1)))
	clone := s.Clone()
	clone.Insert(datalog.NewFact(1, datalog.Integer(2)))
	require.Equal(t, 1, s.Len())
	require.Equal(t, 2, clone.Len())
}
