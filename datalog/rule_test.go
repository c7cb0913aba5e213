package datalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wbrown/caveat-datalog/datalog"
)

func TestRuleApplyProducesExpectedFacts(t *testing.T) {
	const (
		parent      = uint64(10)
		grandparent = uint64(11)
	)
	facts := datalog.NewFactSet()
	facts.Insert(datalog.NewFact(parent, datalog.Symbol(1), datalog.Symbol(2)))
	facts.Insert(datalog.NewFact(parent, datalog.Symbol(2), datalog.Symbol(3)))

	x, y, z := datalog.Variable(0), datalog.Variable(1), datalog.Variable(2)
	rule, err := datalog.NewRule(
		datalog.NewPredicate(grandparent, x, z),
		datalog.NewPredicate(parent, x, y),
		datalog.NewPredicate(parent, y, z),
	)
	require.NoError(t, err)

	produced := rule.Apply(facts)
	require.Len(t, produced, 1)
	require.Equal(t, uint64(1), produced[0].Args[0].SymbolID())
	require.Equal(t, uint64(3), produced[0].Args[1].SymbolID())
}

func TestNewFullRuleAppliesConstraintsAndExpressions(t *testing.T) {
	const item = uint64(1)
	const positiveItem = uint64(2)
	facts := datalog.NewFactSet()
	facts.Insert(datalog.NewFact(item, datalog.Integer(3)))
	facts.Insert(datalog.NewFact(item, datalog.Integer(-1)))
	facts.Insert(datalog.NewFact(item, datalog.Integer(0)))

	n := datalog.Variable(0)
	// Expression filter requires n+0 > 0, stricter than the constraint
	// (n > -10), to exercise both filter layers on the same rule: every
	// fact passes the constraint, and the expression drops -1 and 0.
	expr := datalog.NewExpression(
		datalog.PushValue(n),
		datalog.PushValue(datalog.Integer(0)),
		datalog.Binary(datalog.OpAdd),
		datalog.PushValue(datalog.Integer(0)),
		datalog.Binary(datalog.OpGreaterThan),
	)
	rule, err := datalog.NewFullRule(
		datalog.NewPredicate(positiveItem, n),
		[]datalog.Predicate{datalog.NewPredicate(item, n)},
		[]datalog.Constraint{
			{TargetVariable: 0, Matcher: datalog.IntegerComparisonMatcher{Comparison: datalog.IntegerGreaterThan, Operand: -10}},
		},
		[]datalog.Expression{expr},
	)
	require.NoError(t, err)

	produced := rule.Apply(facts)
	require.Len(t, produced, 1)
	require.Equal(t, int64(3), produced[0].Args[0].IntegerValue())
}

func TestRuleApplyIsDeterministicAsASet(t *testing.T) {
	const (
		parent      = uint64(10)
		grandparent = uint64(11)
	)
	facts := datalog.NewFactSet()
	facts.Insert(datalog.NewFact(parent, datalog.Symbol(1), datalog.Symbol(2)))
	facts.Insert(datalog.NewFact(parent, datalog.Symbol(2), datalog.Symbol(3)))
	facts.Insert(datalog.NewFact(parent, datalog.Symbol(2), datalog.Symbol(4)))

	x, y, z := datalog.Variable(0), datalog.Variable(1), datalog.Variable(2)
	rule, err := datalog.NewRule(
		datalog.NewPredicate(grandparent, x, z),
		datalog.NewPredicate(parent, x, y),
		datalog.NewPredicate(parent, y, z),
	)
	require.NoError(t, err)

	first := rule.Apply(facts)
	second := rule.Apply(facts)

	toSet := func(fs []datalog.Fact) map[string]bool {
		out := make(map[string]bool, len(fs))
		for _, f := range fs {
			out[f.Args[0].String()+"/"+f.Args[1].String()] = true
		}
		return out
	}
	require.Equal(t, toSet(first), toSet(second))
}
