package main

import (
	"fmt"

	"github.com/wbrown/caveat-datalog/datalog"
)

// scenario builds a World seeded with facts and rules, and names the
// predicate a plain `-query` invocation should print by default.
type scenario struct {
	description  string
	defaultQuery string
	build        func(sym datalog.SymbolTable) (*datalog.World, error)
}

// scenarios mirrors the seed cases used to validate the join engine:
// each one is small enough to read in a terminal, but exercises a
// distinct corner of the constraint/expression layer.
var scenarios = map[string]scenario{
	"grandparent": {
		description:  "transitive grandparent via a two-predicate body",
		defaultQuery: "grandparent",
		build:        buildGrandparentScenario,
	},
	"join": {
		description:  "integer equi-join across two tables with a constraint",
		defaultQuery: "join",
		build:        buildJoinScenario,
	},
	"suffix": {
		description:  "string suffix constraint over route hostnames",
		defaultQuery: "frRoute",
		build:        buildSuffixScenario,
	},
	"date": {
		description:  "date window constraints (before/after)",
		defaultQuery: "early",
		build:        buildDateScenario,
	},
	"expression": {
		description:  "stack-VM expression filter",
		defaultQuery: "passes",
		build:        buildExpressionScenario,
	},
	"set": {
		description:  "integer set membership constraint",
		defaultQuery: "inSet",
		build:        buildSetScenario,
	},
}

func buildGrandparentScenario(sym datalog.SymbolTable) (*datalog.World, error) {
	w := datalog.NewWorld()

	parent := sym.Intern("parent")
	grandparent := sym.Intern("grandparent")
	a, b, c, d := sym.Intern("A"), sym.Intern("B"), sym.Intern("C"), sym.Intern("D")

	w.AddFact(datalog.NewFact(parent, datalog.Symbol(a), datalog.Symbol(b)))
	w.AddFact(datalog.NewFact(parent, datalog.Symbol(b), datalog.Symbol(c)))
	w.AddFact(datalog.NewFact(parent, datalog.Symbol(c), datalog.Symbol(d)))

	x, y, z := datalog.Variable(0), datalog.Variable(1), datalog.Variable(2)
	rule, err := datalog.NewRule(
		datalog.NewPredicate(grandparent, x, z),
		datalog.NewPredicate(parent, x, y),
		datalog.NewPredicate(parent, y, z),
	)
	if err != nil {
		return nil, fmt.Errorf("grandparent rule: %w", err)
	}
	w.AddRule(rule)
	return w, nil
}

func buildJoinScenario(sym datalog.SymbolTable) (*datalog.World, error) {
	w := datalog.NewWorld()

	t1 := sym.Intern("t1")
	t2 := sym.Intern("t2")
	join := sym.Intern("join")

	t1Rows := []struct {
		id   int64
		name string
	}{
		{0, "abc"}, {1, "def"}, {2, "ghi"}, {3, "jkl"}, {4, "mno"},
	}
	for _, r := range t1Rows {
		w.AddFact(datalog.NewFact(t1, datalog.Integer(r.id), datalog.Str(r.name)))
	}

	t2Rows := []struct {
		tid   int64
		label string
		ref   int64
	}{
		{0, "AAA", 0}, {1, "BBB", 0}, {2, "CCC", 1},
	}
	for _, r := range t2Rows {
		w.AddFact(datalog.NewFact(t2, datalog.Integer(r.tid), datalog.Str(r.label), datalog.Integer(r.ref)))
	}

	id, l, r := datalog.Variable(0), datalog.Variable(1), datalog.Variable(2)
	rule, err := datalog.NewConstrainedRule(
		datalog.NewPredicate(join, l, r),
		[]datalog.Predicate{
			datalog.NewPredicate(t1, id, l),
			datalog.NewPredicate(t2, datalog.Variable(3), r, id),
		},
		[]datalog.Constraint{
			{TargetVariable: id.VariableID(), Matcher: datalog.IntegerComparisonMatcher{
				Comparison: datalog.IntegerLessThan, Operand: 1,
			}},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("join rule: %w", err)
	}
	w.AddRule(rule)
	return w, nil
}

func buildSuffixScenario(sym datalog.SymbolTable) (*datalog.World, error) {
	w := datalog.NewWorld()

	route := sym.Intern("route")
	frRoute := sym.Intern("frRoute")

	routes := []struct {
		id, app, host string
	}{
		{"r1", "a", "shop.example.fr"},
		{"r2", "b", "shop.example.com"},
		{"r3", "c", "api.example.com"},
		{"r4", "d", "admin.example.com"},
		{"r5", "e", "status.internal"},
	}
	for _, r := range routes {
		w.AddFact(datalog.NewFact(route,
			datalog.Symbol(sym.Intern(r.id)),
			datalog.Symbol(sym.Intern(r.app)),
			datalog.Str(r.host)))
	}

	id, app, host := datalog.Variable(0), datalog.Variable(1), datalog.Variable(2)
	rule, err := datalog.NewConstrainedRule(
		datalog.NewPredicate(frRoute, id, app, host),
		[]datalog.Predicate{datalog.NewPredicate(route, id, app, host)},
		[]datalog.Constraint{
			{TargetVariable: host.VariableID(), Matcher: datalog.StringComparisonMatcher{
				Comparison: datalog.StringSuffix, Operand: ".fr",
			}},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("suffix rule: %w", err)
	}
	w.AddRule(rule)
	return w, nil
}

func buildDateScenario(sym datalog.SymbolTable) (*datalog.World, error) {
	w := datalog.NewWorld()

	x := sym.Intern("x")
	early := sym.Intern("early")

	const t1, t2, t3 = 100, 200, 300
	w.AddFact(datalog.NewFact(x, datalog.Date(t1), datalog.Symbol(sym.Intern("abc"))))
	w.AddFact(datalog.NewFact(x, datalog.Date(t3), datalog.Symbol(sym.Intern("def"))))

	t, label := datalog.Variable(0), datalog.Variable(1)
	rule, err := datalog.NewConstrainedRule(
		datalog.NewPredicate(early, t, label),
		[]datalog.Predicate{datalog.NewPredicate(x, t, label)},
		[]datalog.Constraint{
			{TargetVariable: t.VariableID(), Matcher: datalog.DateComparisonMatcher{
				Comparison: datalog.DateBefore, Operand: t2,
			}},
			{TargetVariable: t.VariableID(), Matcher: datalog.DateComparisonMatcher{
				Comparison: datalog.DateAfter, Operand: 0,
			}},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("date rule: %w", err)
	}
	w.AddRule(rule)
	return w, nil
}

func buildExpressionScenario(sym datalog.SymbolTable) (*datalog.World, error) {
	w := datalog.NewWorld()

	x := sym.Intern("x")
	passes := sym.Intern("passes")

	w.AddFact(datalog.NewFact(x, datalog.Integer(-2), datalog.Symbol(sym.Intern("abc"))))
	w.AddFact(datalog.NewFact(x, datalog.Integer(0), datalog.Symbol(sym.Intern("def"))))

	nb, label := datalog.Variable(0), datalog.Variable(1)
	// -(5 + -4) < nb, i.e. -1 < nb
	expr := datalog.NewExpression(
		datalog.PushValue(datalog.Integer(5)),
		datalog.PushValue(datalog.Integer(-4)),
		datalog.Binary(datalog.OpAdd),
		datalog.Unary(datalog.OpNegate),
		datalog.PushValue(nb),
		datalog.Binary(datalog.OpLessThan),
	)
	rule, err := datalog.NewExpressedRule(
		datalog.NewPredicate(passes, nb, label),
		[]datalog.Predicate{datalog.NewPredicate(x, nb, label)},
		[]datalog.Expression{expr},
	)
	if err != nil {
		return nil, fmt.Errorf("expression rule: %w", err)
	}
	w.AddRule(rule)
	return w, nil
}

func buildSetScenario(sym datalog.SymbolTable) (*datalog.World, error) {
	w := datalog.NewWorld()

	x := sym.Intern("x")
	inSet := sym.Intern("inSet")

	abc, def := sym.Intern("abc"), sym.Intern("def")
	w.AddFact(datalog.NewFact(x, datalog.Symbol(abc), datalog.Integer(0), datalog.Str("test")))
	w.AddFact(datalog.NewFact(x, datalog.Symbol(def), datalog.Integer(2), datalog.Str("hello")))

	name, n, s := datalog.Variable(0), datalog.Variable(1), datalog.Variable(2)
	rule, err := datalog.NewConstrainedRule(
		datalog.NewPredicate(inSet, name, n, s),
		[]datalog.Predicate{datalog.NewPredicate(x, name, n, s)},
		[]datalog.Constraint{
			{TargetVariable: n.VariableID(), Matcher: datalog.IntegerSetMatcher{
				Set: map[int64]struct{}{0: {}, 1: {}},
			}},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("set rule: %w", err)
	}
	w.AddRule(rule)
	return w, nil
}
