package datalog

import (
	"fmt"
	"strings"
)

// Debugger renders engine values through a SymbolTable for display.
// Symbol resolution is purely cosmetic and never affects engine
// semantics -- every other type in this package resolves and compares
// on raw ids.
type Debugger struct {
	Symbols SymbolTable
}

func (d Debugger) symbolString(id uint64) string {
	if name, ok := d.Symbols.Lookup(id); ok {
		return "#" + name
	}
	return fmt.Sprintf("#<unknown:%d>", id)
}

// Value renders v, resolving Symbol ids to their interned name.
func (d Debugger) Value(v Value) string {
	if v.Kind() == KindSymbol {
		return d.symbolString(v.SymbolID())
	}
	return v.String()
}

// Predicate renders name(arg, arg, ...).
func (d Debugger) Predicate(p Predicate) string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = d.Value(a)
	}
	return fmt.Sprintf("%s(%s)", d.symbolString(p.Name), strings.Join(args, ", "))
}

// Fact renders a ground predicate the same way as Predicate.
func (d Debugger) Fact(f Fact) string {
	return d.Predicate(f.Predicate)
}

// Rule renders head <- body. Constraints and expressions are not
// included in the output.
func (d Debugger) Rule(r Rule) string {
	body := make([]string, len(r.Body))
	for i, p := range r.Body {
		body[i] = d.Predicate(p)
	}
	return fmt.Sprintf("%s <- %s", d.Predicate(r.Head), strings.Join(body, ", "))
}

// World renders the full fact set and rule list.
func (d Debugger) World(w *World) string {
	facts := make([]string, w.facts.Len())
	for i, f := range w.facts.Slice() {
		facts[i] = d.Fact(f)
	}
	rules := make([]string, len(w.rules))
	for i, r := range w.rules {
		rules[i] = d.Rule(r)
	}
	return fmt.Sprintf("World{\n\tfacts: %v\n\trules: %v\n}", facts, rules)
}

// FactSet renders a slice of facts.
func (d Debugger) FactSet(facts []Fact) string {
	strs := make([]string, len(facts))
	for i, f := range facts {
		strs[i] = d.Fact(f)
	}
	return fmt.Sprintf("%v", strs)
}
