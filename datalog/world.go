package datalog

import (
	"errors"
	"time"
)

// Limit violations surfaced by RunWithLimits. All other validation
// failures (unification conflict, constraint rejection,
// expression-false, type mismatch, unbound variable) are binding
// failures that prune the current candidate silently and never reach
// the caller.
var (
	ErrTooManyFacts      = errors.New("datalog: world run limit: too many facts")
	ErrTooManyIterations = errors.New("datalog: world run limit: too many iterations")
	ErrTimeout           = errors.New("datalog: world run limit: timeout")
)

// RunLimits bounds a single World.Run/RunWithLimits saturation.
type RunLimits struct {
	MaxFacts      int
	MaxIterations int
	MaxTime       time.Duration
}

// DefaultRunLimits returns the conservative bounds a fresh World starts with.
func DefaultRunLimits() RunLimits {
	return RunLimits{
		MaxFacts:      1000,
		MaxIterations: 100,
		MaxTime:       time.Millisecond,
	}
}

// WorldOption configures a World at construction time via the usual
// option-function constructor style (WithMaxFacts/WithMaxIterations/WithMaxTime).
type WorldOption func(*World)

func WithMaxFacts(n int) WorldOption {
	return func(w *World) { w.limits.MaxFacts = n }
}

func WithMaxIterations(n int) WorldOption {
	return func(w *World) { w.limits.MaxIterations = n }
}

func WithMaxTime(d time.Duration) WorldOption {
	return func(w *World) { w.limits.MaxTime = d }
}

// World is the fact set + rule list + saturation driver. It is
// single-threaded and synchronous: callers must externally synchronize
// concurrent mutation, and a Query performed concurrently with Run
// needs either a Clone() snapshot or external locking.
type World struct {
	facts  *FactSet
	rules  []Rule
	limits RunLimits
}

// NewWorld constructs an empty World with conservative default run
// limits, overridable via options.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		facts:  NewFactSet(),
		limits: DefaultRunLimits(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddFact inserts f if not already present.
func (w *World) AddFact(f Fact) {
	w.facts.Insert(f)
}

// Facts returns the current fact set. Callers must not mutate it
// directly; use AddFact.
func (w *World) Facts() *FactSet {
	return w.facts
}

// AddRule appends r to the rule list. Rule application order within
// an iteration follows insertion order.
func (w *World) AddRule(r Rule) {
	w.rules = append(w.rules, r)
}

// Rules returns the rule list in insertion order.
func (w *World) Rules() []Rule {
	return w.rules
}

// Run saturates the World using its configured limits. It is
// equivalent to RunWithLimits(w.limits).
func (w *World) Run() error {
	return w.RunWithLimits(w.limits)
}

// RunWithLimits implements the fixpoint driver: for each iteration,
// apply every rule, union the newly derived facts into the fact set,
// and stop when no new facts were added (success) or one of the three
// limits trips (failure). Facts only ever grow -- the World is
// monotonic across Run calls, and a Run immediately following a
// successful Run adds zero facts.
func (w *World) RunWithLimits(limits RunLimits) error {
	deadline := time.Now().Add(limits.MaxTime)

	for iteration := 0; ; iteration++ {
		var newFacts []Fact
		for _, r := range w.rules {
			newFacts = append(newFacts, r.Apply(w.facts)...)
		}

		before := w.facts.Len()
		w.facts.InsertAll(newFacts)
		after := w.facts.Len()

		if after == before {
			return nil
		}

		if iteration+1 >= limits.MaxIterations {
			return ErrTooManyIterations
		}
		if after >= limits.MaxFacts {
			return ErrTooManyFacts
		}
		if !time.Now().Before(deadline) {
			return ErrTimeout
		}
	}
}

// Query is a non-mutating filter of the fact set against pred: a
// Variable slot in pred acts as a wildcard, a concrete slot must equal
// the fact's value at that position.
func (w *World) Query(pred Predicate) []Fact {
	var res []Fact
	for _, f := range w.facts.Slice() {
		if pred.Matches(f.Predicate) {
			res = append(res, f)
		}
	}
	return res
}

// QueryRule applies rule against the current fact set without
// inserting the results into the World.
func (w *World) QueryRule(rule Rule) []Fact {
	return rule.Apply(w.facts)
}

// Clone returns a World with an independent fact set (so the clone's
// Run can't mutate the original), a copy of the rule list, and the
// same limits -- useful for speculative "does this caveat hold" checks.
func (w *World) Clone() *World {
	return &World{
		facts:  w.facts.Clone(),
		rules:  append([]Rule{}, w.rules...),
		limits: w.limits,
	}
}
