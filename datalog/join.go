package datalog

// JoinIterator lazily enumerates the complete variable bindings that
// satisfy a rule body plus its constraints and expressions. Go has no
// generator/coroutine primitive, so the naturally recursive
// depth-first search is encoded as an explicit stack of
// per-body-position frames instead: each frame holds the incoming
// partial binding, the candidate facts for that position, and a
// cursor into them. Next() advances the top frame and pops
// (backtracks) when its candidates are exhausted, the same init ->
// scanning -> descending -> exhausted shape as a cursor-backed
// iterator, adapted here to scan an in-memory candidate slice instead
// of a database cursor.
type JoinIterator struct {
	body        []Predicate
	constraints []Constraint
	expressions []Expression

	candidatesByLevel [][]Fact
	stack             []*joinFrame

	started        bool
	emptyBodyDone  bool
	result         map[uint32]Value
}

type joinFrame struct {
	predIdx    int
	candidates []Fact
	idx        int
	varsIn     MatchedVariables
}

// NewJoinIterator builds a join over body, filtering the candidate
// fact list for each body position once up front -- valid because
// Predicate.Matches never depends on variable bindings, only on
// concrete-vs-concrete equality and arity/name, so candidates for
// position i can be computed independent of how position i-1 bound
// its variables.
func NewJoinIterator(initial MatchedVariables, body []Predicate, constraints []Constraint, expressions []Expression, facts *FactSet) *JoinIterator {
	it := &JoinIterator{
		body:        body,
		constraints: constraints,
		expressions: expressions,
	}
	if len(body) == 0 {
		it.started = true
		return it
	}
	all := facts.Slice()
	it.candidatesByLevel = make([][]Fact, len(body))
	for i, pred := range body {
		var candidates []Fact
		for _, f := range all {
			if pred.Matches(f.Predicate) {
				candidates = append(candidates, f)
			}
		}
		it.candidatesByLevel[i] = candidates
	}
	it.stack = []*joinFrame{{
		predIdx:    0,
		candidates: it.candidatesByLevel[0],
		idx:        0,
		varsIn:     initial,
	}}
	it.started = true
	return it
}

// Next advances to the next satisfying binding, returning false when
// the search space is exhausted. Bindings() returns the current
// binding only while Next() has most recently returned true.
func (it *JoinIterator) Next() bool {
	if len(it.body) == 0 {
		if it.emptyBodyDone {
			return false
		}
		it.emptyBodyDone = true
		env := map[uint32]Value{}
		if it.expressionsPass(env) {
			it.result = env
			return true
		}
		return false
	}

	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		if top.idx >= len(top.candidates) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		candidate := top.candidates[top.idx]
		top.idx++

		vars := top.varsIn.Clone()
		if !it.bindCandidate(vars, it.body[top.predIdx], candidate) {
			continue
		}

		nextPredIdx := top.predIdx + 1
		if nextPredIdx >= len(it.body) {
			env := vars.Complete()
			if env == nil {
				continue
			}
			if !it.expressionsPass(env) {
				continue
			}
			it.result = env
			return true
		}

		it.stack = append(it.stack, &joinFrame{
			predIdx:    nextPredIdx,
			candidates: it.candidatesByLevel[nextPredIdx],
			idx:        0,
			varsIn:     vars,
		})
	}
	return false
}

// bindCandidate attempts to extend vars with the bindings implied by
// matching pattern's variable positions against candidate's ground
// values, checking every applicable constraint along the way.
// Concrete (non-Variable) positions need no further check here:
// Predicate.Matches already guaranteed compatibility before candidate
// was admitted to this level's candidate list.
func (it *JoinIterator) bindCandidate(vars MatchedVariables, pattern Predicate, candidate Fact) bool {
	for j, patternArg := range pattern.Args {
		if !patternArg.IsVariable() {
			continue
		}
		k := patternArg.VariableID()
		v := candidate.Args[j]
		for _, c := range it.constraints {
			if !c.Check(k, v) {
				return false
			}
		}
		if !vars.Insert(k, v) {
			return false
		}
	}
	return true
}

// expressionsPass reports whether every expression evaluates to
// Bool(true) against env. An expression that fails to evaluate
// (unbound variable, stack underflow, type mismatch) counts as not
// passing -- a binding failure, never an engine error.
func (it *JoinIterator) expressionsPass(env map[uint32]Value) bool {
	for _, e := range it.expressions {
		res, ok := e.Evaluate(env)
		if !ok || res.Kind() != KindBool || !res.BoolValue() {
			return false
		}
	}
	return true
}

// Bindings returns the complete environment produced by the most
// recent Next() call that returned true.
func (it *JoinIterator) Bindings() map[uint32]Value {
	return it.result
}
