package datalog

// Predicate is a named tuple of Values. Arity (len(Args)) is part of
// its identity for matching purposes: a Predicate never implicitly
// pads or truncates against another of different arity.
type Predicate struct {
	Name uint64
	Args []Value
}

// NewPredicate builds a Predicate, copying args defensively.
func NewPredicate(name uint64, args ...Value) Predicate {
	cp := make([]Value, len(args))
	copy(cp, args)
	return Predicate{Name: name, Args: cp}
}

// Arity returns the number of arguments.
func (p Predicate) Arity() int { return len(p.Args) }

// Equal is structural equality: same name, same arity, every
// positional argument pairwise Equal.
func (p Predicate) Equal(o Predicate) bool {
	if p.Name != o.Name || len(p.Args) != len(o.Args) {
		return false
	}
	for i, a := range p.Args {
		if !a.Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Matches is a one-step compatibility test: it is not a binding, only
// a check that p (typically a rule-body pattern, possibly containing
// Variables) is compatible with o (typically a ground Fact's
// predicate). Names and arities must be equal; for each positional
// pair, if either side is a Variable they're compatible, otherwise
// both must carry the same Kind and equal payload.
func (p Predicate) Matches(o Predicate) bool {
	if p.Name != o.Name || len(p.Args) != len(o.Args) {
		return false
	}
	for i, a := range p.Args {
		b := o.Args[i]
		if a.IsVariable() || b.IsVariable() {
			continue
		}
		if a.Kind() != b.Kind() || !a.Equal(b) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy (the Args slice is not shared).
func (p Predicate) Clone() Predicate {
	cp := make([]Value, len(p.Args))
	copy(cp, p.Args)
	return Predicate{Name: p.Name, Args: cp}
}

// IsGround reports whether no argument is a Variable. A Predicate
// with no variables is eligible to be a Fact.
func (p Predicate) IsGround() bool {
	for _, a := range p.Args {
		if a.IsVariable() {
			return false
		}
	}
	return true
}

// Fact is a ground Predicate: stored in the World's fact set, never
// containing a Variable argument.
type Fact struct {
	Predicate
}

// NewFact builds a Fact from a name and ground args. A Variable
// argument is legal only inside rule bodies/heads/expressions, never
// in a stored Fact; passing one here is a caller error that is not
// validated since Facts are hot-path constructed by rule firing --
// callers that need validation should check IsGround first.
func NewFact(name uint64, args ...Value) Fact {
	return Fact{NewPredicate(name, args...)}
}

// FactSet is a duplicate-free, unordered collection of Facts.
type FactSet struct {
	facts []Fact
}

// NewFactSet builds an empty FactSet.
func NewFactSet() *FactSet {
	return &FactSet{}
}

// Len returns the number of distinct facts.
func (s *FactSet) Len() int { return len(s.facts) }

// Slice returns the facts as a slice. The returned slice must not be
// mutated by the caller.
func (s *FactSet) Slice() []Fact { return s.facts }

// Contains reports whether an equal fact is already present.
func (s *FactSet) Contains(f Fact) bool {
	for _, existing := range s.facts {
		if existing.Predicate.Equal(f.Predicate) {
			return true
		}
	}
	return false
}

// Insert adds f if not already present. Returns true if it was newly
// added.
func (s *FactSet) Insert(f Fact) bool {
	if s.Contains(f) {
		return false
	}
	s.facts = append(s.facts, f)
	return true
}

// InsertAll inserts every fact in facts, returning how many were new.
func (s *FactSet) InsertAll(facts []Fact) int {
	added := 0
	for _, f := range facts {
		if s.Insert(f) {
			added++
		}
	}
	return added
}

// Clone returns a shallow copy with an independent backing slice, so
// appends to the clone never alias the original (used by World.Clone).
func (s *FactSet) Clone() *FactSet {
	cp := make([]Fact, len(s.facts))
	copy(cp, s.facts)
	return &FactSet{facts: cp}
}
