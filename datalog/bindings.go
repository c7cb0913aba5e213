package datalog

// MatchedVariables is a partial assignment from variable id to Value,
// keyed over the union of Variable ids occurring in a rule body. A nil
// map entry means "declared but not yet bound", distinguishing "known
// variable, unbound" from "never mentioned".
type MatchedVariables map[uint32]*Value

// NewMatchedVariables declares every id in ids as unbound.
func NewMatchedVariables(ids map[uint32]struct{}) MatchedVariables {
	m := make(MatchedVariables, len(ids))
	for id := range ids {
		m[id] = nil
	}
	return m
}

// Insert attempts to bind k to v. If k is unbound, it is set and
// Insert returns true. If k is already bound, Insert succeeds (and
// leaves the binding untouched) only if the existing value equals v;
// a conflicting rebind returns false.
func (m MatchedVariables) Insert(k uint32, v Value) bool {
	existing := m[k]
	if existing == nil {
		cp := v
		m[k] = &cp
		return true
	}
	return existing.Equal(v)
}

// Complete returns the full variable->Value environment iff every
// declared variable is bound, or nil otherwise.
func (m MatchedVariables) Complete() map[uint32]Value {
	env := make(map[uint32]Value, len(m))
	for k, v := range m {
		if v == nil {
			return nil
		}
		env[k] = *v
	}
	return env
}

// Clone returns an independent copy; bound Value pointers are shared
// (Values are immutable once constructed) but the map itself is not.
func (m MatchedVariables) Clone() MatchedVariables {
	cp := make(MatchedVariables, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
