package datalog

import (
	"regexp"
	"strings"
)

// IntegerComparison enumerates the integer constraint kinds.
type IntegerComparison byte

const (
	IntegerEqual IntegerComparison = iota
	IntegerLessThan
	IntegerGreaterThan
	IntegerLessOrEqual
	IntegerGreaterOrEqual
)

// StringComparison enumerates the string constraint kinds.
type StringComparison byte

const (
	StringEqual StringComparison = iota
	StringPrefix
	StringSuffix
)

// DateComparison enumerates the date constraint kinds.
type DateComparison byte

const (
	DateBefore DateComparison = iota // <=
	DateAfter                        // >=
)

// Matcher is a per-type value matcher. Implementations must return
// false (never panic, never error) on a type mismatch or a malformed
// pattern: a constraint that can't apply to the given value simply
// fails to match rather than aborting the query.
type Matcher interface {
	Match(Value) bool
}

// IntegerComparisonMatcher matches an Integer value against a single
// comparison.
type IntegerComparisonMatcher struct {
	Comparison IntegerComparison
	Operand    int64
}

func (m IntegerComparisonMatcher) Match(v Value) bool {
	if v.Kind() != KindInteger {
		return false
	}
	i := v.IntegerValue()
	switch m.Comparison {
	case IntegerEqual:
		return i == m.Operand
	case IntegerLessThan:
		return i < m.Operand
	case IntegerGreaterThan:
		return i > m.Operand
	case IntegerLessOrEqual:
		return i <= m.Operand
	case IntegerGreaterOrEqual:
		return i >= m.Operand
	default:
		return false
	}
}

// IntegerSetMatcher matches Integer membership (or non-membership) in
// a fixed set.
type IntegerSetMatcher struct {
	Set map[int64]struct{}
	Not bool
}

func (m IntegerSetMatcher) Match(v Value) bool {
	if v.Kind() != KindInteger {
		return false
	}
	_, in := m.Set[v.IntegerValue()]
	return in != m.Not
}

// StringComparisonMatcher matches equal/prefix/suffix against a Str value.
type StringComparisonMatcher struct {
	Comparison StringComparison
	Operand    string
}

func (m StringComparisonMatcher) Match(v Value) bool {
	if v.Kind() != KindString {
		return false
	}
	s := v.StringValue()
	switch m.Comparison {
	case StringEqual:
		return s == m.Operand
	case StringPrefix:
		return strings.HasPrefix(s, m.Operand)
	case StringSuffix:
		return strings.HasSuffix(s, m.Operand)
	default:
		return false
	}
}

// StringSetMatcher matches Str membership (or non-membership) in a set.
type StringSetMatcher struct {
	Set map[string]struct{}
	Not bool
}

func (m StringSetMatcher) Match(v Value) bool {
	if v.Kind() != KindString {
		return false
	}
	_, in := m.Set[v.StringValue()]
	return in != m.Not
}

// StringRegexMatcher matches a Str value against a regular expression.
// An unparseable pattern is precompiled to never match rather than
// surfacing a construction-time failure.
type StringRegexMatcher struct {
	re *regexp.Regexp
}

// NewStringRegexMatcher compiles pattern. A malformed pattern produces
// a matcher that always returns false from Match -- this constructor
// itself never errors.
func NewStringRegexMatcher(pattern string) StringRegexMatcher {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return StringRegexMatcher{re: nil}
	}
	return StringRegexMatcher{re: re}
}

func (m StringRegexMatcher) Match(v Value) bool {
	if m.re == nil || v.Kind() != KindString {
		return false
	}
	return m.re.MatchString(v.StringValue())
}

// DateComparisonMatcher matches Before (<=) / After (>=) against a Date value.
type DateComparisonMatcher struct {
	Comparison DateComparison
	Operand    uint64
}

func (m DateComparisonMatcher) Match(v Value) bool {
	if v.Kind() != KindDate {
		return false
	}
	d := v.DateValue()
	switch m.Comparison {
	case DateBefore:
		return d <= m.Operand
	case DateAfter:
		return d >= m.Operand
	default:
		return false
	}
}

// SymbolSetMatcher matches Symbol membership (or non-membership) in a set.
type SymbolSetMatcher struct {
	Set map[uint64]struct{}
	Not bool
}

func (m SymbolSetMatcher) Match(v Value) bool {
	if v.Kind() != KindSymbol {
		return false
	}
	_, in := m.Set[v.SymbolID()]
	return in != m.Not
}

// BytesEqualMatcher matches exact Bytes equality.
type BytesEqualMatcher struct {
	Operand []byte
}

func (m BytesEqualMatcher) Match(v Value) bool {
	if v.Kind() != KindBytes {
		return false
	}
	return Bytes(m.Operand).Equal(v)
}

// BytesSetMatcher matches Bytes membership (or non-membership) in a set,
// keyed by content since []byte isn't a valid map key.
type BytesSetMatcher struct {
	Set map[string]struct{}
	Not bool
}

func (m BytesSetMatcher) Match(v Value) bool {
	if v.Kind() != KindBytes {
		return false
	}
	_, in := m.Set[string(v.BytesValue())]
	return in != m.Not
}

// Constraint is a per-variable typed unary filter: it applies only
// when the candidate binding is for TargetVariable, otherwise it
// trivially passes.
type Constraint struct {
	TargetVariable uint32
	Matcher
}

// Check reports whether value satisfies the constraint for varID:
//   - if the constraint targets a different variable, it trivially passes;
//   - a Variable reaching this call is a programmer error (the value at
//     this point must already be ground, since it comes from a matched
//     Fact) and is reported via a typed panic value rather than a raw
//     string, so callers that want to turn it into an error can recover
//     and type-assert.
func (c Constraint) Check(varID uint32, value Value) bool {
	if c.TargetVariable != varID {
		return true
	}
	if value.IsVariable() {
		panic(ErrConstraintOnVariable{VariableID: varID})
	}
	return c.Match(value)
}

// ErrConstraintOnVariable is the panic value raised when Constraint.Check
// is asked to evaluate a Variable instead of a ground Value -- a
// programmer error, not a data-dependent failure.
type ErrConstraintOnVariable struct {
	VariableID uint32
}

func (e ErrConstraintOnVariable) Error() string {
	return "datalog: constraint check received an unbound variable instead of a ground value"
}
