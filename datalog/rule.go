package datalog

import "fmt"

// Rule is a Horn-clause-style implication: a body conjunction (plus
// constraints and expressions as filters) implies the head.
type Rule struct {
	Head        Predicate
	Body        []Predicate
	Constraints []Constraint
	Expressions []Expression
}

// ErrHeadVariableUnbound is returned by the Rule builders when the
// head references a Variable that never appears in the body. A rule
// shaped this way can never safely fire -- applying it would either
// have to skip the head slot (silently dropping part of the derived
// fact) or emit a Fact containing a residual Variable, neither of
// which is a valid Fact. Rejecting it at construction turns that into
// a construction error instead of a silent runtime surprise.
type ErrHeadVariableUnbound struct {
	VariableID uint32
}

func (e ErrHeadVariableUnbound) Error() string {
	return fmt.Sprintf("datalog: head references variable $%d not bound by the body", e.VariableID)
}

func bodyVariables(body []Predicate) map[uint32]struct{} {
	vars := make(map[uint32]struct{})
	for _, p := range body {
		for _, a := range p.Args {
			if a.IsVariable() {
				vars[a.VariableID()] = struct{}{}
			}
		}
	}
	return vars
}

func checkHeadVariables(head Predicate, bodyVars map[uint32]struct{}) error {
	for _, a := range head.Args {
		if !a.IsVariable() {
			continue
		}
		if _, ok := bodyVars[a.VariableID()]; !ok {
			return ErrHeadVariableUnbound{VariableID: a.VariableID()}
		}
	}
	return nil
}

// NewRule builds an unconstrained rule, validating that every head
// variable is bound by the body -- see ErrHeadVariableUnbound.
func NewRule(head Predicate, body ...Predicate) (Rule, error) {
	return newRule(head, body, nil, nil)
}

// NewConstrainedRule builds a rule with per-variable constraints.
func NewConstrainedRule(head Predicate, body []Predicate, constraints []Constraint) (Rule, error) {
	return newRule(head, body, constraints, nil)
}

// NewExpressedRule builds a rule with boolean filter expressions.
func NewExpressedRule(head Predicate, body []Predicate, expressions []Expression) (Rule, error) {
	return newRule(head, body, nil, expressions)
}

// NewFullRule builds a rule with both constraints and expressions.
func NewFullRule(head Predicate, body []Predicate, constraints []Constraint, expressions []Expression) (Rule, error) {
	return newRule(head, body, constraints, expressions)
}

func newRule(head Predicate, body []Predicate, constraints []Constraint, expressions []Expression) (Rule, error) {
	bodyVars := bodyVariables(body)
	if err := checkHeadVariables(head, bodyVars); err != nil {
		return Rule{}, err
	}
	bodyCopy := make([]Predicate, len(body))
	copy(bodyCopy, body)
	constraintsCopy := make([]Constraint, len(constraints))
	copy(constraintsCopy, constraints)
	expressionsCopy := make([]Expression, len(expressions))
	copy(expressionsCopy, expressions)
	return Rule{
		Head:        head.Clone(),
		Body:        bodyCopy,
		Constraints: constraintsCopy,
		Expressions: expressionsCopy,
	}, nil
}

// Apply runs the join iterator over facts and substitutes each
// emitted binding into the rule's head, producing the new Facts this
// rule derives. Duplicate detection is the caller's (World's)
// responsibility -- Apply may emit the same Fact more than once if
// multiple distinct binding sequences produce it.
func (r Rule) Apply(facts *FactSet) []Fact {
	initial := NewMatchedVariables(bodyVariables(r.Body))
	it := NewJoinIterator(initial, r.Body, r.Constraints, r.Expressions, facts)

	var produced []Fact
	for it.Next() {
		env := it.Bindings()
		head := r.Head.Clone()
		complete := true
		for i, a := range head.Args {
			if !a.IsVariable() {
				continue
			}
			bound, ok := env[a.VariableID()]
			if !ok {
				// Unreachable given construction-time validation
				// (every head variable is guaranteed present in the
				// body, and the join only emits complete bindings),
				// but skip rather than emit a Fact with a residual
				// Variable if it ever happens.
				complete = false
				break
			}
			head.Args[i] = bound
		}
		if !complete {
			continue
		}
		produced = append(produced, Fact{head})
	}
	return produced
}
