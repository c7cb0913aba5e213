package datalog

// UnaryOp enumerates the unary stack operations.
type UnaryOp byte

const (
	OpNegate UnaryOp = iota
)

// BinaryOp enumerates the binary stack operations.
type BinaryOp byte

const (
	OpLessThan BinaryOp = iota
	OpGreaterThan
	OpAdd
	OpAnd
)

// OpKind discriminates which field of Op is populated.
type OpKind byte

const (
	OpKindPushValue OpKind = iota
	OpKindUnary
	OpKindBinary
)

// Op is one instruction of an Expression's stack program: a pushed
// Value, a unary operator, or a binary operator.
type Op struct {
	kind   OpKind
	value  Value
	unary  UnaryOp
	binary BinaryOp
}

func PushValue(v Value) Op { return Op{kind: OpKindPushValue, value: v} }
func Unary(op UnaryOp) Op  { return Op{kind: OpKindUnary, unary: op} }
func Binary(op BinaryOp) Op { return Op{kind: OpKindBinary, binary: op} }

// Expression is an ordered sequence of stack operations evaluated
// against a complete variable binding to produce a single Value, used
// as a boolean rule filter.
type Expression struct {
	Ops []Op
}

// NewExpression builds an Expression from ops, copying defensively.
func NewExpression(ops ...Op) Expression {
	cp := make([]Op, len(ops))
	copy(cp, ops)
	return Expression{Ops: cp}
}

// Evaluate runs the stack program against env (a complete binding from
// variable id to Value):
//  1. empty stack;
//  2. for each op in order, push/pop per its kind, failing (ok=false)
//     on stack underflow, unbound variable, or type mismatch;
//  3. succeed iff exactly one value remains.
//
// A false ok is a binding failure: the caller must drop the candidate
// binding, not treat it as an engine error.
func (e Expression) Evaluate(env map[uint32]Value) (result Value, ok bool) {
	stack := make([]Value, 0, len(e.Ops))
	for _, op := range e.Ops {
		switch op.kind {
		case OpKindPushValue:
			v := op.value
			if v.IsVariable() {
				bound, present := env[v.VariableID()]
				if !present {
					return Value{}, false
				}
				stack = append(stack, bound)
			} else {
				stack = append(stack, v)
			}
		case OpKindUnary:
			if len(stack) < 1 {
				return Value{}, false
			}
			operand := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			res, evalOK := evaluateUnary(op.unary, operand)
			if !evalOK {
				return Value{}, false
			}
			stack = append(stack, res)
		case OpKindBinary:
			if len(stack) < 2 {
				return Value{}, false
			}
			// Pop right then left (stack order): the top of the stack
			// is the right-hand operand, as read left-to-right in
			// infix notation. LessThan/GreaterThan take left OP right,
			// never reversed.
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			res, evalOK := evaluateBinary(op.binary, left, right)
			if !evalOK {
				return Value{}, false
			}
			stack = append(stack, res)
		}
	}
	if len(stack) != 1 {
		return Value{}, false
	}
	return stack[0], true
}

func evaluateUnary(op UnaryOp, v Value) (Value, bool) {
	switch op {
	case OpNegate:
		switch v.Kind() {
		case KindInteger:
			// Two's-complement wraparound is intentional, not checked:
			// -math.MinInt64 wraps back to MinInt64.
			return Integer(-v.IntegerValue()), true
		case KindBool:
			return Bool(!v.BoolValue()), true
		default:
			return Value{}, false
		}
	default:
		return Value{}, false
	}
}

func evaluateBinary(op BinaryOp, left, right Value) (Value, bool) {
	switch op {
	case OpLessThan:
		if left.Kind() != KindInteger || right.Kind() != KindInteger {
			return Value{}, false
		}
		return Bool(left.IntegerValue() < right.IntegerValue()), true
	case OpGreaterThan:
		if left.Kind() != KindInteger || right.Kind() != KindInteger {
			return Value{}, false
		}
		return Bool(left.IntegerValue() > right.IntegerValue()), true
	case OpAdd:
		if left.Kind() != KindInteger || right.Kind() != KindInteger {
			return Value{}, false
		}
		// Two's-complement 64-bit wraparound on overflow, unchecked.
		return Integer(left.IntegerValue() + right.IntegerValue()), true
	case OpAnd:
		if left.Kind() != KindBool || right.Kind() != KindBool {
			return Value{}, false
		}
		return Bool(left.BoolValue() && right.BoolValue()), true
	default:
		return Value{}, false
	}
}
