package expr

import (
	"time"

	"github.com/oarkflow/schemacore/value"
)

// Limits bounds a single evaluation, realizing "Runtime
// limits... configurable maximum recursion depth and maximum execution
// time".
type Limits struct {
	MaxDepth int
	Timeout  time.Duration
}

// DefaultLimits matches memory-limit defaults (expression depth
// 100) with no execution timeout.
func DefaultLimits() Limits {
	return Limits{MaxDepth: 100}
}

type evaluator struct {
	funcs    *Functions
	limits   Limits
	depth    int
	deadline time.Time
	hasDL    bool
}

// Eval tree-walks n against ctx using the given function registry and
// limits: undefined variables error, division by zero errors,
// incompatible comparisons error (except null==null), and/or
// short-circuit, and ternary evaluates only the taken branch.
func Eval(n Node, ctx Context, funcs *Functions, limits Limits) (value.Value, error) {
	ev := &evaluator{funcs: funcs, limits: limits}
	if limits.Timeout > 0 {
		ev.deadline = time.Now().Add(limits.Timeout)
		ev.hasDL = true
	}
	return ev.eval(n, ctx)
}

func (ev *evaluator) checkLimits() error {
	if ev.limits.MaxDepth > 0 && ev.depth > ev.limits.MaxDepth {
		return newErr(ErrRuntimeLimit, -1, "maximum recursion depth %d exceeded", ev.limits.MaxDepth)
	}
	if ev.hasDL && time.Now().After(ev.deadline) {
		return newErr(ErrRuntimeLimit, -1, "expression evaluation exceeded its time budget")
	}
	return nil
}

func (ev *evaluator) eval(n Node, ctx Context) (value.Value, error) {
	ev.depth++
	defer func() { ev.depth-- }()
	if err := ev.checkLimits(); err != nil {
		return value.Value{}, err
	}

	switch t := n.(type) {
	case Literal:
		return t.Value, nil
	case Var:
		v, ok := ctx.Lookup(t.Name)
		if !ok {
			return value.Value{}, newErr(ErrUnknownVariable, -1, "undefined variable %q", t.Name)
		}
		return v, nil
	case Field:
		base, err := ev.eval(t.Base, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if base.Kind() != value.KindObject {
			return value.Value{}, newErr(ErrTypeMismatch, -1, "cannot access field %q on non-object value", t.Name)
		}
		f, ok := base.Field(t.Name)
		if !ok {
			return value.Value{}, newErr(ErrUnknownVariable, -1, "undefined field %q", t.Name)
		}
		return f, nil
	case Unary:
		return ev.evalUnary(t, ctx)
	case Binary:
		return ev.evalBinary(t, ctx)
	case Ternary:
		cond, err := ev.eval(t.Cond, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if cond.Kind() != value.KindBool {
			return value.Value{}, newErr(ErrTypeMismatch, -1, "ternary condition must be boolean")
		}
		if cond.Bool() {
			return ev.eval(t.Then, ctx)
		}
		return ev.eval(t.Else, ctx)
	case Call:
		return ev.evalCall(t, ctx)
	default:
		return value.Value{}, newErr(ErrParse, -1, "unknown AST node type %T", n)
	}
}

func (ev *evaluator) evalUnary(u Unary, ctx Context) (value.Value, error) {
	v, err := ev.eval(u.Expr, ctx)
	if err != nil {
		return value.Value{}, err
	}
	switch u.Op {
	case "not":
		if v.Kind() != value.KindBool {
			return value.Value{}, newErr(ErrTypeMismatch, -1, "'not' requires a boolean operand")
		}
		return value.Bool(!v.Bool()), nil
	case "-":
		switch v.Kind() {
		case value.KindInt:
			return value.Int(-v.Int()), nil
		case value.KindFloat:
			return value.Float(-v.Float()), nil
		default:
			return value.Value{}, newErr(ErrTypeMismatch, -1, "unary '-' requires a numeric operand")
		}
	default:
		return value.Value{}, newErr(ErrParse, -1, "unknown unary operator %q", u.Op)
	}
}

func (ev *evaluator) evalBinary(b Binary, ctx Context) (value.Value, error) {
	switch b.Op {
	case "and":
		left, err := ev.eval(b.Left, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if left.Kind() != value.KindBool {
			return value.Value{}, newErr(ErrTypeMismatch, -1, "'and' requires boolean operands")
		}
		if !left.Bool() {
			return value.Bool(false), nil
		}
		right, err := ev.eval(b.Right, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if right.Kind() != value.KindBool {
			return value.Value{}, newErr(ErrTypeMismatch, -1, "'and' requires boolean operands")
		}
		return value.Bool(right.Bool()), nil
	case "or":
		left, err := ev.eval(b.Left, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if left.Kind() != value.KindBool {
			return value.Value{}, newErr(ErrTypeMismatch, -1, "'or' requires boolean operands")
		}
		if left.Bool() {
			return value.Bool(true), nil
		}
		right, err := ev.eval(b.Right, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if right.Kind() != value.KindBool {
			return value.Value{}, newErr(ErrTypeMismatch, -1, "'or' requires boolean operands")
		}
		return value.Bool(right.Bool()), nil
	}

	left, err := ev.eval(b.Left, ctx)
	if err != nil {
		return value.Value{}, err
	}
	right, err := ev.eval(b.Right, ctx)
	if err != nil {
		return value.Value{}, err
	}

	switch b.Op {
	case "+", "-", "*", "/":
		return evalArith(b.Op, left, right)
	case "==", "!=", "<", "<=", ">", ">=":
		return evalCompare(b.Op, left, right)
	default:
		return value.Value{}, newErr(ErrParse, -1, "unknown binary operator %q", b.Op)
	}
}

func evalArith(op string, left, right value.Value) (value.Value, error) {
	if op == "+" && left.Kind() == value.KindString && right.Kind() == value.KindString {
		return value.String(left.Str() + right.Str()), nil
	}
	lf, lok := left.AsFloat64()
	rf, rok := right.AsFloat64()
	if !lok || !rok {
		return value.Value{}, newErr(ErrTypeMismatch, -1, "operator %q requires numeric operands (or two strings for +)", op)
	}
	bothInt := left.Kind() == value.KindInt && right.Kind() == value.KindInt
	switch op {
	case "+":
		if bothInt {
			return value.Int(left.Int() + right.Int()), nil
		}
		return value.Float(lf + rf), nil
	case "-":
		if bothInt {
			return value.Int(left.Int() - right.Int()), nil
		}
		return value.Float(lf - rf), nil
	case "*":
		if bothInt {
			return value.Int(left.Int() * right.Int()), nil
		}
		return value.Float(lf * rf), nil
	case "/":
		if rf == 0 {
			return value.Value{}, newErr(ErrDivisionByZero, -1, "division by zero")
		}
		if bothInt && left.Int()%right.Int() == 0 {
			return value.Int(left.Int() / right.Int()), nil
		}
		return value.Float(lf / rf), nil
	}
	return value.Value{}, newErr(ErrParse, -1, "unknown arithmetic operator %q", op)
}

func evalCompare(op string, left, right value.Value) (value.Value, error) {
	if op == "==" || op == "!=" {
		if !left.IsNull() && !right.IsNull() && left.Kind() != right.Kind() && !(left.IsNumeric() && right.IsNumeric()) {
			return value.Value{}, newErr(ErrTypeMismatch, -1, "operator %q requires comparable operands of the same kind", op)
		}
		eq := value.Equal(left, right)
		if op == "!=" {
			eq = !eq
		}
		return value.Bool(eq), nil
	}

	if left.IsNull() || right.IsNull() {
		return value.Value{}, newErr(ErrTypeMismatch, -1, "null only supports == and != comparisons")
	}

	if left.Kind() == value.KindString && right.Kind() == value.KindString {
		var result bool
		switch op {
		case "<":
			result = left.Str() < right.Str()
		case "<=":
			result = left.Str() <= right.Str()
		case ">":
			result = left.Str() > right.Str()
		case ">=":
			result = left.Str() >= right.Str()
		}
		return value.Bool(result), nil
	}

	lf, lok := left.AsFloat64()
	rf, rok := right.AsFloat64()
	if !lok || !rok {
		return value.Value{}, newErr(ErrTypeMismatch, -1, "operator %q requires comparable operands of the same kind", op)
	}
	var result bool
	switch op {
	case "<":
		result = lf < rf
	case "<=":
		result = lf <= rf
	case ">":
		result = lf > rf
	case ">=":
		result = lf >= rf
	}
	return value.Bool(result), nil
}

func (ev *evaluator) evalCall(c Call, ctx Context) (value.Value, error) {
	fn, ok := ev.funcs.lookup(c.Name)
	if !ok {
		return value.Value{}, newErr(ErrUnknownFunction, -1, "unknown function %q", c.Name)
	}
	if len(c.Args) < fn.MinArity || (fn.MaxArity >= 0 && len(c.Args) > fn.MaxArity) {
		return value.Value{}, newErr(ErrArity, -1, "function %q called with %d arguments", c.Name, len(c.Args))
	}
	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := ev.eval(a, ctx)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	return fn.Call(args)
}
