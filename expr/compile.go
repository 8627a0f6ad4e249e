package expr

import (
	"time"

	"github.com/oarkflow/schemacore/value"
)

// opcode is one instruction in a compiled expression's bytecode
// stream. The instruction set is deliberately small: it exists to
// skip AST recursion for hot expressions, not to be a general-purpose VM.
type opcode uint8

const (
	opConst opcode = iota
	opLoadVar
	opLoadField
	opUnaryNot
	opUnaryNeg
	opArith
	opCompare
	opJumpIfFalse // pops and branches; used for 'and' short-circuit and ternary
	opJumpIfTrue  // pops and branches; used for 'or' short-circuit
	opJump
	opCall
	opCheckBool
)

type instr struct {
	op   opcode
	a    int    // operand: const/name index, or jump target, or arg count
	sarg string // operand: operator symbol ("+", "==", ...) or function name
}

// Program is a compiled expression: a flat instruction stream plus the
// literal and name tables it indexes into.
type Program struct {
	code   []instr
	names  []string
	consts []value.Value
}

type compiler struct {
	prog   *Program
	names  map[string]int
	consts *constTable
}

// Compile lowers an already-parsed AST into a Program the VM can run
// without re-walking the tree, matching the tree-walker's evaluation
// order (left-to-right, short-circuiting and/or, ternary evaluates
// only its taken branch) exactly.
func Compile(n Node) (*Program, error) {
	c := &compiler{prog: &Program{}, names: map[string]int{}}
	if err := c.compileNode(n); err != nil {
		return nil, err
	}
	return c.prog, nil
}

func (c *compiler) nameIndex(s string) int {
	if i, ok := c.names[s]; ok {
		return i
	}
	i := len(c.prog.names)
	c.prog.names = append(c.prog.names, s)
	c.names[s] = i
	return i
}

func (c *compiler) emit(op opcode, a int, sarg string) int {
	c.prog.code = append(c.prog.code, instr{op: op, a: a, sarg: sarg})
	return len(c.prog.code) - 1
}

func (c *compiler) compileNode(n Node) error {
	switch t := n.(type) {
	case Literal:
		c.emit(opConst, c.constIndex(t.Value), "")
		return nil
	case Var:
		c.emit(opLoadVar, c.nameIndex(t.Name), "")
		return nil
	case Field:
		if err := c.compileNode(t.Base); err != nil {
			return err
		}
		c.emit(opLoadField, c.nameIndex(t.Name), "")
		return nil
	case Unary:
		if err := c.compileNode(t.Expr); err != nil {
			return err
		}
		if t.Op == "not" {
			c.emit(opUnaryNot, 0, "")
		} else {
			c.emit(opUnaryNeg, 0, "")
		}
		return nil
	case Binary:
		return c.compileBinary(t)
	case Ternary:
		return c.compileTernary(t)
	case Call:
		for _, a := range t.Args {
			if err := c.compileNode(a); err != nil {
				return err
			}
		}
		c.emit(opCall, len(t.Args), t.Name)
		return nil
	default:
		return newErr(ErrParse, -1, "compile: unknown node type %T", n)
	}
}

func (c *compiler) compileBinary(b Binary) error {
	switch b.Op {
	case "and":
		if err := c.compileNode(b.Left); err != nil {
			return err
		}
		c.emit(opCheckBool, 0, "and")
		jf := c.emit(opJumpIfFalse, 0, "")
		if err := c.compileNode(b.Right); err != nil {
			return err
		}
		c.emit(opCheckBool, 0, "and")
		end := c.emit(opJump, 0, "")
		c.prog.code[jf].a = len(c.prog.code)
		c.emit(opConst, c.constIndex(value.Bool(false)), "")
		c.prog.code[end].a = len(c.prog.code)
		return nil
	case "or":
		if err := c.compileNode(b.Left); err != nil {
			return err
		}
		c.emit(opCheckBool, 0, "or")
		jt := c.emit(opJumpIfTrue, 0, "")
		if err := c.compileNode(b.Right); err != nil {
			return err
		}
		c.emit(opCheckBool, 0, "or")
		end := c.emit(opJump, 0, "")
		c.prog.code[jt].a = len(c.prog.code)
		c.emit(opConst, c.constIndex(value.Bool(true)), "")
		c.prog.code[end].a = len(c.prog.code)
		return nil
	default:
		if err := c.compileNode(b.Left); err != nil {
			return err
		}
		if err := c.compileNode(b.Right); err != nil {
			return err
		}
		switch b.Op {
		case "+", "-", "*", "/":
			c.emit(opArith, 0, b.Op)
		case "==", "!=", "<", "<=", ">", ">=":
			c.emit(opCompare, 0, b.Op)
		default:
			return newErr(ErrParse, -1, "compile: unknown binary operator %q", b.Op)
		}
		return nil
	}
}

func (c *compiler) compileTernary(t Ternary) error {
	if err := c.compileNode(t.Cond); err != nil {
		return err
	}
	c.emit(opCheckBool, 0, "ternary condition")
	jf := c.emit(opJumpIfFalse, 0, "")
	if err := c.compileNode(t.Then); err != nil {
		return err
	}
	end := c.emit(opJump, 0, "")
	c.prog.code[jf].a = len(c.prog.code)
	if err := c.compileNode(t.Else); err != nil {
		return err
	}
	c.prog.code[end].a = len(c.prog.code)
	return nil
}

// constTable collects the Literal values the program references by
// index while compiling; constIndex keeps Program.consts pointing at
// the same slice, which is the table the VM reads.
type constTable struct {
	vals []value.Value
}

func (c *compiler) constIndex(v value.Value) int {
	if c.consts == nil {
		c.consts = &constTable{}
	}
	c.consts.vals = append(c.consts.vals, v)
	idx := len(c.consts.vals) - 1
	c.prog.consts = c.consts.vals
	return idx
}

// VM executes a compiled Program against a Context using the same
// semantics as the tree-walking evaluator in eval.go.
type vmState struct {
	stack []value.Value
	ev    *evaluator
	ctx   Context
}

// EvalCompiled runs prog against ctx, returning the same results and
// error kinds Eval would for the source expression it was compiled
// from. limits.Timeout is enforced as in Eval; limits.MaxDepth is not
// checked, because the program runs without recursion, so an
// expression nested deeper than MaxDepth evaluates here where Eval
// reports ErrRuntimeLimit.
func EvalCompiled(prog *Program, ctx Context, funcs *Functions, limits Limits) (value.Value, error) {
	ev := &evaluator{funcs: funcs, limits: limits}
	if limits.Timeout > 0 {
		ev.deadline = time.Now().Add(limits.Timeout)
		ev.hasDL = true
	}
	vm := &vmState{ev: ev, ctx: ctx}
	pc := 0
	for pc < len(prog.code) {
		if err := ev.checkLimits(); err != nil {
			return value.Value{}, err
		}
		in := prog.code[pc]
		switch in.op {
		case opConst:
			vm.push(prog.consts[in.a])
			pc++
		case opLoadVar:
			name := prog.names[in.a]
			v, ok := ctx.Lookup(name)
			if !ok {
				return value.Value{}, newErr(ErrUnknownVariable, -1, "undefined variable %q", name)
			}
			vm.push(v)
			pc++
		case opLoadField:
			base := vm.pop()
			if base.Kind() != value.KindObject {
				return value.Value{}, newErr(ErrTypeMismatch, -1, "cannot access field %q on non-object value", prog.names[in.a])
			}
			f, ok := base.Field(prog.names[in.a])
			if !ok {
				return value.Value{}, newErr(ErrUnknownVariable, -1, "undefined field %q", prog.names[in.a])
			}
			vm.push(f)
			pc++
		case opUnaryNot:
			v := vm.pop()
			if v.Kind() != value.KindBool {
				return value.Value{}, newErr(ErrTypeMismatch, -1, "'not' requires a boolean operand")
			}
			vm.push(value.Bool(!v.Bool()))
			pc++
		case opUnaryNeg:
			v := vm.pop()
			switch v.Kind() {
			case value.KindInt:
				vm.push(value.Int(-v.Int()))
			case value.KindFloat:
				vm.push(value.Float(-v.Float()))
			default:
				return value.Value{}, newErr(ErrTypeMismatch, -1, "unary '-' requires a numeric operand")
			}
			pc++
		case opArith:
			right := vm.pop()
			left := vm.pop()
			r, err := evalArith(in.sarg, left, right)
			if err != nil {
				return value.Value{}, err
			}
			vm.push(r)
			pc++
		case opCompare:
			right := vm.pop()
			left := vm.pop()
			r, err := evalCompare(in.sarg, left, right)
			if err != nil {
				return value.Value{}, err
			}
			vm.push(r)
			pc++
		case opCheckBool:
			top := vm.peek()
			if top.Kind() != value.KindBool {
				return value.Value{}, newErr(ErrTypeMismatch, -1, "%s requires a boolean operand", in.sarg)
			}
			pc++
		case opJumpIfFalse:
			v := vm.pop()
			if !v.Bool() {
				pc = in.a
			} else {
				pc++
			}
		case opJumpIfTrue:
			v := vm.pop()
			if v.Bool() {
				pc = in.a
			} else {
				pc++
			}
		case opJump:
			pc = in.a
		case opCall:
			fn, ok := funcs.lookup(in.sarg)
			if !ok {
				return value.Value{}, newErr(ErrUnknownFunction, -1, "unknown function %q", in.sarg)
			}
			if in.a < fn.MinArity || (fn.MaxArity >= 0 && in.a > fn.MaxArity) {
				return value.Value{}, newErr(ErrArity, -1, "function %q called with %d arguments", in.sarg, in.a)
			}
			args := make([]value.Value, in.a)
			for i := in.a - 1; i >= 0; i-- {
				args[i] = vm.pop()
			}
			r, err := fn.Call(args)
			if err != nil {
				return value.Value{}, err
			}
			vm.push(r)
			pc++
		default:
			return value.Value{}, newErr(ErrParse, -1, "unknown opcode %d", in.op)
		}
	}
	if len(vm.stack) != 1 {
		return value.Value{}, newErr(ErrParse, -1, "compiled program left %d values on the stack", len(vm.stack))
	}
	return vm.stack[0], nil
}

func (vm *vmState) push(v value.Value) { vm.stack = append(vm.stack, v) }
func (vm *vmState) pop() value.Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}
func (vm *vmState) peek() value.Value { return vm.stack[len(vm.stack)-1] }
