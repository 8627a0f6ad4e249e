package expr

import (
	"math"

	"github.com/oarkflow/schemacore/value"
)

func registerNumericFns(f *Functions) {
	unary := func(name string, fn func(float64) float64) {
		f.registerBuiltin(name, 1, 1, func(a []value.Value) (value.Value, error) {
			x, ok := a[0].AsFloat64()
			if !ok {
				return value.Value{}, typeError(name, "numeric")
			}
			return value.Float(fn(x)), nil
		})
	}

	f.registerBuiltin("abs", 1, 1, func(a []value.Value) (value.Value, error) {
		switch a[0].Kind() {
		case value.KindInt:
			n := a[0].Int()
			if n < 0 {
				n = -n
			}
			return value.Int(n), nil
		case value.KindFloat:
			return value.Float(math.Abs(a[0].Float())), nil
		default:
			return value.Value{}, typeError("abs", "numeric")
		}
	})
	unary("sqrt", math.Sqrt)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", math.Round)
	unary("log", math.Log)
	unary("exp", math.Exp)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)

	f.registerBuiltin("pow", 2, 2, func(a []value.Value) (value.Value, error) {
		base, ok := a[0].AsFloat64()
		if !ok {
			return value.Value{}, typeError("pow", "numeric")
		}
		exp, ok := a[1].AsFloat64()
		if !ok {
			return value.Value{}, typeError("pow", "numeric")
		}
		return value.Float(math.Pow(base, exp)), nil
	})
	f.registerBuiltin("mod", 2, 2, func(a []value.Value) (value.Value, error) {
		if a[0].Kind() == value.KindInt && a[1].Kind() == value.KindInt {
			if a[1].Int() == 0 {
				return value.Value{}, newErr(ErrDivisionByZero, -1, "mod by zero")
			}
			return value.Int(a[0].Int() % a[1].Int()), nil
		}
		x, ok := a[0].AsFloat64()
		if !ok {
			return value.Value{}, typeError("mod", "numeric")
		}
		y, ok := a[1].AsFloat64()
		if !ok {
			return value.Value{}, typeError("mod", "numeric")
		}
		if y == 0 {
			return value.Value{}, newErr(ErrDivisionByZero, -1, "mod by zero")
		}
		return value.Float(math.Mod(x, y)), nil
	})
	f.registerBuiltin("min", 1, -1, func(a []value.Value) (value.Value, error) {
		return numericFold("min", a, func(acc, x float64) float64 {
			if x < acc {
				return x
			}
			return acc
		})
	})
	f.registerBuiltin("max", 1, -1, func(a []value.Value) (value.Value, error) {
		return numericFold("max", a, func(acc, x float64) float64 {
			if x > acc {
				return x
			}
			return acc
		})
	})
}

// numericFold reduces args (itself, or a single array argument) with fn,
// preserving an all-integer result as an integer per the arithmetic
// operators' own int-preservation rule.
func numericFold(name string, args []value.Value, fn func(acc, x float64) float64) (value.Value, error) {
	items := args
	if len(args) == 1 && args[0].Kind() == value.KindArray {
		items = args[0].Arr()
	}
	if len(items) == 0 {
		return value.Value{}, newErr(ErrArity, -1, "function %q requires at least one numeric argument", name)
	}
	allInt := true
	acc, ok := items[0].AsFloat64()
	if !ok {
		return value.Value{}, typeError(name, "numeric")
	}
	if items[0].Kind() != value.KindInt {
		allInt = false
	}
	for _, it := range items[1:] {
		x, ok := it.AsFloat64()
		if !ok {
			return value.Value{}, typeError(name, "numeric")
		}
		if it.Kind() != value.KindInt {
			allInt = false
		}
		acc = fn(acc, x)
	}
	if allInt {
		return value.Int(int64(acc)), nil
	}
	return value.Float(acc), nil
}
