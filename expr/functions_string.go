package expr

import (
	"strings"

	"github.com/oarkflow/schemacore/value"
)

func registerStringFns(f *Functions) {
	f.registerBuiltin("upper", 1, 1, func(a []value.Value) (value.Value, error) {
		s, err := str("upper", a[0])
		if err != nil {
			return value.Value{}, err
		}
		return value.String(strings.ToUpper(s)), nil
	})
	f.registerBuiltin("lower", 1, 1, func(a []value.Value) (value.Value, error) {
		s, err := str("lower", a[0])
		if err != nil {
			return value.Value{}, err
		}
		return value.String(strings.ToLower(s)), nil
	})
	f.registerBuiltin("len", 1, 1, func(a []value.Value) (value.Value, error) {
		return value.Int(int64(a[0].Len())), nil
	})
	f.registerBuiltin("trim", 1, 1, func(a []value.Value) (value.Value, error) {
		s, err := str("trim", a[0])
		if err != nil {
			return value.Value{}, err
		}
		return value.String(strings.TrimSpace(s)), nil
	})
	f.registerBuiltin("starts_with", 2, 2, func(a []value.Value) (value.Value, error) {
		s, err := str("starts_with", a[0])
		if err != nil {
			return value.Value{}, err
		}
		prefix, err := str("starts_with", a[1])
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(strings.HasPrefix(s, prefix)), nil
	})
	f.registerBuiltin("ends_with", 2, 2, func(a []value.Value) (value.Value, error) {
		s, err := str("ends_with", a[0])
		if err != nil {
			return value.Value{}, err
		}
		suffix, err := str("ends_with", a[1])
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(strings.HasSuffix(s, suffix)), nil
	})
	f.registerBuiltin("contains", 2, 2, func(a []value.Value) (value.Value, error) {
		s, err := str("contains", a[0])
		if err != nil {
			return value.Value{}, err
		}
		sub, err := str("contains", a[1])
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(strings.Contains(s, sub)), nil
	})
	f.registerBuiltin("replace", 3, 3, func(a []value.Value) (value.Value, error) {
		s, err := str("replace", a[0])
		if err != nil {
			return value.Value{}, err
		}
		old, err := str("replace", a[1])
		if err != nil {
			return value.Value{}, err
		}
		nw, err := str("replace", a[2])
		if err != nil {
			return value.Value{}, err
		}
		return value.String(strings.ReplaceAll(s, old, nw)), nil
	})
	f.registerBuiltin("split", 2, 2, func(a []value.Value) (value.Value, error) {
		s, err := str("split", a[0])
		if err != nil {
			return value.Value{}, err
		}
		sep, err := str("split", a[1])
		if err != nil {
			return value.Value{}, err
		}
		parts := strings.Split(s, sep)
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.String(p)
		}
		return value.Array(out), nil
	})
	f.registerBuiltin("join", 2, 2, func(a []value.Value) (value.Value, error) {
		if a[0].Kind() != value.KindArray {
			return value.Value{}, typeError("join", "array")
		}
		sep, err := str("join", a[1])
		if err != nil {
			return value.Value{}, err
		}
		parts := make([]string, len(a[0].Arr()))
		for i, e := range a[0].Arr() {
			s, err := str("join", e)
			if err != nil {
				return value.Value{}, err
			}
			parts[i] = s
		}
		return value.String(strings.Join(parts, sep)), nil
	})
	f.registerBuiltin("substring", 2, 3, func(a []value.Value) (value.Value, error) {
		s, err := str("substring", a[0])
		if err != nil {
			return value.Value{}, err
		}
		runes := []rune(s)
		start, ok := a[1].AsFloat64()
		if !ok {
			return value.Value{}, typeError("substring", "numeric")
		}
		startI := clampIndex(int(start), len(runes))
		endI := len(runes)
		if len(a) == 3 {
			end, ok := a[2].AsFloat64()
			if !ok {
				return value.Value{}, typeError("substring", "numeric")
			}
			endI = clampIndex(int(end), len(runes))
		}
		if endI < startI {
			endI = startI
		}
		return value.String(string(runes[startI:endI])), nil
	})
}

func str(fn string, v value.Value) (string, error) {
	if v.Kind() != value.KindString {
		return "", typeError(fn, "string")
	}
	return v.Str(), nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	return i
}
