package expr

import (
	"math"
	"sort"
	"strings"

	"github.com/oarkflow/schemacore/value"
)

// registerAggregationFns wires aggregation builtins, all of
// which operate over a single array argument.
func registerAggregationFns(f *Functions) {
	f.registerBuiltin("sum", 1, 1, func(a []value.Value) (value.Value, error) {
		nums, allInt, err := numericList("sum", a[0])
		if err != nil {
			return value.Value{}, err
		}
		var total float64
		for _, n := range nums {
			total += n
		}
		if allInt {
			return value.Int(int64(total)), nil
		}
		return value.Float(total), nil
	})
	f.registerBuiltin("avg", 1, 1, func(a []value.Value) (value.Value, error) {
		nums, _, err := numericList("avg", a[0])
		if err != nil {
			return value.Value{}, err
		}
		if len(nums) == 0 {
			return value.Value{}, newErr(ErrTypeMismatch, -1, "avg: empty array")
		}
		var total float64
		for _, n := range nums {
			total += n
		}
		return value.Float(total / float64(len(nums))), nil
	})
	f.registerBuiltin("count", 1, 1, func(a []value.Value) (value.Value, error) {
		if a[0].Kind() != value.KindArray {
			return value.Value{}, typeError("count", "array")
		}
		return value.Int(int64(len(a[0].Arr()))), nil
	})
	f.registerBuiltin("median", 1, 1, func(a []value.Value) (value.Value, error) {
		nums, _, err := numericList("median", a[0])
		if err != nil {
			return value.Value{}, err
		}
		if len(nums) == 0 {
			return value.Value{}, newErr(ErrTypeMismatch, -1, "median: empty array")
		}
		sorted := append([]float64(nil), nums...)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return value.Float(sorted[mid]), nil
		}
		return value.Float((sorted[mid-1] + sorted[mid]) / 2), nil
	})
	f.registerBuiltin("mode", 1, 1, func(a []value.Value) (value.Value, error) {
		if a[0].Kind() != value.KindArray {
			return value.Value{}, typeError("mode", "array")
		}
		items := a[0].Arr()
		if len(items) == 0 {
			return value.Value{}, newErr(ErrTypeMismatch, -1, "mode: empty array")
		}
		counts := map[string]int{}
		order := map[string]value.Value{}
		keys := make([]string, 0, len(items))
		for _, it := range items {
			k := canonicalKey(it)
			if _, seen := counts[k]; !seen {
				keys = append(keys, k)
				order[k] = it
			}
			counts[k]++
		}
		best := keys[0]
		for _, k := range keys[1:] {
			if counts[k] > counts[best] {
				best = k
			}
		}
		return order[best], nil
	})
	f.registerBuiltin("stddev", 1, 1, func(a []value.Value) (value.Value, error) {
		return deviation("stddev", a[0], true)
	})
	f.registerBuiltin("variance", 1, 1, func(a []value.Value) (value.Value, error) {
		return deviation("variance", a[0], false)
	})
	f.registerBuiltin("unique", 1, 1, func(a []value.Value) (value.Value, error) {
		if a[0].Kind() != value.KindArray {
			return value.Value{}, typeError("unique", "array")
		}
		seen := map[string]bool{}
		var out []value.Value
		for _, it := range a[0].Arr() {
			k := canonicalKey(it)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, it)
		}
		return value.Array(out), nil
	})
	f.registerBuiltin("group_by", 2, 2, func(a []value.Value) (value.Value, error) {
		return groupBy(a[0], a[1])
	})
}

func numericList(fn string, v value.Value) ([]float64, bool, error) {
	if v.Kind() != value.KindArray {
		return nil, false, typeError(fn, "array")
	}
	nums := make([]float64, 0, len(v.Arr()))
	allInt := true
	for _, e := range v.Arr() {
		n, ok := e.AsFloat64()
		if !ok {
			return nil, false, typeError(fn, "numeric array")
		}
		if e.Kind() != value.KindInt {
			allInt = false
		}
		nums = append(nums, n)
	}
	return nums, allInt, nil
}

func deviation(fn string, v value.Value, sqrtResult bool) (value.Value, error) {
	nums, _, err := numericList(fn, v)
	if err != nil {
		return value.Value{}, err
	}
	if len(nums) == 0 {
		return value.Value{}, newErr(ErrTypeMismatch, -1, "%s: empty array", fn)
	}
	var mean float64
	for _, n := range nums {
		mean += n
	}
	mean /= float64(len(nums))
	var sumSq float64
	for _, n := range nums {
		d := n - mean
		sumSq += d * d
	}
	v2 := sumSq / float64(len(nums))
	if sqrtResult {
		return value.Float(math.Sqrt(v2)), nil
	}
	return value.Float(v2), nil
}

func canonicalKey(v value.Value) string {
	switch v.Kind() {
	case value.KindString:
		return "s:" + v.Str()
	case value.KindInt:
		return "i:" + itoa64(v.Int())
	case value.KindFloat:
		return "f:" + itoa64(int64(v.Float()*1e9))
	case value.KindBool:
		if v.Bool() {
			return "b:1"
		}
		return "b:0"
	case value.KindNull:
		return "n:"
	default:
		return "?"
	}
}

func itoa64(i int64) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// groupBy buckets items by a key function result, resolving a
// comma-separated keyField into a compound key joined with "|" when the
// field spec names more than one field (the adopted resolution for
// multi-field grouping, since the mini-language has no tuple literal).
func groupBy(items value.Value, keyField value.Value) (value.Value, error) {
	if items.Kind() != value.KindArray {
		return value.Value{}, typeError("group_by", "array")
	}
	fieldSpec, err := str("group_by", keyField)
	if err != nil {
		return value.Value{}, err
	}
	fields := strings.Split(fieldSpec, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	order := []string{}
	buckets := map[string][]value.Value{}
	for _, it := range items.Arr() {
		var parts []string
		for _, fld := range fields {
			fv, ok := it.Field(fld)
			if !ok {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, canonicalKey(fv))
		}
		key := strings.Join(parts, "|")
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], it)
	}

	out := make(map[string]value.Value, len(buckets))
	for _, k := range order {
		out[k] = value.Array(buckets[k])
	}
	return value.Object(out), nil
}
