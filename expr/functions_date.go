package expr

import (
	"time"

	oarkdate "github.com/oarkflow/date"

	"github.com/oarkflow/schemacore/value"
)

// registerDateFns wires the date/time builtins onto github.com/oarkflow/date's
// free-form Parse, the same parser jsonschema/v2's validator
// uses for its "format: date"/"format: date-time" checks.
func registerDateFns(f *Functions) {
	f.registerBuiltin("now", 0, 0, func(a []value.Value) (value.Value, error) {
		return value.String(time.Now().UTC().Format(time.RFC3339)), nil
	})
	f.registerBuiltin("today", 0, 0, func(a []value.Value) (value.Value, error) {
		return value.String(time.Now().UTC().Format("2006-01-02")), nil
	})
	f.registerBuiltin("date_parse", 1, 1, func(a []value.Value) (value.Value, error) {
		s, err := str("date_parse", a[0])
		if err != nil {
			return value.Value{}, err
		}
		t, perr := oarkdate.Parse(s)
		if perr != nil {
			return value.Value{}, newErr(ErrTypeMismatch, -1, "date_parse: %v", perr)
		}
		return value.String(t.UTC().Format(time.RFC3339)), nil
	})
	f.registerBuiltin("date_format", 2, 2, func(a []value.Value) (value.Value, error) {
		t, err := parseDateArg("date_format", a[0])
		if err != nil {
			return value.Value{}, err
		}
		layout, err := str("date_format", a[1])
		if err != nil {
			return value.Value{}, err
		}
		return value.String(t.Format(goLayout(layout))), nil
	})
	f.registerBuiltin("date_add", 2, 2, func(a []value.Value) (value.Value, error) {
		t, err := parseDateArg("date_add", a[0])
		if err != nil {
			return value.Value{}, err
		}
		days, ok := a[1].AsFloat64()
		if !ok {
			return value.Value{}, typeError("date_add", "numeric")
		}
		return value.String(t.AddDate(0, 0, int(days)).UTC().Format(time.RFC3339)), nil
	})
	f.registerBuiltin("date_diff", 2, 2, func(a []value.Value) (value.Value, error) {
		t1, err := parseDateArg("date_diff", a[0])
		if err != nil {
			return value.Value{}, err
		}
		t2, err := parseDateArg("date_diff", a[1])
		if err != nil {
			return value.Value{}, err
		}
		days := t1.Sub(t2).Hours() / 24
		return value.Int(int64(days)), nil
	})
	f.registerBuiltin("year", 1, 1, func(a []value.Value) (value.Value, error) {
		t, err := parseDateArg("year", a[0])
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(int64(t.Year())), nil
	})
	f.registerBuiltin("month", 1, 1, func(a []value.Value) (value.Value, error) {
		t, err := parseDateArg("month", a[0])
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(int64(t.Month())), nil
	})
	f.registerBuiltin("day", 1, 1, func(a []value.Value) (value.Value, error) {
		t, err := parseDateArg("day", a[0])
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(int64(t.Day())), nil
	})
}

func parseDateArg(fn string, v value.Value) (time.Time, error) {
	s, err := str(fn, v)
	if err != nil {
		return time.Time{}, err
	}
	t, perr := oarkdate.Parse(s)
	if perr != nil {
		return time.Time{}, newErr(ErrTypeMismatch, -1, "%s: %v", fn, perr)
	}
	return t, nil
}

// goLayout accepts the handful of friendly format names schema authors
// are likely to write and falls back to treating the string as a
// literal Go reference-time layout.
func goLayout(layout string) string {
	switch layout {
	case "date":
		return "2006-01-02"
	case "date-time":
		return time.RFC3339
	case "time":
		return "15:04:05"
	default:
		return layout
	}
}
