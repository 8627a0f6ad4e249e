package schema

// Generic helpers for walking a decoded-JSON map[string]any document,
// grounded on the getString/getMap/getFloat helpers in
// jsonschema/v2/utils.go.

func getString(m map[string]any, key string) (string, bool) {
	if val, exists := m[key]; exists {
		if str, ok := val.(string); ok {
			return str, true
		}
	}
	return "", false
}

func getBool(m map[string]any, key string) (bool, bool) {
	if val, exists := m[key]; exists {
		if b, ok := val.(bool); ok {
			return b, true
		}
	}
	return false, false
}

func getMap(m map[string]any, key string) (map[string]any, bool) {
	if val, exists := m[key]; exists {
		if mp, ok := val.(map[string]any); ok {
			return mp, true
		}
	}
	return nil, false
}

func getList(m map[string]any, key string) ([]any, bool) {
	if val, exists := m[key]; exists {
		if lst, ok := val.([]any); ok {
			return lst, true
		}
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func getFloat(m map[string]any, key string) (float64, bool) {
	if val, exists := m[key]; exists {
		return toFloat(val)
	}
	return 0, false
}

func getFloatPtr(m map[string]any, key string) *float64 {
	if f, ok := getFloat(m, key); ok {
		return &f
	}
	return nil
}

func toStringSlice(lst []any) []string {
	out := make([]string, 0, len(lst))
	for _, v := range lst {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getStringList(m map[string]any, key string) []string {
	lst, ok := getList(m, key)
	if !ok {
		return nil
	}
	return toStringSlice(lst)
}
