package config

// Generic helpers for walking a decoded-JSON map[string]any document,
// grounded on schema/util.go (itself grounded on
// jsonschema/v2/utils.go). Kept as an unexported copy rather than an
// import of the schema package to avoid a dependency cycle: schema
// does not need to know about config.

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

func getInt(m map[string]any, key string) (int, bool) {
	if val, exists := m[key]; exists {
		if f, ok := toFloat(val); ok {
			return int(f), true
		}
	}
	return 0, false
}

func getStringList(m map[string]any, key string) ([]string, bool) {
	lst, ok := getList(m, key)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(lst))
	for _, v := range lst {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}
