package util

// FirstNonEmpty returns the first non-empty string in values.
func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// CloneStringMap returns a copy of input.
// It returns nil when input is nil so round-trips stay field-for-field equal.
func CloneStringMap(input map[string]string) map[string]string {
	if input == nil {
		return nil
	}
	out := make(map[string]string, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}

// CloneMap deep copies a property bag. Nested maps and slices are copied; scalars are shared.
func CloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = CloneValue(value)
	}
	return out
}

// CloneValue deep copies the JSON-shaped value types a property bag may hold.
func CloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return CloneMap(typed)
	case map[string]string:
		return CloneStringMap(typed)
	case []any:
		if typed == nil {
			return typed
		}
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = CloneValue(item)
		}
		return out
	case []map[string]any:
		if typed == nil {
			return typed
		}
		out := make([]map[string]any, len(typed))
		for i, item := range typed {
			out[i] = CloneMap(item)
		}
		return out
	case []string:
		if typed == nil {
			return typed
		}
		return append([]string(nil), typed...)
	default:
		return value
	}
}

// StringMap extracts a map[string]string from a raw prop value, dropping non-string entries.
func StringMap(raw any) map[string]string {
	switch values := raw.(type) {
	case map[string]string:
		return CloneStringMap(values)
	case map[string]any:
		out := make(map[string]string, len(values))
		for key, value := range values {
			if s, ok := value.(string); ok {
				out[key] = s
			}
		}
		return out
	default:
		return nil
	}
}
