// Package jsonmap navigates schemaless JSON objects. Profile files carry
// many fields this editor never touches, so documents are kept as generic
// maps and round-tripped untouched except for the fields a mutation names.
package jsonmap

// Child returns m[key] when it is an object, nil otherwise.
func Child(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	child, _ := m[key].(map[string]any)
	return child
}

// Ensure returns m[key] as an object, creating it when absent or of the
// wrong type.
func Ensure(m map[string]any, key string) map[string]any {
	if child, ok := m[key].(map[string]any); ok {
		return child
	}
	child := map[string]any{}
	m[key] = child
	return child
}

// Number returns m[key] coerced to float64, or 0 when absent. JSON numbers
// decode as float64, but int and int64 are accepted for values the editor
// itself wrote into an in-memory document.
func Number(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// Int is Number truncated to int.
func Int(m map[string]any, key string) int {
	return int(Number(m, key))
}

// Strings returns m[key] as a string slice; non-string elements are
// dropped. Absent or wrong-typed values yield nil.
func Strings(m map[string]any, key string) []string {
	if m == nil {
		return nil
	}
	raw, ok := m[key].([]any)
	if !ok {
		// A list the editor itself created may already be []string.
		if typed, ok := m[key].([]string); ok {
			return typed
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
