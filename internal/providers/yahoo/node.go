package yahoo

import (
	"strconv"
	"strings"
)

// The provider wraps almost every sub-resource in an array where element 0 is
// the real payload, and sometimes element 0 is itself an array of partial
// objects that must be merged. NormalizeNode collapses both conventions into a
// single object. Absence is nil, never a panic.
func NormalizeNode(node interface{}) map[string]interface{} {
	switch n := node.(type) {
	case map[string]interface{}:
		return n
	case []interface{}:
		if len(n) == 0 {
			return nil
		}
		first := n[0]
		if inner, ok := first.([]interface{}); ok {
			// Array of partial objects; later members overwrite earlier keys.
			merged := make(map[string]interface{})
			for _, frag := range inner {
				if obj, ok := frag.(map[string]interface{}); ok {
					for k, v := range obj {
						merged[k] = v
					}
				}
			}
			if len(merged) == 0 {
				return nil
			}
			return merged
		}
		if obj, ok := first.(map[string]interface{}); ok {
			return obj
		}
		return nil
	default:
		return nil
	}
}

// MergeFragments flattens an array of partial objects into one object, the
// same way NormalizeNode treats a nested fragment array. Used for player
// identity arrays, which arrive as a flat fragment list rather than wrapped.
func MergeFragments(node interface{}) map[string]interface{} {
	arr, ok := node.([]interface{})
	if !ok {
		return NormalizeNode(node)
	}
	merged := make(map[string]interface{})
	for _, frag := range arr {
		if obj, ok := frag.(map[string]interface{}); ok {
			for k, v := range obj {
				merged[k] = v
			}
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// FindFirstPath resolves each dotted path against root and returns the first
// non-nil result. Segments may be object keys or numeric array indices. The
// provider moves sub-resources between array slots across responses, so
// parsers probe every known historical shape instead of trusting one.
func FindFirstPath(root interface{}, candidatePaths []string) interface{} {
	for _, path := range candidatePaths {
		if v := resolvePath(root, path); v != nil {
			return v
		}
	}
	return nil
}

func resolvePath(root interface{}, path string) interface{} {
	current := root
	for _, seg := range strings.Split(path, ".") {
		if current == nil {
			return nil
		}
		switch node := current.(type) {
		case map[string]interface{}:
			next, ok := node[seg]
			if !ok {
				return nil
			}
			current = next
		case []interface{}:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil
			}
			current = node[idx]
		default:
			return nil
		}
	}
	return current
}

// AsString reads a JSON scalar as a string, tolerating numeric values.
func AsString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// AsFloat reads a JSON scalar as a float64. The provider serializes most
// numbers as strings.
func AsFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		if n == "" || n == "-" {
			return 0, false
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsInt reads a JSON scalar as an int.
func AsInt(v interface{}) (int, bool) {
	f, ok := AsFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}
