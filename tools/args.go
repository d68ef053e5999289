package tools

import (
	"encoding/json"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/validation"
)

// Args is the loosely-typed argument map delivered by a JSON dispatch
// endpoint. Numbers arrive as float64 unless they were decoded with
// json.Number.
type Args map[string]any

// String returns the string argument for key, "" when absent.
func (a Args) String(key string) string {
	v, ok := a[key].(string)
	if !ok {
		return ""
	}
	return v
}

// Int returns the integer argument for key with a default. Accepts the
// numeric types a JSON decoder may produce.
func (a Args) Int(key string, def int) int {
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return def
}

// Int64 returns the 64-bit integer argument for key, 0 when absent.
func (a Args) Int64(key string) int64 {
	switch v := a[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	}
	return 0
}

// BoolPtr returns the boolean argument for key, nil when absent. The
// distinction matters for tri-state filters like cleared/acked.
func (a Args) BoolPtr(key string) *bool {
	v, ok := a[key].(bool)
	if !ok {
		return nil
	}
	return &v
}

// Bool returns the boolean argument for key, false when absent.
func (a Args) Bool(key string) bool {
	v, _ := a[key].(bool)
	return v
}

// StringSlice returns the string list argument for key. JSON arrays
// decode as []any, so elements are converted individually.
func (a Args) StringSlice(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// IntSlice returns the integer list argument for key.
func (a Args) IntSlice(key string) []int {
	switch v := a[key].(type) {
	case []int:
		return v
	case []any:
		out := make([]int, 0, len(v))
		for _, item := range v {
			switch n := item.(type) {
			case int:
				out = append(out, n)
			case float64:
				out = append(out, int(n))
			}
		}
		return out
	}
	return nil
}

// Map returns the object argument for key, nil when absent.
func (a Args) Map(key string) map[string]any {
	v, _ := a[key].(map[string]any)
	return v
}

// MapSlice returns the list-of-objects argument for key.
func (a Args) MapSlice(key string) []map[string]any {
	switch v := a[key].(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// StringMap returns the string-to-string object argument for key.
func (a Args) StringMap(key string) map[string]string {
	m := a.Map(key)
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// requireString returns the string argument for key or an
// INVALID_INPUT error when missing or empty.
func (a Args) requireString(key string) (string, error) {
	v := a.String(key)
	if err := validation.Required(key, v); err != nil {
		return "", err
	}
	return v, nil
}

// requireInt returns the integer argument for key or an INVALID_INPUT
// error when missing or non-positive.
func (a Args) requireInt(key string) (int, error) {
	v := a.Int(key, 0)
	if err := validation.PositiveID(key, v); err != nil {
		return 0, err
	}
	return v, nil
}
