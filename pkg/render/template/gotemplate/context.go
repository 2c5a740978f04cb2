package gotemplate

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// toContext converts template data into a pongo2 context. Structs are
// round-tripped through JSON so templates address fields by their JSON
// names; funcs are passed through untouched.
func toContext(data any) (pongo2.Context, error) {
	var root map[string]any
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		root = v
	case map[string]any:
		root = v
	default:
		decoded, err := roundTrip(v)
		if err != nil {
			return nil, err
		}
		m, ok := decoded.(map[string]any)
		if !ok {
			return pongo2.Context{}, nil
		}
		root = m
	}

	out := make(pongo2.Context, len(root))
	for key, value := range root {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func convertValue(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, float64, int, int64:
		return v, nil
	case pongo2.Context:
		return convertMap(v)
	case map[string]any:
		return convertMap(v)
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			converted, err := convertValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	}
	if isCallable(value) {
		return value, nil
	}
	decoded, err := roundTrip(value)
	if err != nil {
		return nil, err
	}
	return convertValue(decoded)
}

func convertMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func roundTrip(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}
