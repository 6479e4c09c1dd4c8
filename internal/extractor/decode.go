package extractor

import (
	"encoding/json"

	"github.com/jas0nkim/pricewatch/pkg/utils"
)

// Helpers for walking partially structured payloads. Every accessor returns a
// second boolean result instead of panicking or defaulting, so callers can
// tell absence apart from an empty value.

func decodeObject(raw json.RawMessage) (map[string]any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return m, true
}

func decodeArray(raw json.RawMessage) ([]any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var a []any
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, false
	}
	return a, true
}

func valueAt(m map[string]any, path ...string) (any, bool) {
	var current any = m
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func stringAt(m map[string]any, path ...string) (string, bool) {
	v, ok := valueAt(m, path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// floatAt accepts both JSON numbers and display strings ("$1,299.99").
func floatAt(m map[string]any, path ...string) (float64, bool) {
	v, ok := valueAt(m, path...)
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := utils.MoneyToFloat(n)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func intAt(m map[string]any, path ...string) (int, bool) {
	v, ok := valueAt(m, path...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		i, err := utils.ExtractInt(n)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func arrayAt(m map[string]any, path ...string) ([]any, bool) {
	v, ok := valueAt(m, path...)
	if !ok {
		return nil, false
	}
	a, ok := v.([]any)
	if !ok || len(a) == 0 {
		return nil, false
	}
	return a, true
}

func objectAt(m map[string]any, path ...string) (map[string]any, bool) {
	v, ok := valueAt(m, path...)
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}
