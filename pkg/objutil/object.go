package objutil

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
)

// Pick returns a new map with only the listed keys that exist in m
func Pick[M ~map[string]V, V any](m M, keys ...string) M {
	out := make(M, len(keys))
	for _, k := range keys {
		if v, ok := m[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Omit returns a shallow copy of m without the listed keys
func Omit[M ~map[string]V, V any](m M, keys ...string) M {
	out := make(M, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// IsPlainObject reports whether v is a non-nil map keyed by strings.
// Structs, slices, arrays and nil are not plain objects.
func IsPlainObject(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String && !rv.IsNil()
}

// IsEmpty reports whether m has no keys
func IsEmpty[M ~map[K]V, K comparable, V any](m M) bool {
	return len(m) == 0
}

// DeepClone copies v through a JSON round trip.
//
// The copy is lossy for anything JSON cannot carry:
//   - Undefined and typed nil pointers come back as null
//   - unexported fields and fields tagged json:"-" are dropped
//   - numbers held in interface values come back as float64
//   - NaN and ±Inf fail with an error
//   - cyclic values are not supported
func DeepClone[T any](v T) (T, error) {
	var out T

	b, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("failed to marshal value for clone: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("failed to unmarshal cloned value: %w", err)
	}

	return out, nil
}
