package objutil

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
)

type undefined struct{}

// MarshalJSON renders an undefined value as null
func (undefined) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Undefined marks a key that is present but carries no value.
// A typed nil pointer (an optional field that was never set) is treated the same way.
var Undefined = undefined{}

// IsUndefined reports whether v is Undefined or a typed nil pointer
func IsUndefined(v any) bool {
	if _, ok := v.(undefined); ok {
		return true
	}
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// IsNull reports whether v is an untyped nil
func IsNull(v any) bool {
	return v == nil
}

// IsNullish reports whether v is null or undefined
func IsNullish(v any) bool {
	return IsNull(v) || IsUndefined(v)
}

func isEmptyString(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.String && rv.Len() == 0
}

func isZero(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	default:
		return false
	}
}

func isNaN(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(rv.Float())
	default:
		return false
	}
}

func isFalse(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Bool && !rv.Bool()
}

// IsTruthy mirrors loose truthiness: null, undefined, false, numeric zero,
// NaN and the empty string are falsy. Empty slices and maps are truthy.
func IsTruthy(v any) bool {
	return !(IsNullish(v) || isFalse(v) || isZero(v) || isNaN(v) || isEmptyString(v))
}

// IsNil reports whether v is nil or a nil pointer, map, slice or interface
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// ListElements returns the elements of a slice value.
// Byte slices, arrays and values with their own text form (fmt.Stringer,
// encoding.TextMarshaler) are scalars, so a uuid.UUID is one value.
func ListElements(v any) ([]any, bool) {
	switch v.(type) {
	case []byte, fmt.Stringer, encoding.TextMarshaler:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}

	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, true
}
