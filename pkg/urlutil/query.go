package urlutil

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/DjordjeVuckovic/apikit/pkg/objutil"
)

// Param is one query string entry; Value may be a scalar or a slice
type Param struct {
	Key   string
	Value any
}

func P(key string, value any) Param {
	return Param{Key: key, Value: value}
}

// BuildQueryString serializes params into key=value pairs joined by &, keys sorted.
// See BuildOrderedQueryString for the encoding rules.
func BuildQueryString(params map[string]any) string {
	ordered := make([]Param, 0, len(params))
	for _, k := range sortedKeys(params) {
		ordered = append(ordered, P(k, params[k]))
	}

	return BuildOrderedQueryString(ordered...)
}

// BuildOrderedQueryString serializes params in the given order.
// Slice values repeat the key once per element. Null and undefined values are
// skipped, both as whole entries and as slice elements. Keys and values are
// percent-encoded the way encodeURIComponent does it.
func BuildOrderedQueryString(params ...Param) string {
	pairs := make([]string, 0, len(params))

	for _, p := range params {
		if objutil.IsNullish(p.Value) {
			continue
		}

		if elems, ok := objutil.ListElements(p.Value); ok {
			for _, elem := range elems {
				if objutil.IsNullish(elem) {
					continue
				}
				pairs = append(pairs, encodePair(p.Key, elem))
			}
			continue
		}

		pairs = append(pairs, encodePair(p.Key, p.Value))
	}

	return strings.Join(pairs, "&")
}

func encodePair(key string, value any) string {
	return encodeComponent(key) + "=" + encodeComponent(stringify(value))
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// stringify coerces a value to its string form, dereferencing pointers.
// Text marshalers without a String method use their text form.
func stringify(v any) string {
	if _, ok := v.(fmt.Stringer); !ok {
		if tm, ok := v.(encoding.TextMarshaler); ok {
			if b, err := tm.MarshalText(); err == nil {
				return string(b)
			}
		}
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return ""
	}
	return fmt.Sprint(rv.Interface())
}
