// Package validation checks untrusted input against a schema and reports
// failures as ordered field errors.
//
// Any type with a Parse(ctx, v) (T, error) method is a schema. A failing Parse
// returns Issues; any other error is reported as a single error on the root.
// Struct provides a schema engine driven by `validate` struct tags.
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/apikit/pkg/apperr"
)

type FieldError = apperr.FieldError

// Schema parses unknown input into a typed, possibly coerced or defaulted, value
type Schema[T any] interface {
	Parse(ctx context.Context, v any) (T, error)
}

// Issue is a single failure reported by a schema.
// Path segments are field names (string) or indices (int); an empty path is the root.
type Issue struct {
	Path    []any
	Message string
}

// Field renders the path as a dotted string, e.g. items.2.price
func (i Issue) Field() string {
	segments := make([]string, len(i.Path))
	for n, seg := range i.Path {
		segments[n] = fmt.Sprint(seg)
	}
	return strings.Join(segments, ".")
}

// Issues is the ordered list of failures of one Parse call
type Issues []Issue

func (iss Issues) Error() string {
	if len(iss) == 0 {
		return "validation failed"
	}

	const maxShown = 3
	b := &strings.Builder{}
	for n, it := range iss {
		if n == maxShown {
			fmt.Fprintf(b, "; ... (total %d)", len(iss))
			break
		}
		if n > 0 {
			b.WriteString("; ")
		}
		if field := it.Field(); field != "" {
			b.WriteString(field + ": ")
		}
		b.WriteString(it.Message)
	}
	return b.String()
}

// Erase turns a typed schema into a Schema[any] so it can be used in a RequestSchema
func Erase[T any](s Schema[T]) Schema[any] {
	return erased[T]{s: s}
}

type erased[T any] struct {
	s Schema[T]
}

func (e erased[T]) Parse(ctx context.Context, v any) (any, error) {
	out, err := e.s.Parse(ctx, v)
	if err != nil {
		return nil, err
	}
	return out, nil
}
