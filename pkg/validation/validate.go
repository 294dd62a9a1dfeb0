package validation

import (
	"context"
	"errors"

	"github.com/DjordjeVuckovic/apikit/pkg/apperr"
)

// Result is the outcome of validating one input.
// On success Data holds the parsed value; otherwise Errors lists every failure in order.
type Result[T any] struct {
	Success bool         `json:"success"`
	Data    T            `json:"data"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Err returns nil on success and a 400 *apperr.ValidationError otherwise
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return apperr.NewFieldValidation(r.Errors)
}

func Validate[T any](schema Schema[T], data any) Result[T] {
	return ValidateContext(context.Background(), schema, data)
}

// ValidateContext runs the schema with ctx available to its refinements.
// A cancelled ctx fails the result without running the schema.
func ValidateContext[T any](ctx context.Context, schema Schema[T], data any) Result[T] {
	if err := ctx.Err(); err != nil {
		return Result[T]{Errors: []FieldError{{Message: err.Error()}}}
	}

	out, err := schema.Parse(ctx, data)
	if err != nil {
		return Result[T]{Errors: fieldErrors(err)}
	}
	return Result[T]{Success: true, Data: out}
}

func ValidateOrError[T any](schema Schema[T], data any) (T, error) {
	return ValidateOrErrorContext(context.Background(), schema, data)
}

func ValidateOrErrorContext[T any](ctx context.Context, schema Schema[T], data any) (T, error) {
	res := ValidateContext(ctx, schema, data)
	if !res.Success {
		var zero T
		return zero, res.Err()
	}
	return res.Data, nil
}

func fieldErrors(err error) []FieldError {
	var issues Issues
	if !errors.As(err, &issues) || len(issues) == 0 {
		return []FieldError{{Message: err.Error()}}
	}

	errs := make([]FieldError, len(issues))
	for i, it := range issues {
		errs[i] = FieldError{Field: it.Field(), Message: it.Message}
	}
	return errs
}
