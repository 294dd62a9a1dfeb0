package validation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/DjordjeVuckovic/apikit/pkg/apperr"
	"github.com/goccy/go-json"
)

const (
	SectionBody   = "body"
	SectionQuery  = "query"
	SectionParams = "params"
)

// RequestSchema declares which parts of a request are validated; nil sections are skipped
type RequestSchema struct {
	Body   Schema[any]
	Query  Schema[any]
	Params Schema[any]
}

// Request holds the three validatable sections of an HTTP request.
// Before validation Query and Params are map[string]any; afterwards declared
// sections hold whatever their schema produced.
type Request struct {
	Body   any
	Query  any
	Params any
}

// ValidateRequest validates the declared sections in the order body, query, params.
// Errors from all sections are collected and prefixed with the section name.
// On success the returned Request carries the validated sections and passes
// undeclared ones through unchanged.
func ValidateRequest(ctx context.Context, s RequestSchema, in Request) (Request, error) {
	out := in
	var errs []FieldError

	check := func(section string, schema Schema[any], data any, assign func(any)) {
		if schema == nil {
			return
		}
		res := ValidateContext(ctx, schema, data)
		if !res.Success {
			errs = append(errs, prefixed(section, res.Errors)...)
			return
		}
		assign(res.Data)
	}

	check(SectionBody, s.Body, in.Body, func(v any) { out.Body = v })
	check(SectionQuery, s.Query, in.Query, func(v any) { out.Query = v })
	check(SectionParams, s.Params, in.Params, func(v any) { out.Params = v })

	if len(errs) > 0 {
		return in, apperr.NewFieldValidation(errs)
	}
	return out, nil
}

func prefixed(section string, errs []FieldError) []FieldError {
	out := make([]FieldError, len(errs))
	for i, fe := range errs {
		field := section
		if fe.Field != "" {
			field = section + "." + fe.Field
		}
		out[i] = FieldError{Field: field, Message: fe.Message}
	}
	return out
}

// DecodeBody reads a JSON request body. An empty body decodes to an empty object.
// Malformed JSON is reported as a validation error on the "body" field.
func DecodeBody(r io.Reader) (any, error) {
	if r == nil {
		return map[string]any{}, nil
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		ve := apperr.NewFieldValidation([]FieldError{{Field: SectionBody, Message: "invalid JSON body"}})
		ve.Err = err
		return nil, ve
	}
	return body, nil
}

// EncodeBody renders a validated body for replacing the original request body
func EncodeBody(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode validated body: %w", err)
	}
	return b, nil
}

// QueryMap turns raw query values into schema input: single values become
// strings and repeated keys become []string.
func QueryMap(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			out[k] = vs[0]
		default:
			out[k] = append([]string(nil), vs...)
		}
	}
	return out
}

// ToValues renders a validated query back to url.Values.
// Nil fields are dropped, lists become repeated keys and nested objects are JSON encoded.
func ToValues(v any) (url.Values, error) {
	fields, err := toFields(v)
	if err != nil {
		return nil, err
	}

	values := make(url.Values, len(fields))
	for k, raw := range fields {
		switch typed := raw.(type) {
		case nil:
		case []any:
			for _, elem := range typed {
				if elem == nil {
					continue
				}
				s, err := scalar(elem)
				if err != nil {
					return nil, err
				}
				values.Add(k, s)
			}
		default:
			s, err := scalar(typed)
			if err != nil {
				return nil, err
			}
			values.Set(k, s)
		}
	}
	return values, nil
}

// ToStrings renders validated path params back to strings; lists keep their first element
func ToStrings(v any) (map[string]string, error) {
	values, err := ToValues(v)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(values))
	for k := range values {
		out[k] = values.Get(k)
	}
	return out, nil
}

var errNotObject = errors.New("validated value is not an object")

func toFields(v any) (map[string]any, error) {
	if v == nil {
		return map[string]any{}, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode validated value: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, errNotObject
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func scalar(v any) (string, error) {
	switch typed := v.(type) {
	case string:
		return typed, nil
	case bool:
		if typed {
			return "true", nil
		}
		return "false", nil
	case map[string]any, []any:
		b, err := json.Marshal(typed)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(typed), nil
	}
}
