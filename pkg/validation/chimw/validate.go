// Package chimw validates net/http requests routed by chi against a validation.RequestSchema.
package chimw

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/apikit/pkg/apperr"
	"github.com/DjordjeVuckovic/apikit/pkg/validation"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

type validatedKey struct{}

// ErrorHandlerFunc writes the response for a request that failed validation
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

type Option func(*options)

type options struct {
	errorHandler ErrorHandlerFunc
}

func WithErrorHandler(fn ErrorHandlerFunc) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// ValidateRequest validates the declared sections and writes the validated
// values back onto the request: body, URL query and chi URL params.
// Validated sections are available to handlers through Validated.
func ValidateRequest(s validation.RequestSchema, opts ...Option) func(http.Handler) http.Handler {
	o := options{errorHandler: WriteError}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			out, err := validate(r, s)
			if err != nil {
				slog.LogAttrs(r.Context(), slog.LevelDebug, "REQUEST_VALIDATION_FAILED",
					slog.String("uri", r.RequestURI),
					slog.String("err", err.Error()),
				)
				o.errorHandler(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), validatedKey{}, out)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Validated returns the sections stored by ValidateRequest
func Validated(r *http.Request) (validation.Request, bool) {
	out, ok := r.Context().Value(validatedKey{}).(validation.Request)
	return out, ok
}

// WriteError is the default error handler. Validation errors are written with
// their status and field errors; anything else is a 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := http.StatusInternalServerError, apperr.ErrorBody{Error: "internal server error"}

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		status, body = apperr.ValidationBody(ve)
	} else {
		slog.Error("Unhandled error", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func validate(r *http.Request, s validation.RequestSchema) (validation.Request, error) {
	in, err := extract(r, s)
	if err != nil {
		return in, err
	}

	out, err := validation.ValidateRequest(r.Context(), s, in)
	if err != nil {
		return out, err
	}
	return out, apply(r, s, out)
}

func extract(r *http.Request, s validation.RequestSchema) (validation.Request, error) {
	var in validation.Request

	if s.Body != nil {
		body, err := validation.DecodeBody(r.Body)
		if err != nil {
			return in, err
		}
		in.Body = body
	}

	in.Query = validation.QueryMap(r.URL.Query())

	params := map[string]any{}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	in.Params = params

	return in, nil
}

func apply(r *http.Request, s validation.RequestSchema, out validation.Request) error {
	if s.Body != nil {
		b, err := validation.EncodeBody(out.Body)
		if err != nil {
			return err
		}
		r.Body = io.NopCloser(bytes.NewReader(b))
		r.ContentLength = int64(len(b))
	}

	if s.Query != nil {
		values, err := validation.ToValues(out.Query)
		if err != nil {
			return err
		}
		r.URL.RawQuery = values.Encode()
	}

	if s.Params != nil {
		rctx := chi.RouteContext(r.Context())
		if rctx == nil {
			return nil
		}
		params, err := validation.ToStrings(out.Params)
		if err != nil {
			return err
		}
		for i, key := range rctx.URLParams.Keys {
			if v, ok := params[key]; ok {
				rctx.URLParams.Values[i] = v
			}
		}
	}

	return nil
}
