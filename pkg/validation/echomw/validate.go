// Package echomw validates echo requests against a validation.RequestSchema.
package echomw

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/DjordjeVuckovic/apikit/pkg/validation"
	"github.com/labstack/echo/v4"
)

const ValidatedKey = "apikit.validated"

// ValidateRequest validates the declared sections and writes the validated
// values back onto the request, so handlers see coerced and defaulted input.
// Failures are returned to echo's HTTPErrorHandler as *apperr.ValidationError.
func ValidateRequest(s validation.RequestSchema) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			in, err := extract(c, s)
			if err != nil {
				return err
			}

			out, err := validation.ValidateRequest(c.Request().Context(), s, in)
			if err != nil {
				slog.LogAttrs(context.Background(), slog.LevelDebug, "REQUEST_VALIDATION_FAILED",
					slog.String("uri", c.Request().RequestURI),
					slog.String("err", err.Error()),
				)
				return err
			}

			if err := apply(c, s, out); err != nil {
				return err
			}

			c.Set(ValidatedKey, out)
			return next(c)
		}
	}
}

// Validated returns the sections stored by ValidateRequest
func Validated(c echo.Context) (validation.Request, bool) {
	out, ok := c.Get(ValidatedKey).(validation.Request)
	return out, ok
}

func extract(c echo.Context, s validation.RequestSchema) (validation.Request, error) {
	var in validation.Request

	if s.Body != nil {
		body, err := validation.DecodeBody(c.Request().Body)
		if err != nil {
			return in, err
		}
		in.Body = body
	}

	in.Query = validation.QueryMap(c.QueryParams())

	params := make(map[string]any, len(c.ParamNames()))
	for _, name := range c.ParamNames() {
		params[name] = c.Param(name)
	}
	in.Params = params

	return in, nil
}

func apply(c echo.Context, s validation.RequestSchema, out validation.Request) error {
	req := c.Request()

	if s.Body != nil {
		b, err := validation.EncodeBody(out.Body)
		if err != nil {
			return err
		}
		req.Body = io.NopCloser(bytes.NewReader(b))
		req.ContentLength = int64(len(b))
	}

	if s.Query != nil {
		values, err := validation.ToValues(out.Query)
		if err != nil {
			return err
		}
		req.URL.RawQuery = values.Encode()

		cached := c.QueryParams()
		clear(cached)
		for k, v := range values {
			cached[k] = v
		}
	}

	if s.Params != nil {
		params, err := validation.ToStrings(out.Params)
		if err != nil {
			return err
		}

		names := c.ParamNames()
		values := make([]string, len(names))
		for i, name := range names {
			values[i] = c.Param(name)
			if v, ok := params[name]; ok {
				values[i] = v
			}
		}
		c.SetParamValues(values...)
	}

	return nil
}
