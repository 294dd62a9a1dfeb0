// Package ginmw validates gin requests against a validation.RequestSchema.
package ginmw

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/apikit/pkg/apperr"
	"github.com/DjordjeVuckovic/apikit/pkg/validation"
	"github.com/gin-gonic/gin"
)

const ValidatedKey = "apikit.validated"

// ValidateRequest validates the declared sections and writes the validated
// values back onto the request. On failure the error is recorded with c.Error
// and the chain is aborted; ErrorHandler renders it.
//
// The query is rewritten on c.Request.URL, so it must run before anything
// that reads c.Query.
func ValidateRequest(s validation.RequestSchema) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := validate(c, s)
		if err != nil {
			slog.Debug("request validation failed", "path", c.Request.URL.Path, "err", err)
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(ValidatedKey, out)
		c.Next()
	}
}

func validate(c *gin.Context, s validation.RequestSchema) (validation.Request, error) {
	in, err := extract(c, s)
	if err != nil {
		return in, err
	}

	out, err := validation.ValidateRequest(c.Request.Context(), s, in)
	if err != nil {
		return out, err
	}
	return out, apply(c, s, out)
}

// Validated returns the sections stored by ValidateRequest
func Validated(c *gin.Context) (validation.Request, bool) {
	v, ok := c.Get(ValidatedKey)
	if !ok {
		return validation.Request{}, false
	}
	out, ok := v.(validation.Request)
	return out, ok
}

// ErrorHandler renders errors recorded by handlers further down the chain.
// Validation errors keep their status and field errors; anything else is a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var ve *apperr.ValidationError
		if errors.As(err, &ve) {
			c.JSON(apperr.ValidationBody(ve))
			return
		}

		slog.Error("Unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, apperr.ErrorBody{Error: "internal server error"})
	}
}

func extract(c *gin.Context, s validation.RequestSchema) (validation.Request, error) {
	var in validation.Request

	if s.Body != nil {
		body, err := validation.DecodeBody(c.Request.Body)
		if err != nil {
			return in, err
		}
		in.Body = body
	}

	in.Query = validation.QueryMap(c.Request.URL.Query())

	params := make(map[string]any, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}
	in.Params = params

	return in, nil
}

func apply(c *gin.Context, s validation.RequestSchema, out validation.Request) error {
	if s.Body != nil {
		b, err := validation.EncodeBody(out.Body)
		if err != nil {
			return err
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(b))
		c.Request.ContentLength = int64(len(b))
	}

	if s.Query != nil {
		values, err := validation.ToValues(out.Query)
		if err != nil {
			return err
		}
		c.Request.URL.RawQuery = values.Encode()
	}

	if s.Params != nil {
		params, err := validation.ToStrings(out.Params)
		if err != nil {
			return err
		}
		for i := range c.Params {
			if v, ok := params[c.Params[i].Key]; ok {
				c.Params[i].Value = v
			}
		}
	}

	return nil
}
