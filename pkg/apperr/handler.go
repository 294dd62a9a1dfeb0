package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Error  string       `json:"error"`
	Title  string       `json:"title,omitempty"`
	Errors []FieldError `json:"errors,omitempty"`
}

// ValidationBody renders a validation error with its status code
func ValidationBody(ve *ValidationError) (int, ErrorBody) {
	return ve.Status(), ErrorBody{
		Error:  ve.Message,
		Title:  "validation error",
		Errors: ve.Errors,
	}
}

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(ValidationBody(ve))
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, ErrorBody{Error: msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, ErrorBody{Error: "internal server error"})
	}
}
