package apperr

import "net/http"

// FieldError locates a single validation failure with a dotted path into the input
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message    string
	StatusCode int
	Errors     []FieldError
	Err        error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Status returns StatusCode, falling back to 400
func (e *ValidationError) Status() int {
	if e.StatusCode == 0 {
		return http.StatusBadRequest
	}
	return e.StatusCode
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg, StatusCode: http.StatusBadRequest}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, StatusCode: http.StatusBadRequest, Err: err}
}

// NewFieldValidation reports field-level failures in the order they were found
func NewFieldValidation(errs []FieldError) *ValidationError {
	return &ValidationError{
		Message:    "validation failed",
		StatusCode: http.StatusBadRequest,
		Errors:     errs,
	}
}

// ConfigError reports missing or invalid configuration; it is fatal to the call that hit it
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func NewConfig(msg string) *ConfigError {
	return &ConfigError{Message: msg}
}

func NewConfigWrap(msg string, err error) *ConfigError {
	return &ConfigError{Message: msg, Err: err}
}
