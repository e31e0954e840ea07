package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors.
// Code is a stable machine-readable identifier, Details carries the context
// needed to render a precise message (coordinates, sizes, statuses).
type DomainError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

func (e *DomainError) Error() string {
	return e.Message
}

// ErrorCode returns the stable error code
func (e *DomainError) ErrorCode() string {
	return e.Code
}

// ErrorDetails returns the context attached to the error
func (e *DomainError) ErrorDetails() map[string]interface{} {
	return e.Details
}

// WithDetail attaches a context value and returns the same error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func NewDomainErrorf(code, format string, args ...interface{}) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

type coded interface {
	ErrorCode() string
}

type detailed interface {
	ErrorDetails() map[string]interface{}
}

// CodeOf returns the domain error code of err, or "" when err is not a domain error
func CodeOf(err error) string {
	var c coded
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ""
}

// DetailsOf returns the details of a domain error, or nil
func DetailsOf(err error) map[string]interface{} {
	var d detailed
	if errors.As(err, &d) {
		return d.ErrorDetails()
	}
	return nil
}

// HasCode reports whether err carries the given domain error code
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// IsDomainError reports whether err is (or wraps) a domain error
func IsDomainError(err error) bool {
	return CodeOf(err) != ""
}

// Validation error

const CodeValidation = "VALIDATION_ERROR"

type ValidationError struct {
	*DomainError
	Field string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		DomainError: NewDomainErrorf(CodeValidation, "%s: %s", field, message).WithDetail("field", field),
		Field:       field,
	}
}
