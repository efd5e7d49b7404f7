package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrValidation = new(ErrCodeValidation, "validation error")
	// ErrNoResult is returned when a request is well formed but no aggregation
	// pipeline exists for it. Transports must render it differently from an
	// all-zero dataset.
	ErrNoResult = new(ErrCodeNoResult, "no result")
	ErrDatabase = new(ErrCodeDatabase, "database error")
	ErrSystem   = new(ErrCodeSystemError, "system error")
	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrValidation: http.StatusBadRequest,
		ErrNoResult:   http.StatusUnprocessableEntity,
		ErrDatabase:   http.StatusInternalServerError,
		ErrSystem:     http.StatusInternalServerError,
	}
)

const (
	ErrCodeSystemError = "system_error"
	ErrCodeValidation  = "validation_error"
	ErrCodeNoResult    = "no_result"
	ErrCodeDatabase    = "database_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNoResult checks if an error is the no result signal
func IsNoResult(err error) bool {
	return errors.Is(err, ErrNoResult)
}

// IsDatabase checks if an error came from the backing store
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// Code returns the machine readable code of the first sentinel err is marked with
func Code(err error) string {
	for _, e := range []*InternalError{ErrValidation, ErrNoResult, ErrDatabase, ErrSystem} {
		if errors.Is(err, e) {
			return e.Code
		}
	}
	return ErrCodeSystemError
}
