package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`

	// MissingPrerequisites carries the unmet prerequisite course codes for
	// PREREQUISITES_UNMET so callers can render them without re-querying.
	MissingPrerequisites []string `json:"missing_prerequisites,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Cart-admission and registration workflow errors. User-facing and
// non-fatal: the mutation is blocked and no retry is expected.
var (
	ErrAlreadyEnrolled     = New("ALREADY_ENROLLED", http.StatusConflict, "course already enrolled")
	ErrAlreadyInCart       = New("ALREADY_IN_CART", http.StatusConflict, "course already in cart")
	ErrCreditLimitExceeded = New("CREDIT_LIMIT_EXCEEDED", http.StatusUnprocessableEntity, "credit limit exceeded")
	ErrPrerequisitesUnmet  = New("PREREQUISITES_UNMET", http.StatusUnprocessableEntity, "prerequisites not met")
	ErrNoSubjectSelected   = New("NO_SUBJECT_SELECTED", http.StatusPreconditionFailed, "no student subject selected")
	ErrUpstream            = New("UPSTREAM_UNAVAILABLE", http.StatusBadGateway, "upstream service unavailable")
)

// PrerequisitesUnmet builds a PREREQUISITES_UNMET error carrying the missing
// course codes.
func PrerequisitesUnmet(missing []string) *Error {
	err := Clone(ErrPrerequisitesUnmet, "")
	err.MissingPrerequisites = missing
	return err
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
