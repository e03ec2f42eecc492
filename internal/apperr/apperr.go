// Package apperr holds the error kinds surfaced by the service layer and
// their HTTP status mapping.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	Validation         Kind = "VALIDATION_ERROR"
	DuplicateField     Kind = "DUPLICATE_FIELD"
	Unauthorized       Kind = "UNAUTHORIZED"
	InvalidCredentials Kind = "INVALID_CREDENTIALS"
	NotFound           Kind = "NOT_FOUND"
	AlreadySwiped      Kind = "ALREADY_SWIPED"
	LimitReached       Kind = "LIMIT_REACHED"
	AlreadyPremium     Kind = "ALREADY_PREMIUM"
	SelfTarget         Kind = "SELF_TARGET"
	RateLimited        Kind = "RATE_LIMITED"
	Unavailable        Kind = "UNAVAILABLE"
	StorageFailure     Kind = "STORAGE_FAILURE"
)

// FieldError describes one violated input rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the kind to the HTTP status returned to clients.
func (e *Error) Status() int {
	switch e.Kind {
	case Validation, InvalidCredentials, AlreadySwiped, LimitReached, AlreadyPremium, SelfTarget:
		return http.StatusBadRequest
	case DuplicateField:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case RateLimited:
		return http.StatusTooManyRequests
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Invalid(fields ...FieldError) *Error {
	return &Error{Kind: Validation, Message: "Invalid input", Fields: fields}
}

// Storage wraps an infrastructure failure. The cause is kept for logging and
// never shown to clients.
func Storage(err error) *Error {
	return &Error{Kind: StorageFailure, Message: "Internal server error", Err: err}
}

// As returns the *Error in err's chain, or a StorageFailure wrapping err when
// there is none.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Storage(err)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
