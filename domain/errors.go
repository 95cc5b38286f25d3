package domain

import "net/http"

type ErrorKind int

const (
	ErrValidation ErrorKind = iota
	ErrAuth
	ErrQuotaExceeded
	ErrExtraction
	ErrGeneration
	ErrSynthesis
	ErrPersistence
)

// Error carries the failure taxonomy used at the request boundary. The
// controller maps Kind to an HTTP status and returns Message verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case ErrValidation, ErrExtraction:
		return http.StatusBadRequest
	case ErrAuth:
		return http.StatusUnauthorized
	case ErrQuotaExceeded:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

func NewAuthError(message string) *Error {
	return &Error{Kind: ErrAuth, Message: message}
}

func NewQuotaExceededError(message string) *Error {
	return &Error{Kind: ErrQuotaExceeded, Message: message}
}

func NewExtractionError(message string, cause error) *Error {
	return &Error{Kind: ErrExtraction, Message: message, Cause: cause}
}

func NewGenerationError(message string, cause error) *Error {
	return &Error{Kind: ErrGeneration, Message: message, Cause: cause}
}

func NewSynthesisError(message string, cause error) *Error {
	return &Error{Kind: ErrSynthesis, Message: message, Cause: cause}
}

func NewPersistenceError(message string, cause error) *Error {
	return &Error{Kind: ErrPersistence, Message: message, Cause: cause}
}
