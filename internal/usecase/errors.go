package usecase

import "errors"

// Error kinds returned by every service. Handlers map them to status codes
// with errors.Is; wrapped text carries the user-facing detail.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// DetailError carries a user-facing message alongside its kind.
type DetailError struct {
	Kind    error
	Message string
	Fields  map[string]string
}

func (e *DetailError) Error() string {
	return e.Message
}

func (e *DetailError) Unwrap() error {
	return e.Kind
}

func validationError(fields map[string]string) error {
	return &DetailError{Kind: ErrValidation, Message: "Validation failed", Fields: fields}
}

func newError(kind error, message string) error {
	return &DetailError{Kind: kind, Message: message}
}
