package validation

import (
	"errors"
	"strings"
)

// ValidationError is the single user-facing error kind. Every failure that
// reaches the presenter, whether raised by the rules here or mapped from a
// transport, is carried as a ValidationError.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// NewError builds a form-level ValidationError.
func NewError(message string) ValidationError {
	return ValidationError{Message: strings.TrimSpace(message)}
}

// MessageFrom extracts the user-facing message from err. It returns the
// message of the first ValidationError in the chain, or fallback when there
// is none.
func MessageFrom(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var vErr ValidationError
	if errors.As(err, &vErr) && strings.TrimSpace(vErr.Message) != "" {
		return vErr.Message
	}
	return fallback
}
