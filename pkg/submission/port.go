package submission

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/form"
)

// Default user-facing messages.
const (
	ApplicationSuccessMessage = "Application submitted successfully! We'll contact you soon."
	ContactSuccessMessage     = "Message sent successfully! We'll get back to you soon."
	DefaultFailureMessage     = "We could not send your submission. Please try again."
)

// SuccessMessage returns the stock success notice for kind.
func SuccessMessage(kind form.Kind) string {
	if kind == form.KindApplication {
		return ApplicationSuccessMessage
	}
	return ContactSuccessMessage
}

// Request is the payload handed to a Port for one accepted attempt.
type Request struct {
	ID     string
	Kind   form.Kind
	Fields form.FieldSet
}

// Receipt is returned by a Port once the submission was accepted. An empty
// Message makes the controller fall back to SuccessMessage.
type Receipt struct {
	ID      string
	Message string
}

// Port delivers validated submissions. Implementations block until the
// submission resolves or ctx is cancelled. Errors carrying a
// validation.ValidationError surface its message to the user; any other error
// is reported with DefaultFailureMessage.
type Port interface {
	Submit(ctx context.Context, req Request) (Receipt, error)
}

// PortFunc adapts a function to the Port interface.
type PortFunc func(ctx context.Context, req Request) (Receipt, error)

// Submit calls fn.
func (fn PortFunc) Submit(ctx context.Context, req Request) (Receipt, error) {
	return fn(ctx, req)
}
