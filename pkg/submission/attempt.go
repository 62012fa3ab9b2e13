package submission

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-formflow/pkg/form"
)

// Outcome is the resolved result of an attempt. Err carries the cause of a
// Failed outcome (a validation.ValidationError or the transport error).
type Outcome struct {
	State   State
	Message string
	Err     error
}

// Attempt is the deferred result of Controller.Submit.
type Attempt struct {
	id     string
	kind   form.Kind
	fields form.FieldSet

	done       chan struct{}
	settled    chan struct{}
	doneOnce   sync.Once
	settleOnce sync.Once

	outcome Outcome
	err     error

	cancel    context.CancelFunc
	cancelled atomic.Bool
}

func newAttempt(id string, kind form.Kind, fields form.FieldSet) *Attempt {
	return &Attempt{
		id:      id,
		kind:    kind,
		fields:  fields,
		done:    make(chan struct{}),
		settled: make(chan struct{}),
	}
}

// ID identifies the attempt in transitions, logs and transport headers.
func (a *Attempt) ID() string {
	return a.id
}

// Kind reports the form kind the attempt was made for.
func (a *Attempt) Kind() form.Kind {
	return a.kind
}

// Done is closed once the attempt resolved (Succeeded, Failed, cancelled or
// torn down).
func (a *Attempt) Done() <-chan struct{} {
	return a.done
}

// Settled is closed once the form no longer belongs to this attempt: right
// after a Failed outcome, or after the auto-reset that follows success.
func (a *Attempt) Settled() <-chan struct{} {
	return a.settled
}

// Wait blocks until the attempt resolves. The returned error is ctx.Err(),
// ErrCancelled or ErrClosed; validation and transport failures are reported
// through Outcome instead.
func (a *Attempt) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-a.done:
		return a.outcome, a.err
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

// Cancel aborts an in-flight attempt. It is a no-op once the attempt has
// resolved.
func (a *Attempt) Cancel() {
	select {
	case <-a.done:
		return
	default:
	}
	if a.cancel == nil {
		return
	}
	a.cancelled.Store(true)
	a.cancel()
}

func (a *Attempt) resolve(outcome Outcome, err error) {
	a.doneOnce.Do(func() {
		a.outcome = outcome
		a.err = err
		close(a.done)
	})
}

func (a *Attempt) settle() {
	a.settleOnce.Do(func() {
		close(a.settled)
	})
}
