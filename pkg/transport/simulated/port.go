// Package simulated provides a submission.Port that stands in for a network
// round trip: it waits a fixed latency and answers with a fixed, kind-specific
// success message. It never fails on its own.
package simulated

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/submission"
)

// DefaultLatency is the artificial delay applied to every submission.
const DefaultLatency = 2 * time.Second

// Port implements submission.Port without any I/O.
type Port struct {
	latency  time.Duration
	messages map[form.Kind]string
	onSubmit func(submission.Request)
}

// Option configures the simulated port.
type Option func(*Port)

// WithLatency overrides the artificial delay. Negative values are ignored.
func WithLatency(d time.Duration) Option {
	return func(p *Port) {
		if d >= 0 {
			p.latency = d
		}
	}
}

// WithMessages overrides the success message per kind. Empty messages are
// ignored.
func WithMessages(messages map[form.Kind]string) Option {
	return func(p *Port) {
		for kind, msg := range messages {
			if msg != "" {
				p.messages[kind] = msg
			}
		}
	}
}

// WithSubmitHook observes every request before the latency starts, e.g. for
// analytics logging.
func WithSubmitHook(fn func(submission.Request)) Option {
	return func(p *Port) {
		p.onSubmit = fn
	}
}

// New constructs a simulated port.
func New(options ...Option) *Port {
	p := &Port{
		latency: DefaultLatency,
		messages: map[form.Kind]string{
			form.KindApplication: submission.ApplicationSuccessMessage,
			form.KindContact:     submission.ContactSuccessMessage,
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

var _ submission.Port = (*Port)(nil)

// Submit waits for the configured latency and returns the success receipt.
func (p *Port) Submit(ctx context.Context, req submission.Request) (submission.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return submission.Receipt{}, err
	}
	if p.onSubmit != nil {
		p.onSubmit(req)
	}

	timer := time.NewTimer(p.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return submission.Receipt{}, ctx.Err()
	case <-timer.C:
	}

	message, ok := p.messages[req.Kind]
	if !ok {
		message = submission.SuccessMessage(req.Kind)
	}
	return submission.Receipt{ID: uuid.NewString(), Message: message}, nil
}
