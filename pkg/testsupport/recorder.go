package testsupport

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-formflow/pkg/present"
	"github.com/goliatone/go-formflow/pkg/submission"
)

// PresenterCall is one recorded presenter invocation. Clear calls have an
// empty Kind.
type PresenterCall struct {
	Kind    present.ResultKind
	Message string
}

// ClearCall is the recorded form of Presenter.Clear.
var ClearCall = PresenterCall{}

// Recorder is a thread-safe present.Presenter that records every call.
type Recorder struct {
	mu    sync.Mutex
	calls []PresenterCall
}

var _ present.Presenter = (*Recorder)(nil)

func (r *Recorder) Present(result present.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, PresenterCall{Kind: result.Kind, Message: result.Message})
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, ClearCall)
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []PresenterCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]PresenterCall(nil), r.calls...)
}

// TransitionLog collects controller transitions for assertions.
type TransitionLog struct {
	mu     sync.Mutex
	events []submission.Transition
	notify chan struct{}
}

// NewTransitionLog creates an empty log.
func NewTransitionLog() *TransitionLog {
	return &TransitionLog{notify: make(chan struct{}, 1)}
}

// Observe is the observer callback to pass to submission.WithObserver.
func (l *TransitionLog) Observe(tr submission.Transition) {
	l.mu.Lock()
	l.events = append(l.events, tr)
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Events returns a copy of the recorded transitions.
func (l *TransitionLog) Events() []submission.Transition {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]submission.Transition(nil), l.events...)
}

// Path returns the visited states starting with the first From state.
func (l *TransitionLog) Path() []submission.State {
	events := l.Events()
	if len(events) == 0 {
		return nil
	}
	out := []submission.State{events[0].From}
	for _, ev := range events {
		out = append(out, ev.To)
	}
	return out
}

// WaitFor blocks until n transitions were recorded or the timeout expires.
func (l *TransitionLog) WaitFor(t *testing.T, n int, timeout time.Duration) []submission.Transition {
	t.Helper()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		if events := l.Events(); len(events) >= n {
			return events
		}
		select {
		case <-l.notify:
		case <-deadline.C:
			t.Fatalf("timed out waiting for %d transitions, got %v", n, l.Path())
			return nil
		}
	}
}

// BlockingPort is a submission.Port that holds every request until Release
// is called, so tests control exactly when a pending attempt resolves.
type BlockingPort struct {
	mu       sync.Mutex
	requests []submission.Request
	started  chan submission.Request
	release  chan result
}

type result struct {
	receipt submission.Receipt
	err     error
}

// NewBlockingPort creates a port with no queued results.
func NewBlockingPort() *BlockingPort {
	return &BlockingPort{
		started: make(chan submission.Request, 16),
		release: make(chan result, 16),
	}
}

// Submit records req and waits for Release or cancellation.
func (p *BlockingPort) Submit(ctx context.Context, req submission.Request) (submission.Receipt, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()
	p.started <- req

	select {
	case res := <-p.release:
		return res.receipt, res.err
	case <-ctx.Done():
		return submission.Receipt{}, ctx.Err()
	}
}

// Started delivers each request once Submit has been entered.
func (p *BlockingPort) Started() <-chan submission.Request {
	return p.started
}

// Release resolves the oldest blocked Submit call.
func (p *BlockingPort) Release(receipt submission.Receipt, err error) {
	p.release <- result{receipt: receipt, err: err}
}

// Requests returns a copy of every request received.
func (p *BlockingPort) Requests() []submission.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]submission.Request(nil), p.requests...)
}
