package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/present"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Controller owns the submission state of one form instance. It validates
// each attempt, hands accepted ones to the Port, reports outcomes to the
// Presenter and resets the form after a successful submission. Controllers
// share nothing; create one per form.
type Controller struct {
	kind      form.Kind
	port      Port
	presenter present.Presenter
	validator validation.Validator

	resetDelay time.Duration
	resetFn    func()
	observers  []func(Transition)
	logger     *zap.Logger
	newID      func() string
	now        func() time.Time

	// gate admits one attempt at a time. It is held from the start of
	// Submit until the form is back in Idle or Failed.
	gate *semaphore.Weighted

	mu         sync.Mutex
	state      State
	// snapshot mirrors state for State(), which callbacks running under
	// emitMu may call while another goroutine holds mu.
	snapshot   atomic.Value
	closed     bool
	current    *Attempt
	resetTimer *time.Timer

	// emitMu orders presenter and observer callbacks the same way the
	// transitions were applied without holding mu while they run.
	emitMu sync.Mutex
	wg     sync.WaitGroup
}

// New constructs a controller for kind. A nil presenter discards notices.
func New(kind form.Kind, port Port, presenter present.Presenter, options ...Option) (*Controller, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("submission: unsupported form kind %q", kind)
	}
	if port == nil {
		return nil, errors.New("submission: port is required")
	}
	if presenter == nil {
		presenter = present.Nop{}
	}

	c := &Controller{
		kind:       kind,
		port:       port,
		presenter:  presenter,
		validator:  validation.Default,
		resetDelay: DefaultResetDelay,
		logger:     zap.NewNop(),
		newID:      defaultIDGenerator,
		now:        time.Now,
		gate:       semaphore.NewWeighted(1),
		state:      StateIdle,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.snapshot.Store(StateIdle)
	return c, nil
}

// Kind reports the form kind handled by the controller.
func (c *Controller) Kind() form.Kind {
	return c.kind
}

// State reports the most recently applied state. Inside an observer it may
// already be ahead of the transition being observed.
func (c *Controller) State() State {
	return c.snapshot.Load().(State)
}

// Submit starts an attempt with fields. Invalid input resolves the returned
// attempt immediately with a Failed outcome. Valid input moves the form to
// Pending and resolves once the port answers. While an attempt is pending or
// its success notice is still shown, Submit returns ErrBusy and leaves the
// in-flight attempt untouched.
func (c *Controller) Submit(ctx context.Context, fields form.FieldSet) (*Attempt, error) {
	if ctx == nil {
		return nil, errors.New("submission: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !c.gate.TryAcquire(1) {
		return nil, ErrBusy
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.gate.Release(1)
		return nil, ErrClosed
	}

	att := newAttempt(c.newID(), c.kind, fields)
	c.current = att

	if c.state == StateFailed {
		c.transitionLocked(att, StateIdle, "", c.presenter.Clear)
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			c.gate.Release(1)
			return nil, ErrClosed
		}
	}

	verdict := c.validator.Validate(fields, c.kind)
	if !verdict.Valid {
		c.transitionLocked(att, StateFailed, verdict.Message, func() {
			c.presenter.Present(present.Failure(verdict.Message))
		})
		c.logger.Info("submission rejected",
			zap.String("form", c.kind.String()),
			zap.String("attempt", att.ID()),
			zap.String("field", verdict.Field),
		)
		att.resolve(Outcome{State: StateFailed, Message: verdict.Message, Err: verdict.Err()}, nil)
		c.gate.Release(1)
		att.settle()
		return att, nil
	}

	portCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	att.cancel = cancel
	c.wg.Add(1)
	c.transitionLocked(att, StatePending, "", c.presenter.Clear)
	c.logger.Info("submission accepted",
		zap.String("form", c.kind.String()),
		zap.String("attempt", att.ID()),
	)

	go c.run(portCtx, cancel, att)
	return att, nil
}

// Close tears the controller down: the in-flight port call is cancelled,
// a scheduled reset is dropped and no further transitions fire. Close waits
// for background work to stop and is safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	att := c.current
	timer := c.resetTimer
	c.resetTimer = nil
	c.mu.Unlock()

	if att != nil && att.cancel != nil {
		att.cancel()
	}
	if timer != nil && timer.Stop() {
		c.wg.Done()
		att.settle()
	}
	c.wg.Wait()
	return nil
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, att *Attempt) {
	defer c.wg.Done()
	defer cancel()

	req := Request{ID: att.ID(), Kind: c.kind, Fields: att.fields}
	receipt, err := c.port.Submit(ctx, req)

	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		att.resolve(Outcome{State: StatePending}, ErrClosed)
		c.gate.Release(1)
		att.settle()

	case att.cancelled.Load():
		c.transitionLocked(att, StateIdle, "", c.presenter.Clear)
		c.logger.Info("submission cancelled",
			zap.String("form", c.kind.String()),
			zap.String("attempt", att.ID()),
		)
		att.resolve(Outcome{State: StateIdle}, ErrCancelled)
		c.gate.Release(1)
		att.settle()

	case err != nil:
		message := validation.MessageFrom(err, DefaultFailureMessage)
		c.transitionLocked(att, StateFailed, message, func() {
			c.presenter.Present(present.Failure(message))
		})
		c.logger.Warn("submission failed",
			zap.String("form", c.kind.String()),
			zap.String("attempt", att.ID()),
			zap.Error(err),
		)
		att.resolve(Outcome{State: StateFailed, Message: message, Err: err}, nil)
		c.gate.Release(1)
		att.settle()

	default:
		message := receipt.Message
		if message == "" {
			message = SuccessMessage(c.kind)
		}
		c.wg.Add(1)
		c.resetTimer = time.AfterFunc(c.resetDelay, func() { c.reset(att) })
		c.transitionLocked(att, StateSucceeded, message, func() {
			c.presenter.Present(present.Success(message))
		})
		c.logger.Info("submission succeeded",
			zap.String("form", c.kind.String()),
			zap.String("attempt", att.ID()),
			zap.String("receipt", receipt.ID),
		)
		att.resolve(Outcome{State: StateSucceeded, Message: message}, nil)
	}
}

func (c *Controller) reset(att *Attempt) {
	defer c.wg.Done()

	c.mu.Lock()
	if c.closed || c.state != StateSucceeded || c.current != att {
		c.mu.Unlock()
		att.settle()
		return
	}
	c.resetTimer = nil
	c.transitionLocked(att, StateIdle, "", func() {
		c.presenter.Clear()
		if c.resetFn != nil {
			c.resetFn()
		}
	})
	c.gate.Release(1)
	att.settle()
}

// transitionLocked applies a state change. It must be called with c.mu held
// and returns with c.mu released; effect and observers run after the change,
// serialized by emitMu so callbacks observe transitions in order.
func (c *Controller) transitionLocked(att *Attempt, to State, message string, effect func()) {
	from := c.state
	if !IsTransitionAllowed(from, to) {
		c.logger.Error("illegal submission transition",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	c.state = to
	c.snapshot.Store(to)
	tr := Transition{
		Attempt: att.ID(),
		From:    from,
		To:      to,
		Message: message,
		At:      c.now(),
	}

	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()

	if effect != nil {
		effect()
	}
	for _, observe := range c.observers {
		observe(tr)
	}
	c.logger.Debug("submission transition",
		zap.String("form", c.kind.String()),
		zap.String("attempt", tr.Attempt),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)
}
