package submission

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/validation"
)

// DefaultResetDelay is how long a success notice stays visible before the
// form resets.
const DefaultResetDelay = 3 * time.Second

// Option configures a Controller.
type Option func(*Controller)

// WithValidator overrides the rule set used before each attempt.
func WithValidator(v validation.Validator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithResetDelay overrides the delay between Succeeded and the auto-reset.
// Negative values are ignored; zero resets on the next timer tick.
func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.resetDelay = d
		}
	}
}

// WithResetFunc registers the hook that clears the form inputs during the
// auto-reset.
func WithResetFunc(fn func()) Option {
	return func(c *Controller) {
		c.resetFn = fn
	}
}

// WithObserver registers a callback invoked for every transition, in order.
// Observers may read controller state but must not call Submit or Close.
func WithObserver(fn func(Transition)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIDGenerator overrides attempt ID generation (uuid by default).
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithClock overrides the time source used to stamp transitions.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func defaultIDGenerator() string {
	return uuid.NewString()
}
