package submission

import "errors"

var (
	// ErrBusy is returned when an attempt is already in flight or awaiting
	// its auto-reset.
	ErrBusy = errors.New("submission: form is busy")
	// ErrClosed is returned once the controller has been torn down.
	ErrClosed = errors.New("submission: controller closed")
	// ErrCancelled resolves attempts aborted through Attempt.Cancel.
	ErrCancelled = errors.New("submission: attempt cancelled")
)
