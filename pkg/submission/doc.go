// Package submission drives the per-form submission state machine.
//
// A Controller is created for each form instance. Submit validates the field
// set; rejected input moves the form straight to Failed and is reported
// through the presenter without touching the Port. Accepted input moves the
// form to Pending and is handed to the Port on a background goroutine. The
// Port is the only seam to the outside world: the simulated transport stands
// in for a network call, and the HTTP transport performs a real one, without
// any change to callers.
//
// Ordering is strict per controller: Pending always precedes Succeeded, and
// Succeeded always precedes the auto-reset to Idle. Only one attempt is in
// flight at a time; Submit returns ErrBusy until the form is back in Idle or
// Failed.
package submission
