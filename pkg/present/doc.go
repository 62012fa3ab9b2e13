// Package present defines the presentation boundary: the Presenter contract
// that receives submission outcomes, plus small helpers (Multi, Nop, Registry)
// for composing concrete presenters such as the terminal and HTML ones.
package present
