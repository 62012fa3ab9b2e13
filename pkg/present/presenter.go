package present

import "strings"

// ResultKind distinguishes success notices from error notices.
type ResultKind string

const (
	ResultSuccess ResultKind = "success"
	ResultError   ResultKind = "error"
)

// Result is one notice surfaced to the user.
type Result struct {
	Kind    ResultKind `json:"kind"`
	Message string     `json:"message"`
}

// Success builds a success result.
func Success(message string) Result {
	return Result{Kind: ResultSuccess, Message: strings.TrimSpace(message)}
}

// Failure builds an error result.
func Failure(message string) Result {
	return Result{Kind: ResultError, Message: strings.TrimSpace(message)}
}

// Presenter surfaces submission outcomes. Present replaces any visible
// notice; Clear hides it and is a no-op when nothing is visible.
// Implementations must be safe for use from the submission goroutines.
type Presenter interface {
	Present(result Result)
	Clear()
}

// Nop discards every call.
type Nop struct{}

func (Nop) Present(Result) {}
func (Nop) Clear()         {}

// Multi fans calls out to every non-nil presenter in order.
func Multi(presenters ...Presenter) Presenter {
	out := make(multi, 0, len(presenters))
	for _, p := range presenters {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

type multi []Presenter

func (m multi) Present(result Result) {
	for _, p := range m {
		p.Present(result)
	}
}

func (m multi) Clear() {
	for _, p := range m {
		p.Clear()
	}
}
