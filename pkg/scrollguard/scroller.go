package scrollguard

import (
	"strings"
	"time"
)

// Handler performs one scroll to section. It owns tok for the duration of
// the animation and calls tok.Done when it finishes early; otherwise the
// guard releases the token after the window.
type Handler func(section string, tok Token)

// Scroller routes section navigation through a Guard so a scroll already in
// flight is never interrupted by another one.
type Scroller struct {
	guard  Guard
	window time.Duration
	handle Handler
}

// NewScroller returns a Scroller that hands admitted scrolls to handle. A
// non-positive window falls back to DefaultWindow.
func NewScroller(handle Handler, window time.Duration) *Scroller {
	return &Scroller{window: window, handle: handle}
}

// ScrollTo starts a scroll to section. It reports false, without calling the
// handler, when section is blank or another scroll is in progress.
func (s *Scroller) ScrollTo(section string) bool {
	section = strings.TrimSpace(section)
	if section == "" || s.handle == nil {
		return false
	}
	tok, ok := s.guard.Begin(s.window)
	if !ok {
		return false
	}
	s.handle(section, tok)
	return true
}

// Observe runs fn unless a scroll started by ScrollTo is still animating,
// the way a scroll-spy ignores the events its own animation produces.
func (s *Scroller) Observe(fn func()) bool {
	if fn == nil || s.guard.Active() {
		return false
	}
	fn()
	return true
}

// Scrolling reports whether a scroll is in progress.
func (s *Scroller) Scrolling() bool {
	return s.guard.Active()
}
