// Package scrollguard serialises smooth-scroll animations. Each animation
// holds a Token; while one is outstanding, further Begin calls are refused.
// A token releases itself when its animation window elapses, so a caller
// that never calls Done cannot wedge the guard.
package scrollguard

import (
	"sync"
	"time"
)

// DefaultWindow is the animation window used when Begin receives a
// non-positive duration.
const DefaultWindow = time.Second

// Guard admits at most one animation at a time. The zero value is ready to
// use.
type Guard struct {
	mu     sync.Mutex
	seq    uint64
	active uint64
	timer  *time.Timer
}

// Token identifies one admitted animation.
type Token struct {
	guard *Guard
	id    uint64
}

// Begin admits a new animation lasting window. It returns false while
// another token is outstanding.
func (g *Guard) Begin(window time.Duration) (Token, bool) {
	if window <= 0 {
		window = DefaultWindow
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active != 0 {
		return Token{}, false
	}
	g.seq++
	id := g.seq
	g.active = id
	g.timer = time.AfterFunc(window, func() { g.release(id) })
	return Token{guard: g, id: id}, true
}

// Active reports whether an animation is in progress.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active != 0
}

// Done ends the animation early. Calling Done on an expired or zero token
// is a no-op and never releases a newer animation.
func (t Token) Done() {
	if t.guard == nil {
		return
	}
	t.guard.release(t.id)
}

func (g *Guard) release(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active != id {
		return
	}
	g.active = 0
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
