package scrollguard_test

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/goliatone/go-formflow/pkg/scrollguard"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGuard_RejectsReentrantBegin(t *testing.T) {
	var g scrollguard.Guard

	tok, ok := g.Begin(time.Minute)
	if !ok {
		t.Fatalf("first begin should be admitted")
	}
	if _, ok := g.Begin(time.Minute); ok {
		t.Fatalf("second begin should be refused while active")
	}

	tok.Done()
	if g.Active() {
		t.Fatalf("guard should be idle after Done")
	}

	next, ok := g.Begin(time.Minute)
	if !ok {
		t.Fatalf("begin after Done should be admitted")
	}
	next.Done()
}

func TestGuard_AutoRelease(t *testing.T) {
	var g scrollguard.Guard

	stale, ok := g.Begin(10 * time.Millisecond)
	if !ok {
		t.Fatalf("begin should be admitted")
	}

	deadline := time.Now().Add(time.Second)
	for g.Active() {
		if time.Now().After(deadline) {
			t.Fatalf("token did not expire")
		}
		time.Sleep(5 * time.Millisecond)
	}

	fresh, ok := g.Begin(time.Minute)
	if !ok {
		t.Fatalf("begin after expiry should be admitted")
	}
	stale.Done()
	if !g.Active() {
		t.Fatalf("stale token must not release a newer animation")
	}
	fresh.Done()
	fresh.Done()
	if g.Active() {
		t.Fatalf("guard should be idle")
	}
}

func TestToken_ZeroValue(t *testing.T) {
	var tok scrollguard.Token
	tok.Done()
}
