package scrollguard_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/scrollguard"
)

func TestScroller_HandsTokenToHandler(t *testing.T) {
	var (
		visited []string
		tokens  []scrollguard.Token
	)
	s := scrollguard.NewScroller(func(section string, tok scrollguard.Token) {
		visited = append(visited, section)
		tokens = append(tokens, tok)
	}, time.Minute)

	if !s.ScrollTo(" programs ") {
		t.Fatalf("first scroll should be admitted")
	}
	if s.ScrollTo("contact") {
		t.Fatalf("scroll should be refused while another is animating")
	}
	if !s.Scrolling() {
		t.Fatalf("scroller should report an animation in progress")
	}

	tokens[0].Done()
	if !s.ScrollTo("contact") {
		t.Fatalf("scroll should be admitted once the token is done")
	}
	tokens[1].Done()

	if diff := cmp.Diff([]string{"programs", "contact"}, visited); diff != "" {
		t.Fatalf("visited mismatch (-want +got):\n%s", diff)
	}
}

func TestScroller_ObserveSkipsWhileScrolling(t *testing.T) {
	var tok scrollguard.Token
	s := scrollguard.NewScroller(func(_ string, got scrollguard.Token) { tok = got }, time.Minute)

	calls := 0
	spy := func() { calls++ }

	if !s.Observe(spy) {
		t.Fatalf("observe should run while idle")
	}
	s.ScrollTo("apply")
	if s.Observe(spy) {
		t.Fatalf("observe should be skipped during a scroll")
	}
	tok.Done()
	if !s.Observe(spy) {
		t.Fatalf("observe should run after the scroll")
	}
	if calls != 2 {
		t.Fatalf("want 2 spy calls, got %d", calls)
	}
}

func TestScroller_WindowReleasesForgottenToken(t *testing.T) {
	s := scrollguard.NewScroller(func(string, scrollguard.Token) {}, 10*time.Millisecond)

	if !s.ScrollTo("home") {
		t.Fatalf("first scroll should be admitted")
	}
	deadline := time.Now().Add(2 * time.Second)
	for s.Scrolling() {
		if time.Now().After(deadline) {
			t.Fatalf("window did not release the scroll")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !s.ScrollTo("home") {
		t.Fatalf("scroll should be admitted after the window")
	}
}

func TestScroller_RejectsBlankSectionAndNilHandler(t *testing.T) {
	if scrollguard.NewScroller(nil, 0).ScrollTo("home") {
		t.Fatalf("nil handler should refuse scrolls")
	}
	s := scrollguard.NewScroller(func(string, scrollguard.Token) {
		t.Fatalf("handler must not run for a blank section")
	}, 0)
	if s.ScrollTo("  ") || s.Scrolling() {
		t.Fatalf("blank section should be refused without taking the guard")
	}
}
