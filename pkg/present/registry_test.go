package present_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/present"
)

type recordingPresenter struct {
	calls []string
}

func (r *recordingPresenter) Present(result present.Result) {
	r.calls = append(r.calls, string(result.Kind)+":"+result.Message)
}

func (r *recordingPresenter) Clear() {
	r.calls = append(r.calls, "clear")
}

func TestRegistry(t *testing.T) {
	registry := present.NewRegistry()
	factory := func(io.Writer) (present.Presenter, error) { return present.Nop{}, nil }

	registry.MustRegister("terminal", factory)
	registry.MustRegister("html", factory)

	if err := registry.Register("terminal", factory); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(" ", factory); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := registry.Register("nil", nil); err == nil {
		t.Fatalf("expected nil factory error")
	}

	if diff := cmp.Diff([]string{"html", "terminal"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has(" html ") {
		t.Fatalf("expected html presenter to be registered")
	}

	p, err := registry.New("terminal", &bytes.Buffer{})
	if err != nil || p == nil {
		t.Fatalf("new terminal presenter: %v", err)
	}
	if _, err := registry.New("missing", nil); err == nil {
		t.Fatalf("expected missing presenter error")
	}
}

func TestMultiFansOut(t *testing.T) {
	first := &recordingPresenter{}
	second := &recordingPresenter{}
	p := present.Multi(first, nil, second)

	p.Present(present.Failure("  Please enter your name. "))
	p.Clear()

	want := []string{"error:Please enter your name.", "clear"}
	if diff := cmp.Diff(want, first.calls); diff != "" {
		t.Fatalf("first presenter (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, second.calls); diff != "" {
		t.Fatalf("second presenter (-want +got):\n%s", diff)
	}
}
