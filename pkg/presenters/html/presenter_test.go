package html_test

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/present"
	"github.com/goliatone/go-formflow/pkg/presenters/html"
	"github.com/goliatone/go-formflow/pkg/testsupport"
)

func defaultPresenter(t *testing.T, opts ...html.Option) *html.Presenter {
	t.Helper()
	selector, err := html.NewManifestSelector(html.DefaultManifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	opts = append([]html.Option{html.WithTheme(selector, html.DefaultThemeName, "")}, opts...)
	p, err := html.New(nil, opts...)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}
	return p
}

func TestPresenter_RenderGolden(t *testing.T) {
	p := defaultPresenter(t)

	got, err := p.Render(present.Success("Application submitted successfully!"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	golden := filepath.Join("testdata", "success.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(got)) {
		return
	}
	if diff := cmp.Diff(testsupport.MustReadGoldenString(t, golden), got); diff != "" {
		t.Fatalf("fragment mismatch (-want +got):\n%s", diff)
	}
}

func TestPresenter_PresentWritesAndClear(t *testing.T) {
	var (
		sinks []string
		buf   bytes.Buffer
	)
	selector, err := html.NewManifestSelector(html.DefaultManifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	p, err := html.New(&buf,
		html.WithTheme(selector, "", "dark"),
		html.WithSink(func(fragment string) { sinks = append(sinks, fragment) }),
	)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}

	p.Clear()
	if len(sinks) != 0 || buf.Len() != 0 {
		t.Fatalf("clear on empty presenter should be silent")
	}

	p.Present(present.Failure("Please enter a valid phone number"))
	fragment := p.HTML()
	for _, want := range []string{
		`formflow-notice--error`,
		`role="alert"`,
		`--notice-error-bg: #b71c1c;`,
		`--notice-radius: 6px;`,
		`>Please enter a valid phone number</div>`,
	} {
		if !strings.Contains(fragment, want) {
			t.Fatalf("fragment %q missing %q", fragment, want)
		}
	}
	if buf.String() != fragment+"\n" {
		t.Fatalf("writer mismatch: %q", buf.String())
	}

	p.Clear()
	p.Clear()
	if p.HTML() != "" {
		t.Fatalf("expected empty fragment after clear")
	}
	if diff := cmp.Diff([]string{fragment, ""}, sinks); diff != "" {
		t.Fatalf("sink mismatch (-want +got):\n%s", diff)
	}
}

func TestPresenter_SanitizesMessage(t *testing.T) {
	p := defaultPresenter(t)

	got, err := p.Render(present.Failure(`<script>alert(1)</script><strong>Sent</strong> <img src=x onerror=alert(1)>`))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<script") || strings.Contains(got, "onerror") || strings.Contains(got, "<img") {
		t.Fatalf("unsafe markup survived: %q", got)
	}
	if !strings.Contains(got, "<strong>Sent</strong>") {
		t.Fatalf("inline emphasis should be kept: %q", got)
	}
}

type stubSelector struct {
	selection *theme.Selection
	err       error
	calls     [][2]string
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	return s.selection, s.err
}

func TestPresenter_ThemeSelection(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "contrast",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand": "#123456", "ink": "#000"},
			Variants: map[string]theme.Variant{
				"contrast": {Tokens: map[string]string{"ink": "#fff"}},
			},
		},
	}}

	p, err := html.New(nil, html.WithTheme(selector, "acme", "contrast"))
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}
	if diff := cmp.Diff([][2]string{{"acme", "contrast"}}, selector.calls); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}

	got, err := p.Render(present.Success("ok"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, `data-theme="acme"`) || !strings.Contains(got, `style="--brand: #123456; --ink: #fff;"`) {
		t.Fatalf("theme not applied: %q", got)
	}

	failing := &stubSelector{err: errors.New("boom")}
	if _, err := html.New(nil, html.WithTheme(failing, "acme", "")); err == nil {
		t.Fatalf("expected selector error")
	}
}

func TestManifestSelector(t *testing.T) {
	selector, err := html.NewManifestSelector(html.DefaultManifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	if _, err := selector.Select("missing", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if _, err := selector.Select(html.DefaultThemeName, "sepia"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := html.NewManifestSelector(html.DefaultManifest(), html.DefaultManifest()); err == nil {
		t.Fatalf("expected duplicate manifest error")
	}
}

func TestPresenter_WithoutTheme(t *testing.T) {
	p, err := html.New(nil)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}
	got, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		out, err := p.Render(present.Success("Done"))
		if err == nil {
			_, _ = io.WriteString(w, out)
		}
		return out, err
	})
	want := `<div class="formflow-notice formflow-notice--success" role="status" data-theme="">Done</div>`
	if got != want || written != want {
		t.Fatalf("unexpected fragment %q", got)
	}
}

func TestFactory(t *testing.T) {
	reg := present.NewRegistry()
	reg.MustRegister("html", html.Factory)

	var buf bytes.Buffer
	p, err := reg.New("html", &buf)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}
	p.Present(present.Success("Sent"))
	if !strings.Contains(buf.String(), `data-theme="formflow"`) {
		t.Fatalf("expected default theme, got %q", buf.String())
	}
}
