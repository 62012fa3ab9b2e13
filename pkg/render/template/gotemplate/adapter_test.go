package gotemplate_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formflow/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formflow/pkg/testsupport"
)

var templates = fstest.MapFS{
	"hello.tpl":      {Data: []byte(`Hello {{ name }}`)},
	"use-global.tpl": {Data: []byte(`env={{ settings.env }}`)},
	"use-filter.tpl": {Data: []byte(`{{ name|formflow_shout }}`)},
	"escape.tpl":     {Data: []byte(`<p>{{ message }}</p><p>{{ trusted|safe }}</p>`)},
	"notice.html":    {Data: []byte(`[{{ kind }}] {{ message|lowerfirst }}`)},
	"brand.tpl":      {Data: []byte(`{{ site }}: {{ name }}`)},
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(gotemplate.WithFS(templates))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada" || written != result {
		t.Fatalf("unexpected output: result=%q written=%q", result, written)
	}
}

func TestEngine_StructData(t *testing.T) {
	engine := newEngine(t)

	data := struct {
		Name string `json:"name"`
	}{Name: "Grace"}
	got, err := engine.RenderTemplate("hello.tpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Grace" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]string{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("formflow_shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("formflow_shout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_AutoEscape(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("escape", map[string]any{
		"message": "<b>hi</b>",
		"trusted": "<b>hi</b>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<p>&lt;b&gt;hi&lt;/b&gt;</p><p><b>hi</b></p>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString(`{{ kind|upper }}: {{ message|trim }}`, map[string]any{
		"kind":    "error",
		"message": "  nope  ",
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "ERROR: nope" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}

func TestEngine_HooksRewriteDataAndOutput(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(templates),
		gotemplate.WithPreHook(func(ctx *gotemplatepkg.HookContext) error {
			data, ok := ctx.Data.(map[string]any)
			if !ok {
				return fmt.Errorf("unexpected data %T", ctx.Data)
			}
			if _, ok := data["name"]; !ok {
				data["name"] = "guest"
			}
			return nil
		}),
		gotemplate.WithPostHook(func(ctx *gotemplatepkg.HookContext) (string, error) {
			return strings.ToUpper(ctx.Output), nil
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("hello", map[string]any{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "HELLO GUEST" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_PassesGoTemplateOptions(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(templates),
		gotemplate.WithGoTemplateOptions(gotemplatepkg.WithExtension(".html")),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("notice", map[string]any{"kind": "error", "message": "Please retry."})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "[error] please retry." {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_GlobalDataAndFuncs(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(templates),
		gotemplate.WithGlobalData(map[string]any{"site": "Academy"}),
		gotemplate.WithTemplateFuncs(map[string]any{"year": func() int { return 2026 }}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("brand", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Academy: Ada" {
		t.Fatalf("unexpected output %q", got)
	}

	got, err = engine.RenderString(`{{ year() }}`, nil)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "2026" {
		t.Fatalf("unexpected output %q", got)
	}
}
