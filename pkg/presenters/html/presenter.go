// Package html renders submission notices as HTML fragments. Messages are
// sanitised with bluemonday, rendered through the go-template (pongo2) engine and
// styled with go-theme tokens exposed as CSS custom properties.
package html

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/present"
	"github.com/goliatone/go-formflow/pkg/render/template"
	"github.com/goliatone/go-formflow/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// DefaultTemplate is the embedded notice template name.
const DefaultTemplate = "notice"

// Templates returns the embedded template filesystem.
func Templates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Option customises a Presenter.
type Option func(*Presenter)

// WithEngine replaces the embedded template engine.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(p *Presenter) {
		p.engine = engine
	}
}

// WithTemplate selects the template rendered for each notice.
func WithTemplate(name string) Option {
	return func(p *Presenter) {
		if name = strings.TrimSpace(name); name != "" {
			p.template = name
		}
	}
}

// WithTheme resolves name and variant through selector once at construction.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(p *Presenter) {
		p.selector = selector
		p.themeName = name
		p.themeVariant = variant
	}
}

// WithPolicy replaces the sanitiser policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(p *Presenter) {
		if policy != nil {
			p.policy = policy
		}
	}
}

// WithSink receives every fragment change. Clear delivers an empty string.
func WithSink(fn func(fragment string)) Option {
	return func(p *Presenter) {
		p.sink = fn
	}
}

// WithLogger reports render failures.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Presenter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Presenter keeps the currently visible fragment and writes each newly
// rendered one to out.
type Presenter struct {
	mu sync.Mutex

	out          io.Writer
	engine       template.TemplateRenderer
	template     string
	policy       *bluemonday.Policy
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	theme        themeContext
	sink         func(string)
	logger       *zap.Logger

	current string
}

var _ present.Presenter = (*Presenter)(nil)

// New builds a presenter. out may be nil when only HTML or a sink is used.
func New(out io.Writer, opts ...Option) (*Presenter, error) {
	p := &Presenter{
		out:      out,
		template: DefaultTemplate,
		policy:   noticeSanitizer(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	if p.engine == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(Templates()))
		if err != nil {
			return nil, fmt.Errorf("html: template engine: %w", err)
		}
		p.engine = engine
	}

	if p.selector != nil {
		selection, err := p.selector.Select(p.themeName, p.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("html: select theme: %w", err)
		}
		if selection == nil {
			return nil, errors.New("html: theme selector returned no selection")
		}
		p.theme = resolveTheme(selection)
	}
	return p, nil
}

// Factory adapts New to present.Factory using the default theme.
func Factory(out io.Writer) (present.Presenter, error) {
	selector, err := NewManifestSelector(DefaultManifest())
	if err != nil {
		return nil, err
	}
	return New(out, WithTheme(selector, DefaultThemeName, ""))
}

// Render returns the fragment for result without changing what is visible.
func (p *Presenter) Render(result present.Result) (string, error) {
	kind := result.Kind
	if kind != present.ResultSuccess {
		kind = present.ResultError
	}
	data := map[string]any{
		"kind":    string(kind),
		"message": sanitizeMessage(p.policy, result.Message),
		"theme": map[string]any{
			"name":    p.theme.Name,
			"variant": p.theme.Variant,
			"style":   p.theme.style(),
			"vars":    p.theme.CSSVars,
		},
	}
	rendered, err := p.engine.RenderTemplate(p.template, data)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(rendered), nil
}

func (p *Presenter) Present(result present.Result) {
	fragment, err := p.Render(result)
	if err != nil {
		p.logger.Error("render notice failed", zap.Error(err), zap.String("template", p.template))
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = fragment
	if p.out != nil {
		_, _ = io.WriteString(p.out, fragment+"\n")
	}
	if p.sink != nil {
		p.sink(fragment)
	}
}

func (p *Presenter) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == "" {
		return
	}
	p.current = ""
	if p.sink != nil {
		p.sink("")
	}
}

// HTML returns the visible fragment, or "" when nothing is shown.
func (p *Presenter) HTML() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
