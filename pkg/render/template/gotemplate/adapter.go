// Package gotemplate adapts github.com/goliatone/go-template, a pongo2 based
// engine, to the template.TemplateRenderer contract.
package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formflow/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	options   []gotemplatepkg.Option
	preHooks  []gotemplatepkg.PreHook
	postHooks []gotemplatepkg.PostHook
	hasSource bool
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return
		}
		cfg.hasSource = true
		cfg.options = append(cfg.options, gotemplatepkg.WithBaseDir(dir))
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files == nil {
			return
		}
		cfg.hasSource = true
		cfg.options = append(cfg.options, gotemplatepkg.WithFS(files))
	}
}

// WithExtension overrides the ".tpl" extension appended to template names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		if ext = strings.TrimSpace(ext); ext != "" {
			cfg.options = append(cfg.options, gotemplatepkg.WithExtension(ext))
		}
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) > 0 {
			cfg.options = append(cfg.options, gotemplatepkg.WithGlobalData(data))
		}
	}
}

// WithTemplateFuncs registers pongo2 filters and callable globals.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) > 0 {
			cfg.options = append(cfg.options, gotemplatepkg.WithTemplateFunc(funcs))
		}
	}
}

// WithGoTemplateOptions passes options straight to the go-template engine.
func WithGoTemplateOptions(opts ...gotemplatepkg.Option) Option {
	return func(cfg *config) {
		for _, opt := range opts {
			if opt != nil {
				cfg.options = append(cfg.options, opt)
			}
		}
	}
}

// WithPreHook runs hook before every render; it may rewrite the data or the
// template name.
func WithPreHook(hook gotemplatepkg.PreHook) Option {
	return func(cfg *config) {
		if hook != nil {
			cfg.preHooks = append(cfg.preHooks, hook)
		}
	}
}

// WithPostHook runs hook on every rendered output.
func WithPostHook(hook gotemplatepkg.PostHook) Option {
	return func(cfg *config) {
		if hook != nil {
			cfg.postHooks = append(cfg.postHooks, hook)
		}
	}
}

// Engine renders templates through a go-template engine.
type Engine struct {
	renderer *gotemplatepkg.Engine
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. Either WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if !cfg.hasSource {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	renderer, err := gotemplatepkg.NewRenderer(cfg.options...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: %w", err)
	}
	for _, hook := range cfg.preHooks {
		renderer.RegisterPreHook(hook)
	}
	for _, hook := range cfg.postHooks {
		renderer.RegisterPostHook(hook)
	}
	return &Engine{renderer: renderer}, nil
}

// RenderTemplate executes the named template. The extension is appended
// when missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.renderer == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	rendered, err := e.renderer.RenderTemplate(name, data, writers(out)...)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %w", err)
	}
	return rendered, nil
}

// RenderString parses and executes templateContent.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.renderer == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	rendered, err := e.renderer.RenderString(templateContent, data, writers(out)...)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %w", err)
	}
	return rendered, nil
}

// RegisterFilter registers a process-wide pongo2 filter. Registering an
// existing name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if e == nil || e.renderer == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if err := e.renderer.RegisterFilter(name, fn); err != nil {
		return fmt.Errorf("gotemplate: %w", err)
	}
	return nil
}

// GlobalContext merges data into the values shared by every template.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.renderer == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}
	if err := e.renderer.GlobalContext(data); err != nil {
		return fmt.Errorf("gotemplate: %w", err)
	}
	return nil
}

// writers drops nil entries; go-template writes to every writer it gets.
func writers(out []io.Writer) []io.Writer {
	var kept []io.Writer
	for _, w := range out {
		if w != nil {
			kept = append(kept, w)
		}
	}
	return kept
}
