// Package terminal renders submission notices as styled lines on a terminal
// or any other io.Writer.
package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formflow/pkg/present"
)

// ClearedMarker is written when a visible notice is dismissed.
const ClearedMarker = "(notice dismissed)"

// Styles groups the lipgloss styles used per notice kind.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the stock palette bound to renderer.
func DefaultStyles(renderer *lipgloss.Renderer) Styles {
	return Styles{
		Success: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E7D32")),
		Error:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		Muted:   renderer.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

// Option customises a Presenter.
type Option func(*Presenter)

// WithStyles replaces the default palette.
func WithStyles(styles Styles) Option {
	return func(p *Presenter) {
		p.styles = styles
	}
}

// Presenter writes one line per notice.
type Presenter struct {
	mu      sync.Mutex
	out     io.Writer
	styles  Styles
	visible bool
}

var _ present.Presenter = (*Presenter)(nil)

// New returns a presenter writing to out. Colour support is detected from
// out, so plain buffers receive unstyled text.
func New(out io.Writer, opts ...Option) *Presenter {
	if out == nil {
		out = io.Discard
	}
	p := &Presenter{
		out:    out,
		styles: DefaultStyles(lipgloss.NewRenderer(out)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Factory adapts New to present.Factory.
func Factory(out io.Writer) (present.Presenter, error) {
	return New(out), nil
}

func (p *Presenter) Present(result present.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var line string
	switch result.Kind {
	case present.ResultSuccess:
		line = p.styles.Success.Render("✓ " + result.Message)
	default:
		line = p.styles.Error.Render("✗ " + result.Message)
	}
	_, _ = fmt.Fprintln(p.out, line)
	p.visible = true
}

func (p *Presenter) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.visible {
		return
	}
	_, _ = fmt.Fprintln(p.out, p.styles.Muted.Render(ClearedMarker))
	p.visible = false
}

// Visible reports whether a notice is currently shown.
func (p *Presenter) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}
