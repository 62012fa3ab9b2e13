package html

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the manifest returned by DefaultManifest.
const DefaultThemeName = "formflow"

// DefaultManifest is the stock notice palette with a "dark" variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"notice-success-bg": "#e8f5e9",
			"notice-success-fg": "#2e7d32",
			"notice-error-bg":   "#ffebee",
			"notice-error-fg":   "#c62828",
			"notice-radius":     "6px",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"notice-success-bg": "#1b5e20",
					"notice-success-fg": "#e8f5e9",
					"notice-error-bg":   "#b71c1c",
					"notice-error-fg":   "#ffebee",
				},
			},
		},
	}
}

// ManifestSelector is a theme.ThemeSelector over a fixed set of manifests.
// An empty theme name selects the first manifest registered.
type ManifestSelector struct {
	order     []string
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes manifests by name.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			return nil, errors.New("html: theme manifest requires a name")
		}
		if _, exists := s.manifests[m.Name]; exists {
			return nil, fmt.Errorf("html: theme %q registered twice", m.Name)
		}
		s.manifests[m.Name] = m
		s.order = append(s.order, m.Name)
	}
	return s, nil
}

// Select resolves name and variant. Unknown variants are an error; an empty
// variant selects the base tokens.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" && len(s.order) > 0 {
		name = s.order[0]
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("html: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("html: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

type themeContext struct {
	Name    string
	Variant string
	CSSVars map[string]string
}

// resolveTheme merges base and variant tokens and derives CSS custom
// properties ("--token").
func resolveTheme(selection *theme.Selection) themeContext {
	if selection == nil || selection.Manifest == nil {
		return themeContext{}
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		vars["--"+strings.TrimPrefix(key, "--")] = value
	}
	return themeContext{Name: selection.Theme, Variant: selection.Variant, CSSVars: vars}
}

func (t themeContext) style() string {
	if len(t.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(t.CSSVars))
	for key := range t.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(t.CSSVars[key])
		b.WriteByte(';')
	}
	return b.String()
}
