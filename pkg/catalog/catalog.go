package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formflow/pkg/form"
)

//go:embed forms/*
var embeddedForms embed.FS

// EmbeddedFS returns the bundled catalogue.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		panic(err)
	}
	return sub
}

// Field describes how a single input is presented.
type Field struct {
	Name        string   `json:"name" yaml:"name"`
	Label       string   `json:"label" yaml:"label"`
	Help        string   `json:"help,omitempty" yaml:"help,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty" yaml:"options,omitempty"`
	Multiline   bool     `json:"multiline,omitempty" yaml:"multiline,omitempty"`
}

// Form is the catalogue entry for one kind.
type Form struct {
	Kind           form.Kind
	Title          string
	SuccessMessage string
	Fields         []Field
	Source         string
}

// Field looks up a field by name.
func (f Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Catalog holds one Form per kind.
type Catalog struct {
	forms map[form.Kind]Form
}

// Default loads the embedded catalogue.
func Default() (*Catalog, error) {
	return LoadFS(EmbeddedFS())
}

// LoadFS walks fsys and parses JSON/YAML catalogue files. A kind defined in
// more than one file is an error. Every kind known to the form package ends
// up with an entry; fields missing from a file are appended with their name
// as label.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{forms: make(map[form.Kind]Form)}
	if fsys != nil {
		err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || !isCatalogFile(path) {
				return nil
			}

			data, err := fs.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("catalog: read %s: %w", path, err)
			}
			doc, err := parseDocument(data, path)
			if err != nil {
				return err
			}

			for rawKind, raw := range doc.Forms {
				kind, err := form.ParseKind(rawKind)
				if err != nil {
					return fmt.Errorf("catalog: file %s: %w", path, err)
				}
				if existing, exists := c.forms[kind]; exists {
					return fmt.Errorf("catalog: duplicate form %q (files %s and %s)", kind, existing.Source, path)
				}
				entry, err := normaliseForm(kind, raw, path)
				if err != nil {
					return err
				}
				c.forms[kind] = entry
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for _, kind := range form.Kinds() {
		entry := c.forms[kind]
		entry.Kind = kind
		c.forms[kind] = completeFields(entry)
	}
	return c, nil
}

// Form returns the entry for kind.
func (c *Catalog) Form(kind form.Kind) (Form, bool) {
	if c == nil {
		return Form{}, false
	}
	f, ok := c.forms[kind]
	return f, ok
}

// SuccessMessages returns the configured success notice per kind, omitting
// kinds without one.
func (c *Catalog) SuccessMessages() map[form.Kind]string {
	out := make(map[form.Kind]string)
	if c == nil {
		return out
	}
	for kind, f := range c.forms {
		if f.SuccessMessage != "" {
			out[kind] = f.SuccessMessage
		}
	}
	return out
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Title          string  `json:"title" yaml:"title"`
	SuccessMessage string  `json:"successMessage" yaml:"successMessage"`
	Fields         []Field `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if strings.TrimSpace(string(data)) == "" {
		return documentFile{}, fmt.Errorf("catalog: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("catalog: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(kind form.Kind, raw formFile, source string) (Form, error) {
	known := kind.Fields()
	out := Form{
		Kind:           kind,
		Title:          strings.TrimSpace(raw.Title),
		SuccessMessage: strings.TrimSpace(raw.SuccessMessage),
		Source:         source,
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for _, field := range raw.Fields {
		field.Name = strings.TrimSpace(field.Name)
		if !slices.Contains(known, field.Name) {
			return Form{}, fmt.Errorf("catalog: file %s: form %q has unknown field %q", source, kind, field.Name)
		}
		if _, dup := seen[field.Name]; dup {
			return Form{}, fmt.Errorf("catalog: file %s: form %q lists field %q twice", source, kind, field.Name)
		}
		seen[field.Name] = struct{}{}

		field.Label = strings.TrimSpace(field.Label)
		field.Help = strings.TrimSpace(field.Help)
		field.Placeholder = strings.TrimSpace(field.Placeholder)
		var options []string
		for _, opt := range field.Options {
			if opt = strings.TrimSpace(opt); opt != "" {
				options = append(options, opt)
			}
		}
		field.Options = options
		out.Fields = append(out.Fields, field)
	}
	return out, nil
}

func completeFields(f Form) Form {
	for _, name := range f.Kind.Fields() {
		if _, ok := f.Field(name); !ok {
			f.Fields = append(f.Fields, Field{Name: name})
		}
	}
	for i := range f.Fields {
		if f.Fields[i].Label == "" {
			f.Fields[i].Label = f.Fields[i].Name
		}
	}
	return f
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
