package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formflow/pkg/catalog"
	"github.com/goliatone/go-formflow/pkg/form"
)

// Collector asks for every field of a form kind using catalogue metadata.
// Values are returned as typed; validation happens on submit.
type Collector struct {
	driver  PromptDriver
	catalog *catalog.Catalog
}

// NewCollector builds a collector. A nil catalogue falls back to the
// embedded default.
func NewCollector(driver PromptDriver, cat *catalog.Catalog) (*Collector, error) {
	if driver == nil {
		return nil, errors.New("prompt: driver is required")
	}
	if cat == nil {
		def, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		cat = def
	}
	return &Collector{driver: driver, catalog: cat}, nil
}

// Collect prompts for every field of kind.
func (c *Collector) Collect(ctx context.Context, kind form.Kind) (form.FieldSet, error) {
	return c.CollectMissing(ctx, kind, form.FieldSet{})
}

// CollectMissing prompts only for fields that have no value in known. Known
// values are carried over unchanged.
func (c *Collector) CollectMissing(ctx context.Context, kind form.Kind, known form.FieldSet) (form.FieldSet, error) {
	entry, ok := c.catalog.Form(kind)
	if !ok {
		return form.FieldSet{}, fmt.Errorf("prompt: no catalogue entry for %q", kind)
	}

	values := known.Map()
	if entry.Title != "" {
		if err := c.driver.Info(ctx, entry.Title); err != nil {
			return form.FieldSet{}, err
		}
	}

	for _, field := range entry.Fields {
		if values[field.Name] != "" {
			continue
		}
		value, err := c.ask(ctx, field)
		if err != nil {
			return form.FieldSet{}, fmt.Errorf("prompt: %s: %w", field.Name, err)
		}
		values[field.Name] = value
	}
	return form.NewFieldSet(values), nil
}

func (c *Collector) ask(ctx context.Context, field catalog.Field) (string, error) {
	help := field.Help
	if help == "" && field.Placeholder != "" {
		help = "e.g. " + field.Placeholder
	}

	switch {
	case len(field.Options) > 0:
		idx, err := c.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      field.Options,
			DefaultIndex: -1,
			Help:         help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", ErrNoSelection
		}
		return field.Options[idx], nil
	case field.Multiline:
		return c.driver.TextArea(ctx, TextAreaConfig{Message: field.Label, Help: help})
	default:
		return c.driver.Input(ctx, InputConfig{Message: field.Label, Help: help})
	}
}
