// Package formflow wires the form submission packages together from a
// config.Config: the catalogue, the submission port, the presenter and the
// per-form controller.
package formflow

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/catalog"
	"github.com/goliatone/go-formflow/pkg/config"
	"github.com/goliatone/go-formflow/pkg/endpoint"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/present"
	"github.com/goliatone/go-formflow/pkg/presenters/html"
	"github.com/goliatone/go-formflow/pkg/presenters/terminal"
	"github.com/goliatone/go-formflow/pkg/submission"
	"github.com/goliatone/go-formflow/pkg/transport/httpclient"
	"github.com/goliatone/go-formflow/pkg/transport/simulated"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Kind aliases form.Kind for callers that only import the root package.
type Kind = form.Kind

// FieldSet aliases form.FieldSet.
type FieldSet = form.FieldSet

// Verdict aliases validation.Verdict.
type Verdict = validation.Verdict

// Validate runs the stock rules for kind.
func Validate(fields FieldSet, kind Kind) Verdict {
	return validation.Validate(fields, kind)
}

// LoadCatalog loads the catalogue directory named by cfg, or the embedded
// catalogue when none is configured.
func LoadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default()
	}
	info, err := os.Stat(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("formflow: catalog: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("formflow: catalog path %q is not a directory", cfg.Catalog.Path)
	}
	return catalog.LoadFS(os.DirFS(cfg.Catalog.Path))
}

// NewPort builds the submission port selected by cfg.Submission.Mode.
func NewPort(ctx context.Context, cfg config.Config, cat *catalog.Catalog, logger *zap.Logger) (submission.Port, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Submission.Mode {
	case config.ModeSimulated, "":
		return simulated.New(
			simulated.WithLatency(cfg.Submission.Latency),
			simulated.WithMessages(cat.SuccessMessages()),
			simulated.WithSubmitHook(func(req submission.Request) {
				logger.Info("submission received",
					zap.String("attempt", req.ID),
					zap.String("kind", req.Kind.String()),
					zap.Strings("fields", req.Fields.Names()),
				)
			}),
		), nil
	case config.ModeHTTP:
		endpoints, err := resolveEndpoints(ctx, cfg)
		if err != nil {
			return nil, err
		}
		encoding, err := httpclient.ParseEncoding(cfg.HTTP.Encoding)
		if err != nil {
			return nil, err
		}
		return httpclient.New(endpoints,
			httpclient.WithEncoding(encoding),
			httpclient.WithTimeout(cfg.HTTP.Timeout),
			httpclient.WithLogger(logger.Named("http")),
		)
	default:
		return nil, fmt.Errorf("formflow: unknown submission mode %q", cfg.Submission.Mode)
	}
}

func resolveEndpoints(ctx context.Context, cfg config.Config) (map[form.Kind]endpoint.Endpoint, error) {
	if cfg.HTTP.OpenAPI == "" {
		return endpoint.FromBase(cfg.HTTP.Endpoint)
	}
	src, err := endpoint.ParseSource(cfg.HTTP.OpenAPI)
	if err != nil {
		return nil, err
	}
	resolver := endpoint.New(
		endpoint.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
		endpoint.WithBaseURL(cfg.HTTP.Endpoint),
	)
	return resolver.Resolve(ctx, src)
}

// NewPresenterRegistry returns a registry with the terminal presenter and an
// HTML presenter themed per cfg.
func NewPresenterRegistry(cfg config.Config, logger *zap.Logger) *present.Registry {
	reg := present.NewRegistry()
	reg.MustRegister(config.PresenterTerminal, terminal.Factory)
	reg.MustRegister(config.PresenterHTML, func(out io.Writer) (present.Presenter, error) {
		return NewHTMLPresenter(cfg, out, logger)
	})
	return reg
}

// NewHTMLPresenter builds the HTML presenter with the stock manifest and the
// theme named in cfg.
func NewHTMLPresenter(cfg config.Config, out io.Writer, logger *zap.Logger, opts ...html.Option) (*html.Presenter, error) {
	selector, err := html.NewManifestSelector(html.DefaultManifest())
	if err != nil {
		return nil, err
	}
	base := []html.Option{
		html.WithTheme(selector, cfg.Theme.Name, cfg.Theme.Variant),
		html.WithLogger(logger),
	}
	return html.New(out, append(base, opts...)...)
}

// NewController builds a controller for kind with the timings from cfg.
func NewController(kind Kind, cfg config.Config, port submission.Port, presenter present.Presenter, logger *zap.Logger, opts ...submission.Option) (*submission.Controller, error) {
	base := []submission.Option{
		submission.WithResetDelay(cfg.Submission.ResetDelay),
		submission.WithLogger(logger),
	}
	return submission.New(kind, port, presenter, append(base, opts...)...)
}
