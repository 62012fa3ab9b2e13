package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/prompt"
	"github.com/goliatone/go-formflow/pkg/submission"
)

type submitOptions struct {
	fields []string
	prompt bool
}

func newSubmitCommand(app *cli) *cobra.Command {
	opts := &submitOptions{}
	cmd := &cobra.Command{
		Use:       "submit <application|contact>",
		Short:     "Collect, validate and submit a form",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{form.KindApplication.String(), form.KindContact.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSubmit(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.fields, "field", "f", nil, "field value as name=value (repeatable)")
	cmd.Flags().BoolVar(&opts.prompt, "prompt", true, "prompt for fields not given with --field")
	return cmd
}

func (app *cli) runSubmit(cmd *cobra.Command, rawKind string, opts *submitOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	kind, err := app.kindArg(rawKind)
	if err != nil {
		return err
	}
	fields, err := parseFieldFlags(opts.fields)
	if err != nil {
		return err
	}

	cat, err := formflow.LoadCatalog(app.cfg)
	if err != nil {
		return err
	}

	if opts.prompt {
		collector, err := prompt.NewCollector(prompt.NewSurveyDriver(cmd.OutOrStdout()), cat)
		if err != nil {
			return err
		}
		if fields, err = collector.CollectMissing(ctx, kind, fields); err != nil {
			return err
		}
	}

	port, err := formflow.NewPort(ctx, app.cfg, cat, app.logger)
	if err != nil {
		return err
	}
	presenter, err := formflow.NewPresenterRegistry(app.cfg, app.logger).New(app.cfg.Presenter, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctrl, err := formflow.NewController(kind, app.cfg, port, presenter, app.logger,
		submission.WithResetFunc(func() {
			app.logger.Debug("form inputs cleared", zap.String("kind", kind.String()))
		}),
	)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	att, err := ctrl.Submit(ctx, fields)
	if err != nil {
		return err
	}

	outcome, err := att.Wait(ctx)
	if err != nil {
		att.Cancel()
		return err
	}
	if outcome.State == submission.StateFailed {
		app.logger.Debug("submission failed", zap.String("attempt", att.ID()), zap.Error(outcome.Err))
		return &exitError{code: 1}
	}

	select {
	case <-att.Settled():
	case <-ctx.Done():
		return ctx.Err()
	}
	app.logger.Debug("submission complete", zap.String("attempt", att.ID()))
	return nil
}

func (app *cli) kindArg(raw string) (form.Kind, error) {
	kind, err := form.ParseKind(raw)
	if err != nil {
		return "", fmt.Errorf("%w (want one of %v)", err, form.Kinds())
	}
	return kind, nil
}
