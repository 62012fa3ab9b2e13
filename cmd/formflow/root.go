package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formflow/pkg/config"
	"github.com/goliatone/go-formflow/pkg/form"
)

// cli holds state shared by every command.
type cli struct {
	newLogger func(level zapcore.Level) (*zap.Logger, error)

	verbose    bool
	configPath string
	envFile    string

	cfg    config.Config
	logger *zap.Logger
}

func defaultCLI() *cli {
	return &cli{
		newLogger: func(level zapcore.Level) (*zap.Logger, error) {
			cfg := zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(level)
			return cfg.Build()
		},
	}
}

func newRootCommand(app *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "formflow",
		Short:         "Validate and submit application and contact forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "config file (default: ./formflow.yaml or ~/.config/formflow/formflow.yaml)")
	root.PersistentFlags().StringVar(&app.envFile, "env-file", ".env", "dotenv file loaded before configuration")

	root.AddCommand(
		newSubmitCommand(app),
		newValidateCommand(app),
		newNoticeCommand(app),
	)
	return root
}

func (app *cli) init() error {
	if app.envFile != "" {
		if err := godotenv.Load(app.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", app.envFile, err)
		}
	}

	cfg, err := config.Load(app.configPath)
	if err != nil {
		return err
	}
	app.cfg = cfg

	level := zapcore.InfoLevel
	if cfg.Log.Level != "" {
		if level, err = zapcore.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	if app.verbose {
		level = zapcore.DebugLevel
	}

	logger, err := app.newLogger(level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.logger = logger
	return nil
}

// parseFieldFlags turns repeated name=value flags into a FieldSet. Later
// values for the same name win.
func parseFieldFlags(raw []string) (form.FieldSet, error) {
	values := make(map[string]string, len(raw))
	for _, item := range raw {
		name, value, ok := strings.Cut(item, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return form.FieldSet{}, fmt.Errorf("invalid --field %q, want name=value", item)
		}
		values[strings.TrimSpace(name)] = value
	}
	return form.NewFieldSet(values), nil
}
