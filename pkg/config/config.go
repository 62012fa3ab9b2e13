// Package config loads formflow settings from defaults, an optional YAML
// file and FORMFLOW_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Submission modes.
const (
	ModeSimulated = "simulated"
	ModeHTTP      = "http"
)

// Presenter names.
const (
	PresenterTerminal = "terminal"
	PresenterHTML     = "html"
)

// EnvPrefix prefixes every environment override, e.g.
// FORMFLOW_SUBMISSION_RESET_DELAY=5s.
const EnvPrefix = "FORMFLOW"

// Config holds application configuration.
type Config struct {
	Submission SubmissionConfig `mapstructure:"submission"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Presenter  string           `mapstructure:"presenter"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Theme      ThemeConfig      `mapstructure:"theme"`
	Log        LogConfig        `mapstructure:"log"`
}

// SubmissionConfig selects the port and the controller timings.
type SubmissionConfig struct {
	Mode       string        `mapstructure:"mode"`
	Latency    time.Duration `mapstructure:"latency"`
	ResetDelay time.Duration `mapstructure:"reset_delay"`
}

// HTTPConfig configures the HTTP port. Either Endpoint (a base URL) or
// OpenAPI (a document path or URL) is required in http mode.
type HTTPConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	OpenAPI  string        `mapstructure:"openapi"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Encoding string        `mapstructure:"encoding"`
}

// CatalogConfig points at a directory of catalogue files. Empty uses the
// embedded catalogue.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// ThemeConfig selects the HTML notice theme.
type ThemeConfig struct {
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration. path names an explicit config file; when empty,
// FORMFLOW_CONFIG is consulted, then formflow.yaml in the working directory
// and in $HOME/.config/formflow. A missing search-path file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("formflow")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "formflow"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	c.normalise()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the built-in configuration.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	c.normalise()
	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("submission.mode", ModeSimulated)
	v.SetDefault("submission.latency", "2s")
	v.SetDefault("submission.reset_delay", "3s")
	v.SetDefault("http.endpoint", "")
	v.SetDefault("http.openapi", "")
	v.SetDefault("http.timeout", "10s")
	v.SetDefault("http.encoding", "json")
	v.SetDefault("presenter", PresenterTerminal)
	v.SetDefault("catalog.path", "")
	v.SetDefault("theme.name", "formflow")
	v.SetDefault("theme.variant", "")
	v.SetDefault("log.level", "info")
}

func (c *Config) normalise() {
	c.Submission.Mode = strings.ToLower(strings.TrimSpace(c.Submission.Mode))
	c.HTTP.Encoding = strings.ToLower(strings.TrimSpace(c.HTTP.Encoding))
	c.HTTP.Endpoint = strings.TrimSpace(c.HTTP.Endpoint)
	c.HTTP.OpenAPI = strings.TrimSpace(c.HTTP.OpenAPI)
	c.Presenter = strings.ToLower(strings.TrimSpace(c.Presenter))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Submission.Mode {
	case ModeSimulated:
	case ModeHTTP:
		if c.HTTP.Endpoint == "" && c.HTTP.OpenAPI == "" {
			return errors.New("config: http mode requires http.endpoint or http.openapi")
		}
	default:
		return fmt.Errorf("config: unknown submission.mode %q", c.Submission.Mode)
	}
	if c.Submission.Latency < 0 || c.Submission.ResetDelay < 0 || c.HTTP.Timeout < 0 {
		return errors.New("config: durations must not be negative")
	}
	switch c.HTTP.Encoding {
	case "json", "form":
	default:
		return fmt.Errorf("config: unknown http.encoding %q", c.HTTP.Encoding)
	}
	switch c.Presenter {
	case PresenterTerminal, PresenterHTML:
	default:
		return fmt.Errorf("config: unknown presenter %q", c.Presenter)
	}
	return nil
}
