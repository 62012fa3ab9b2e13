package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formflow/pkg/config"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FORMFLOW_CONFIG", "")
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.ModeSimulated, cfg.Submission.Mode)
	assert.Equal(t, 2*time.Second, cfg.Submission.Latency)
	assert.Equal(t, 3*time.Second, cfg.Submission.ResetDelay)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "json", cfg.HTTP.Encoding)
	assert.Equal(t, config.PresenterTerminal, cfg.Presenter)
	assert.Equal(t, "formflow", cfg.Theme.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
submission:
  mode: HTTP
  reset_delay: 500ms
http:
  endpoint: https://forms.example.com/submit
  encoding: form
presenter: html
theme:
  variant: dark
`), 0o644))

	t.Setenv("FORMFLOW_SUBMISSION_RESET_DELAY", "750ms")
	t.Setenv("FORMFLOW_LOG_LEVEL", "DEBUG")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.ModeHTTP, cfg.Submission.Mode)
	assert.Equal(t, 750*time.Millisecond, cfg.Submission.ResetDelay)
	assert.Equal(t, "https://forms.example.com/submit", cfg.HTTP.Endpoint)
	assert.Equal(t, "form", cfg.HTTP.Encoding)
	assert.Equal(t, config.PresenterHTML, cfg.Presenter)
	assert.Equal(t, "dark", cfg.Theme.Variant)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_SearchPath(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile("formflow.yaml", []byte("presenter: html\n"), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.PresenterHTML, cfg.Presenter)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	t.Setenv("FORMFLOW_SUBMISSION_MODE", "http")
	_, err = config.Load("")
	require.ErrorContains(t, err, "requires http.endpoint")

	t.Setenv("FORMFLOW_SUBMISSION_MODE", "carrier-pigeon")
	_, err = config.Load("")
	require.ErrorContains(t, err, "unknown submission.mode")

	t.Setenv("FORMFLOW_SUBMISSION_MODE", "")
	t.Setenv("FORMFLOW_PRESENTER", "pdf")
	_, err = config.Load("")
	require.ErrorContains(t, err, "unknown presenter")
}
