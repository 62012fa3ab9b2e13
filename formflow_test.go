package formflow_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/config"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/present"
	"github.com/goliatone/go-formflow/pkg/submission"
	"github.com/goliatone/go-formflow/pkg/testsupport"
	"github.com/goliatone/go-formflow/pkg/transport/httpclient"
	"github.com/goliatone/go-formflow/pkg/transport/simulated"
)

func TestNewPort_Simulated(t *testing.T) {
	cfg := config.Default()
	cat, err := formflow.LoadCatalog(cfg)
	require.NoError(t, err)

	port, err := formflow.NewPort(context.Background(), cfg, cat, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &simulated.Port{}, port)
}

func TestNewPort_HTTPFromOpenAPI(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/api/apply", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	doc := `openapi: 3.0.3
info: {title: Forms, version: "1"}
paths:
  /api/apply:
    post:
      operationId: submitApplication
      responses: {"201": {description: created}}
  /api/contact:
    post:
      operationId: submitContact
      responses: {"201": {description: created}}
`
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg := config.Default()
	cfg.Submission.Mode = config.ModeHTTP
	cfg.HTTP.OpenAPI = path
	cfg.HTTP.Endpoint = srv.URL

	port, err := formflow.NewPort(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	require.IsType(t, &httpclient.Client{}, port)

	_, err = port.Submit(context.Background(), submission.Request{ID: "a1", Kind: form.KindApplication})
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewPort_HTTPFromBase(t *testing.T) {
	cfg := config.Default()
	cfg.Submission.Mode = config.ModeHTTP
	cfg.HTTP.Endpoint = "not a url"

	_, err := formflow.NewPort(context.Background(), cfg, nil, nil)
	require.Error(t, err)
}

func TestPresenterRegistry(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Variant = "dark"
	reg := formflow.NewPresenterRegistry(cfg, zap.NewNop())
	assert.Equal(t, []string{"html", "terminal"}, reg.List())

	var buf bytes.Buffer
	p, err := reg.New(config.PresenterHTML, &buf)
	require.NoError(t, err)
	p.Present(present.Success("Sent"))
	assert.Contains(t, buf.String(), "#1b5e20")
}

func TestEndToEnd_SimulatedSubmission(t *testing.T) {
	cfg := config.Default()
	cfg.Submission.Latency = 5 * time.Millisecond
	cfg.Submission.ResetDelay = 5 * time.Millisecond

	cat, err := formflow.LoadCatalog(cfg)
	require.NoError(t, err)
	port, err := formflow.NewPort(context.Background(), cfg, cat, zap.NewNop())
	require.NoError(t, err)

	var out bytes.Buffer
	presenter, err := formflow.NewPresenterRegistry(cfg, zap.NewNop()).New(cfg.Presenter, &out)
	require.NoError(t, err)

	ctrl, err := formflow.NewController(form.KindContact, cfg, port, presenter, zap.NewNop())
	require.NoError(t, err)
	defer ctrl.Close()

	fields := form.NewFieldSet(map[string]string{
		form.FieldEmail:          "a@b.co",
		form.FieldContactName:    "Al",
		form.FieldContactSubject: "Hey",
		form.FieldContactMessage: "0123456789",
	})
	require.True(t, formflow.Validate(fields, form.KindContact).Valid)

	att, err := ctrl.Submit(testsupport.Context(), fields)
	require.NoError(t, err)
	outcome, err := att.Wait(testsupport.Context())
	require.NoError(t, err)
	assert.Equal(t, submission.StateSucceeded, outcome.State)
	assert.Equal(t, submission.ContactSuccessMessage, outcome.Message)

	select {
	case <-att.Settled():
	case <-time.After(time.Second):
		t.Fatalf("attempt did not settle")
	}
	assert.Equal(t, submission.StateIdle, ctrl.State())
	assert.True(t, strings.Contains(out.String(), submission.ContactSuccessMessage))
}
