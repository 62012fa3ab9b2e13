// Package httpclient implements submission.Port over HTTP. Field sets are
// sent as JSON or form-urlencoded bodies; server error payloads are mapped
// onto the form's fields so the user sees the most relevant message.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/endpoint"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/submission"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Headers attached to every submission request.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderFormKind  = "X-Form-Kind"
)

const maxResponseBytes = 1 << 20

// ErrNoEndpoint is returned when no endpoint is configured for a kind.
var ErrNoEndpoint = errors.New("httpclient: no endpoint for form kind")

// Encoding selects the request body format.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingForm Encoding = "form"
)

// ParseEncoding accepts "json" or "form" (case-insensitive).
func ParseEncoding(raw string) (Encoding, error) {
	switch enc := Encoding(strings.ToLower(strings.TrimSpace(raw))); enc {
	case "":
		return EncodingJSON, nil
	case EncodingJSON, EncodingForm:
		return enc, nil
	default:
		return "", fmt.Errorf("httpclient: unknown encoding %q", raw)
	}
}

// StatusError reports a non-2xx response that carried no usable message.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return "httpclient: unexpected status " + e.Status
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects the underlying *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithEncoding selects the body encoding. JSON is the default.
func WithEncoding(enc Encoding) Option {
	return func(c *Client) {
		if enc != "" {
			c.encoding = enc
		}
	}
}

// WithTimeout bounds each submission round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHeader adds a static header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// WithLogger routes request logs to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client is the HTTP submission port.
type Client struct {
	http      *http.Client
	endpoints map[form.Kind]endpoint.Endpoint
	encoding  Encoding
	timeout   time.Duration
	headers   http.Header
	logger    *zap.Logger
}

var _ submission.Port = (*Client)(nil)

// New builds a Client for the given endpoints.
func New(endpoints map[form.Kind]endpoint.Endpoint, opts ...Option) (*Client, error) {
	if len(endpoints) == 0 {
		return nil, errors.New("httpclient: at least one endpoint is required")
	}

	c := &Client{
		http:      http.DefaultClient,
		endpoints: make(map[form.Kind]endpoint.Endpoint, len(endpoints)),
		encoding:  EncodingJSON,
		headers:   make(http.Header),
		logger:    zap.NewNop(),
	}
	for kind, ep := range endpoints {
		if ep.URL == "" {
			return nil, fmt.Errorf("httpclient: endpoint for %s has no URL", kind)
		}
		if ep.Method == "" {
			ep.Method = http.MethodPost
		}
		c.endpoints[kind] = ep
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.encoding != EncodingJSON && c.encoding != EncodingForm {
		return nil, fmt.Errorf("httpclient: unknown encoding %q", c.encoding)
	}
	return c, nil
}

// Submit sends req to the kind's endpoint and waits for the response.
func (c *Client) Submit(ctx context.Context, req submission.Request) (submission.Receipt, error) {
	ep, ok := c.endpoints[req.Kind]
	if !ok {
		return submission.Receipt{}, fmt.Errorf("%w: %s", ErrNoEndpoint, req.Kind)
	}

	body, contentType, err := c.encode(req.Fields)
	if err != nil {
		return submission.Receipt{}, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, ep.Method, ep.URL, bytes.NewReader(body))
	if err != nil {
		return submission.Receipt{}, fmt.Errorf("httpclient: build request: %w", err)
	}
	for key, values := range c.headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderFormKind, req.Kind.String())
	if req.ID != "" {
		httpReq.Header.Set(HeaderRequestID, req.ID)
	}

	log := c.logger.With(
		zap.String("attempt", req.ID),
		zap.String("kind", req.Kind.String()),
		zap.String("method", ep.Method),
		zap.String("url", ep.URL),
	)

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Warn("submission request failed", zap.Error(err))
		return submission.Receipt{}, fmt.Errorf("httpclient: send: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return submission.Receipt{}, fmt.Errorf("httpclient: read response: %w", err)
	}
	log.Debug("submission response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return submission.Receipt{}, decodeFailure(req.Kind, resp, data)
	}
	return decodeReceipt(req.ID, data), nil
}

func (c *Client) encode(fields form.FieldSet) ([]byte, string, error) {
	switch c.encoding {
	case EncodingForm:
		return []byte(fields.URLValues().Encode()), "application/x-www-form-urlencoded", nil
	default:
		data, err := json.Marshal(fields.Map())
		if err != nil {
			return nil, "", fmt.Errorf("httpclient: encode fields: %w", err)
		}
		return data, "application/json", nil
	}
}

type receiptPayload struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func decodeReceipt(requestID string, data []byte) submission.Receipt {
	receipt := submission.Receipt{ID: requestID}
	var payload receiptPayload
	if len(bytes.TrimSpace(data)) == 0 || json.Unmarshal(data, &payload) != nil {
		return receipt
	}
	if id := strings.TrimSpace(payload.ID); id != "" {
		receipt.ID = id
	}
	receipt.Message = strings.TrimSpace(payload.Message)
	return receipt
}

// messageList accepts either a single string or an array of strings.
type messageList []string

func (m *messageList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = messageList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*m = many
	return nil
}

type errorPayload struct {
	Message string                 `json:"message"`
	Error   json.RawMessage        `json:"error"`
	Errors  map[string]messageList `json:"errors"`
}

func decodeFailure(kind form.Kind, resp *http.Response, data []byte) error {
	statusErr := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}

	var payload errorPayload
	if len(bytes.TrimSpace(data)) == 0 || json.Unmarshal(data, &payload) != nil {
		return statusErr
	}

	raw := make(map[string][]string, len(payload.Errors))
	for path, msgs := range payload.Errors {
		raw[path] = msgs
	}
	mapping := MapErrorPayload(kind, raw)
	if field, message := mapping.FirstMessage(kind); message != "" {
		return fmt.Errorf("%w: %w", statusErr, validation.ValidationError{Field: field, Message: message})
	}

	message := strings.TrimSpace(payload.Message)
	if message == "" && len(payload.Error) > 0 {
		var text string
		if json.Unmarshal(payload.Error, &text) == nil {
			message = strings.TrimSpace(text)
		}
	}
	if message == "" {
		return statusErr
	}
	return fmt.Errorf("%w: %w", statusErr, validation.NewError(message))
}
