package endpoint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/form"
)

// Default operation IDs looked up for each form kind.
const (
	OperationSubmitApplication = "submitApplication"
	OperationSubmitContact     = "submitContact"
)

// ErrOperationNotFound reports a configured operation ID missing from the
// document.
var ErrOperationNotFound = errors.New("endpoint: operation not found")

// Endpoint is the HTTP target a submission is sent to.
type Endpoint struct {
	Method      string
	URL         string
	OperationID string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFileSystem enables SourceFromFS lookups.
func WithFileSystem(files fs.FS) Option {
	return func(r *Resolver) {
		r.fs = files
	}
}

// WithHTTPClient enables SourceFromURL lookups with the given client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		r.http = client
	}
}

// WithTimeout caps remote document fetches.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = timeout
	}
}

// WithBaseURL overrides the document's first server URL.
func WithBaseURL(base string) Option {
	return func(r *Resolver) {
		r.baseURL = strings.TrimSpace(base)
	}
}

// WithOperation maps kind to an operation ID. An empty ID stops the resolver
// from looking the kind up.
func WithOperation(kind form.Kind, operationID string) Option {
	return func(r *Resolver) {
		operationID = strings.TrimSpace(operationID)
		if operationID == "" {
			delete(r.operations, kind)
			return
		}
		r.operations[kind] = operationID
	}
}

// WithValidation toggles document validation before lookups.
func WithValidation(enabled bool) Option {
	return func(r *Resolver) {
		r.validate = enabled
	}
}

// Resolver turns an OpenAPI document into per-kind submission endpoints.
type Resolver struct {
	fs         fs.FS
	http       *http.Client
	timeout    time.Duration
	baseURL    string
	validate   bool
	operations map[form.Kind]string
}

// New constructs a Resolver. HTTP sources are disabled unless
// WithHTTPClient is supplied.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		validate: true,
		operations: map[form.Kind]string{
			form.KindApplication: OperationSubmitApplication,
			form.KindContact:     OperationSubmitContact,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Load fetches the raw document bytes for src.
func (r *Resolver) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("endpoint: source is nil")
	}
	switch src.Kind() {
	case SourceKindFile:
		return loadFile(ctx, src.Location())
	case SourceKindFS:
		return loadFromFS(ctx, r.fs, src.Location())
	case SourceKindURL:
		if r.http == nil {
			return nil, errors.New("endpoint: http support disabled")
		}
		return loadHTTP(ctx, r.http, src.Location(), r.timeout)
	default:
		return nil, fmt.Errorf("endpoint: unsupported source kind %q", src.Kind())
	}
}

// Resolve loads src and returns an Endpoint for every configured kind. Every
// configured operation ID must be present in the document.
func (r *Resolver) Resolve(ctx context.Context, src Source) (map[form.Kind]Endpoint, error) {
	data, err := r.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return r.ResolveData(ctx, data)
}

// ResolveData resolves endpoints from an in-memory JSON or YAML document.
func (r *Resolver) ResolveData(ctx context.Context, data []byte) (map[form.Kind]Endpoint, error) {
	if len(data) == 0 {
		return nil, errors.New("endpoint: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("endpoint: load document: %w", err)
	}
	if r.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("endpoint: validate: %w", err)
		}
	}

	base, err := r.serverURL(doc)
	if err != nil {
		return nil, err
	}

	byID := collectOperations(doc)

	kinds := make([]form.Kind, 0, len(r.operations))
	for kind := range r.operations {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	out := make(map[form.Kind]Endpoint, len(kinds))
	for _, kind := range kinds {
		id := r.operations[kind]
		op, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q for %s", ErrOperationNotFound, id, kind)
		}
		out[kind] = Endpoint{
			Method:      op.method,
			URL:         joinURL(base, op.path),
			OperationID: id,
		}
	}
	return out, nil
}

type located struct {
	method string
	path   string
}

func collectOperations(doc *openapi3.T) map[string]located {
	out := make(map[string]located)
	if doc.Paths == nil {
		return out
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID == "" {
				continue
			}
			out[op.OperationID] = located{method: strings.ToUpper(method), path: path}
		}
	}
	return out
}

func (r *Resolver) serverURL(doc *openapi3.T) (string, error) {
	base := r.baseURL
	if base == "" && len(doc.Servers) > 0 && doc.Servers[0] != nil {
		base = doc.Servers[0].URL
	}
	if base == "" {
		return "", errors.New("endpoint: document has no server URL and no base URL was configured")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("endpoint: server URL %q is not absolute", base)
	}
	return base, nil
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// FromBase derives endpoints for every kind as POST {base}/{kind}.
func FromBase(base string) (map[form.Kind]Endpoint, error) {
	base = strings.TrimSpace(base)
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("endpoint: base URL %q is not absolute", base)
	}
	out := make(map[form.Kind]Endpoint, len(form.Kinds()))
	for _, kind := range form.Kinds() {
		out[kind] = Endpoint{Method: http.MethodPost, URL: joinURL(base, kind.String())}
	}
	return out, nil
}
