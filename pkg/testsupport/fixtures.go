package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/form"
)

// MustLoadFieldSet reads a JSON object fixture ({"email": "..."}) into a
// FieldSet.
func MustLoadFieldSet(t *testing.T, path string) form.FieldSet {
	t.Helper()

	fields, err := LoadFieldSet(path)
	if err != nil {
		t.Fatalf("load field set: %v", err)
	}
	return fields
}

// LoadFieldSet reads a JSON fixture into a FieldSet, returning an error for
// callers managing setup outside of *testing.T.
func LoadFieldSet(path string) (form.FieldSet, error) {
	if path == "" {
		return form.FieldSet{}, errors.New("testsupport: field set path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return form.FieldSet{}, fmt.Errorf("testsupport: read field set: %w", err)
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return form.FieldSet{}, fmt.Errorf("testsupport: unmarshal field set: %w", err)
	}
	return form.NewFieldSet(values), nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
