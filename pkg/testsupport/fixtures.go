// Package testsupport bundles helpers shared by contract tests: golden-file
// plumbing, diff formatting, and ordered-JSON normalization.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jsonform/pkg/document"
)

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustMarshal renders a value from the ordered value model as JSON, failing
// the test on error. Comparing marshaled output keeps ordered objects
// comparable without exposing their internals.
func MustMarshal(t *testing.T, v any) string {
	t.Helper()
	payload, err := document.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(payload)
}

// MustDecode parses JSON into the ordered value model, failing the test on
// error.
func MustDecode(t *testing.T, raw string) any {
	t.Helper()
	value, err := document.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return value
}

// AsMap converts a value from the ordered value model into plain maps and
// slices so tests can compare shapes without caring about key order.
func AsMap(v any) any {
	switch val := v.(type) {
	case *document.Object:
		out := make(map[string]any, val.Len())
		val.Range(func(key string, value any) bool {
			out[key] = AsMap(value)
			return true
		})
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = AsMap(item)
		}
		return out
	default:
		return v
	}
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
