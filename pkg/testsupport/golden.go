// Package testsupport holds helpers shared by package tests: golden files and
// small filesystem fixtures.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// UpdateEnv enables rewriting golden files instead of comparing them.
const UpdateEnv = "UPDATE_GOLDENS"

// Golden compares got with the golden file at path. When UPDATE_GOLDENS is
// set the file is rewritten and the comparison skipped.
func Golden(t *testing.T, path string, got []byte) {
	t.Helper()

	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadGolden(t, path)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
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
	if os.Getenv(UpdateEnv) == "" {
		return false
	}
	WriteFile(t, path, string(data))
	return true
}

// WriteFile writes content to path, creating parent directories, and returns
// the path.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
