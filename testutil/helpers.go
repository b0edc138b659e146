package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// CreateTempDir creates a temporary directory for testing
func CreateTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "oralvis-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// WriteImage writes a fake image file with the given name into dir
func WriteImage(t *testing.T, dir, name string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create image dir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("jpeg-bytes"), 0644); err != nil {
		t.Fatalf("Failed to write image %s: %v", name, err)
	}
	return path
}

// Touch sets the file's modification time, for ordering tests
func Touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	if err := os.Chtimes(path, at, at); err != nil {
		t.Fatalf("Failed to set mtime on %s: %v", path, err)
	}
}

// WriteSourceImage writes a source image the file camera can capture
func WriteSourceImage(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "source.jpg")
	if err := os.WriteFile(path, []byte("source-jpeg-bytes"), 0644); err != nil {
		t.Fatalf("Failed to write source image: %v", err)
	}
	return path
}
