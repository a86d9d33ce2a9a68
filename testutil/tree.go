package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestTree is a temporary directory tree for testing copy operations.
type TestTree struct {
	t    testing.TB
	Root string
}

// NewTestTree creates a new temporary source tree.
// Cleanup is automatically registered via t.Cleanup().
func NewTestTree(t testing.TB) *TestTree { //nostyle:repetition
	t.Helper()

	dir, err := os.MkdirTemp("", "cp-r-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	// Resolve symlinks (macOS /var -> /private/var issue)
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("failed to resolve symlinks: %v", err)
	}

	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	return &TestTree{
		t:    t,
		Root: dir,
	}
}

// CreateFile creates a file with the given content, making parent
// directories as needed. It calls t.Fatal on error.
func (tr *TestTree) CreateFile(path, content string) {
	tr.t.Helper()
	fullPath := filepath.Join(tr.Root, path)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		tr.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		tr.t.Fatalf("failed to create file %s: %v", path, err)
	}
}

// Mkdir creates a directory (and parents) inside the tree.
// It calls t.Fatal on error.
func (tr *TestTree) Mkdir(path string) {
	tr.t.Helper()
	if err := os.MkdirAll(filepath.Join(tr.Root, path), 0755); err != nil {
		tr.t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// Symlink creates a symlink at path pointing at target. The target is used
// verbatim and may be dangling. It calls t.Fatal on error.
func (tr *TestTree) Symlink(target, path string) {
	tr.t.Helper()
	if err := os.Symlink(target, filepath.Join(tr.Root, path)); err != nil {
		tr.t.Fatalf("failed to create symlink %s -> %s: %v", path, target, err)
	}
}

// Chmod changes the permissions of a path inside the tree.
// It calls t.Fatal on error.
func (tr *TestTree) Chmod(path string, mode os.FileMode) {
	tr.t.Helper()
	if err := os.Chmod(filepath.Join(tr.Root, path), mode); err != nil {
		tr.t.Fatalf("failed to chmod %s: %v", path, err)
	}
}

// Chtimes sets the mtime of a path inside the tree.
// It calls t.Fatal on error.
func (tr *TestTree) Chtimes(path string, mtime time.Time) {
	tr.t.Helper()
	if err := os.Chtimes(filepath.Join(tr.Root, path), mtime, mtime); err != nil {
		tr.t.Fatalf("failed to chtimes %s: %v", path, err)
	}
}

// ReadFile reads a file inside the tree and returns its content.
// It calls t.Fatal on error.
func (tr *TestTree) ReadFile(path string) string {
	tr.t.Helper()
	data, err := os.ReadFile(filepath.Join(tr.Root, path))
	if err != nil {
		tr.t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}

// Path returns the absolute path to a file in the tree.
func (tr *TestTree) Path(relPath string) string {
	return filepath.Join(tr.Root, relPath)
}
