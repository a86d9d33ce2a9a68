//go:build !windows

package cpr

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/sourcefrog/cp-r/testutil"
)

func TestCopyTree_DanglingSymlink(t *testing.T) {
	src := testutil.NewTestTree(t)
	src.Symlink("dangling target", "a_link")

	dest := t.TempDir()

	stats, err := CopyTree(src.Root, dest)
	if err != nil {
		t.Fatalf("CopyTree failed: %v", err)
	}

	want := CopyStats{Symlinks: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	target, err := os.Readlink(filepath.Join(dest, "a_link"))
	if err != nil {
		t.Fatalf("failed to read copied link: %v", err)
	}
	if target != "dangling target" {
		t.Errorf("link target = %q, want %q", target, "dangling target")
	}
}

func TestCopyTree_RelativeSymlink(t *testing.T) {
	src := testutil.NewTestTree(t)
	src.CreateFile("target", "hello")
	src.Symlink("target", "link")

	dest := t.TempDir()

	if _, err := CopyTree(src.Root, dest); err != nil {
		t.Fatalf("CopyTree failed: %v", err)
	}

	// The target string is copied verbatim, so the copied link resolves
	// within the destination tree.
	content, err := os.ReadFile(filepath.Join(dest, "link"))
	if err != nil {
		t.Fatalf("failed to read through copied link: %v", err)
	}
	if string(content) != "hello" {
		t.Errorf("content through link = %q, want %q", string(content), "hello")
	}
}

func TestCopyTree_PermissionsPreserved(t *testing.T) {
	src := testutil.NewTestTree(t)
	src.CreateFile("f", "x")
	src.Chmod("f", 0750)

	dest := t.TempDir()

	if _, err := CopyTree(src.Root, dest); err != nil {
		t.Fatalf("CopyTree failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dest, "f"))
	if err != nil {
		t.Fatalf("failed to stat copied file: %v", err)
	}
	if got := info.Mode().Perm(); got != 0750 {
		t.Errorf("copied mode = %o, want %o", got, 0750)
	}
}

func TestCopyTree_UnsupportedFileType(t *testing.T) {
	src := testutil.NewTestTree(t)
	if err := syscall.Mkfifo(src.Path("fifo"), 0644); err != nil {
		t.Skipf("cannot create fifo: %v", err)
	}

	dest := t.TempDir()

	_, err := CopyTree(src.Root, dest)
	if err == nil {
		t.Fatal("CopyTree succeeded, want error")
	}

	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if cerr.Kind != UnsupportedFileType {
		t.Errorf("error kind = %v, want %v", cerr.Kind, UnsupportedFileType)
	}
	if cerr.Path != src.Path("fifo") {
		t.Errorf("error path = %q, want %q", cerr.Path, src.Path("fifo"))
	}
}
