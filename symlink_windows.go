//go:build windows

package cpr

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// copySymlink recreates the link at dest with the same target string as src.
//
// Windows distinguishes file symlinks from directory symlinks at creation
// time, so the target is resolved relative to the link's containing directory
// and its metadata decides which flavor to create. A dangling link cannot be
// typed and fails with ReadSymlink; this differs from Unix, where dangling
// links copy fine.
func copySymlink(src, dest string, stats *CopyStats) error {
	target, err := os.Readlink(src)
	if err != nil {
		return &Error{Kind: ReadSymlink, Path: src, Err: err}
	}

	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(src), target)
	}
	info, err := os.Lstat(resolved)
	if err != nil {
		return &Error{Kind: ReadSymlink, Path: target, Err: err}
	}

	var flags uint32 = windows.SYMBOLIC_LINK_FLAG_ALLOW_UNPRIVILEGED_CREATE
	if info.IsDir() {
		flags |= windows.SYMBOLIC_LINK_FLAG_DIRECTORY
	}

	destp, err := windows.UTF16PtrFromString(dest)
	if err != nil {
		return &Error{Kind: CreateSymlink, Path: dest, Err: err}
	}
	targetp, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return &Error{Kind: CreateSymlink, Path: dest, Err: err}
	}
	if err := windows.CreateSymbolicLink(destp, targetp, flags); err != nil {
		return &Error{Kind: CreateSymlink, Path: dest, Err: err}
	}
	stats.Symlinks++
	return nil
}
