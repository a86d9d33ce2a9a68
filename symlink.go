//go:build !windows

package cpr

import "os"

// copySymlink recreates the link at dest with the same target string as src.
// The target is copied verbatim, never resolved or rewritten, so dangling
// links copy successfully.
func copySymlink(src, dest string, stats *CopyStats) error {
	target, err := os.Readlink(src)
	if err != nil {
		return &Error{Kind: ReadSymlink, Path: src, Err: err}
	}
	if err := os.Symlink(target, dest); err != nil {
		return &Error{Kind: CreateSymlink, Path: dest, Err: err}
	}
	stats.Symlinks++
	return nil
}
