// Package cpr copies a directory tree, preserving file contents, mtimes,
// permissions, and symlinks, and reports counters describing what was copied.
//
// The walk is breadth-first: all entries of a directory are copied (or
// filtered out) before any of its subdirectories are listed. Copying stops at
// the first error; whatever was already written to the destination is left in
// place.
package cpr

import (
	"fmt"
	"os"
	"path/filepath"
)

// CopyTree copies the directory tree rooted at src into dest.
//
// src must be a readable directory. dest is created if it does not exist
// (see WithCreateDest). Existing files in the destination are never
// overwritten; hitting one is a WriteFile error.
//
// On success it returns the accumulated CopyStats. On failure it returns a
// zero CopyStats and the first error encountered, which is a *Error unless a
// filter or after-entry callback returned something else.
func CopyTree(src, dest string, opts ...Option) (CopyStats, error) {
	o := newOptions(opts)
	var stats CopyStats

	if info, err := os.Stat(dest); err != nil || !info.IsDir() {
		if !o.createDest {
			return CopyStats{}, &Error{Kind: DestinationDoesNotExist, Path: dest}
		}
		if err := copyDir(src, dest, &stats); err != nil {
			return CopyStats{}, err
		}
	}

	buf := make([]byte, o.bufferSize)

	// Relative paths of directories whose entries have not been listed
	// yet. A directory is only enqueued after it has been created in the
	// destination, so entries are always copied into an existing parent.
	queue := []string{""}

	for len(queue) > 0 {
		subdir := queue[0]
		queue = queue[1:]

		srcSubdir := filepath.Join(src, subdir)
		entries, err := os.ReadDir(srcSubdir)
		if err != nil {
			return CopyStats{}, &Error{Kind: ReadDir, Path: srcSubdir, Err: err}
		}

		for _, entry := range entries {
			rel := filepath.Join(subdir, entry.Name())

			if o.filter != nil {
				keep, err := o.filter(rel, entry)
				if err != nil {
					return CopyStats{}, err
				}
				if !keep {
					stats.Filtered++
					continue
				}
			}

			srcPath := filepath.Join(src, rel)
			destPath := filepath.Join(dest, rel)
			kind := entryKind(entry.Type())

			switch kind {
			case KindFile:
				if err := copyFile(srcPath, destPath, buf, &stats); err != nil {
					return CopyStats{}, err
				}
			case KindDir:
				if err := copyDir(srcPath, destPath, &stats); err != nil {
					return CopyStats{}, err
				}
				queue = append(queue, rel)
			case KindSymlink:
				if err := copySymlink(srcPath, destPath, &stats); err != nil {
					return CopyStats{}, err
				}
			default:
				return CopyStats{}, &Error{
					Kind: UnsupportedFileType,
					Path: srcPath,
					Err:  fmt.Errorf("unsupported file type %v", entry.Type()),
				}
			}

			if o.afterEntry != nil {
				if err := o.afterEntry(rel, kind, stats); err != nil {
					return CopyStats{}, err
				}
			}
		}
	}

	return stats, nil
}

// copyDir creates exactly one directory at dest with src's permission bits.
// The parent must already exist: the traversal handles directories top-down,
// and the destination root is created before the walk starts.
func copyDir(src, dest string, stats *CopyStats) error {
	info, err := os.Stat(src)
	if err != nil {
		return &Error{Kind: ReadDir, Path: src, Err: err}
	}
	if err := os.Mkdir(dest, info.Mode().Perm()); err != nil {
		return &Error{Kind: CreateDir, Path: dest, Err: err}
	}
	stats.Dirs++
	return nil
}
