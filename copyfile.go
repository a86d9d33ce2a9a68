//go:build !darwin

// Default implementation for non-Darwin platforms. The destination is always
// created fresh (O_EXCL): an existing file is a WriteFile error, never
// silently overwritten.

package cpr

import (
	"io"
	"os"
	"time"
)

func copyFile(src, dest string, buf []byte, stats *CopyStats) error {
	in, err := os.Open(src)
	if err != nil {
		return &Error{Kind: ReadFile, Path: src, Err: err}
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return &Error{Kind: ReadFile, Path: src, Err: err}
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return &Error{Kind: WriteFile, Path: dest, Err: err}
	}

	for {
		n, err := in.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				out.Close()
				return &Error{Kind: WriteFile, Path: dest, Err: werr}
			}
			stats.FileBytes += int64(n)
			stats.FileBlocks++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			out.Close()
			return &Error{Kind: ReadFile, Path: src, Err: err}
		}
	}

	// O_CREATE's mode argument is masked by the umask; restore the source
	// permissions explicitly.
	if err := out.Chmod(info.Mode().Perm()); err != nil {
		out.Close()
		return &Error{Kind: WriteFile, Path: dest, Err: err}
	}
	if err := out.Close(); err != nil {
		return &Error{Kind: WriteFile, Path: dest, Err: err}
	}

	// Copying the mtime is best-effort: a read-only destination filesystem
	// should not fail the copy.
	_ = os.Chtimes(dest, time.Time{}, info.ModTime())

	stats.Files++
	return nil
}
