//go:build darwin

// macOS implementation using clonefile(2) for APFS Copy-on-Write.
// clonefile creates a lightweight clone that shares data blocks until
// modified, and it clones permissions and mtime along with the contents.
// It also refuses to replace an existing destination, which matches the
// no-overwrite contract. Falls back to a buffered copy when clonefile fails
// for other reasons (non-APFS, cross-device, etc.).

package cpr

import (
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func copyFile(src, dest string, buf []byte, stats *CopyStats) error {
	info, err := os.Stat(src)
	if err != nil {
		return &Error{Kind: ReadFile, Path: src, Err: err}
	}

	err = unix.Clonefile(src, dest, unix.CLONE_NOFOLLOW)
	if err == nil {
		stats.FileBytes += info.Size()
		// No reads happened; derive the block count from the size.
		bufLen := int64(len(buf))
		stats.FileBlocks += int((info.Size() + bufLen - 1) / bufLen)
		stats.Files++
		return nil
	}
	if errors.Is(err, unix.EEXIST) {
		return &Error{Kind: WriteFile, Path: dest, Err: err}
	}

	return copyFileFallback(src, dest, buf, stats)
}

func copyFileFallback(src, dest string, buf []byte, stats *CopyStats) error {
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

	if err := out.Chmod(info.Mode().Perm()); err != nil {
		out.Close()
		return &Error{Kind: WriteFile, Path: dest, Err: err}
	}
	if err := out.Close(); err != nil {
		return &Error{Kind: WriteFile, Path: dest, Err: err}
	}

	_ = os.Chtimes(dest, time.Time{}, info.ModTime())

	stats.Files++
	return nil
}
