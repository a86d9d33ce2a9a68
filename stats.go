package cpr

import "io/fs"

// CopyStats counts what a CopyTree call copied.
type CopyStats struct {
	// Files is the number of regular files copied.
	Files int
	// Dirs is the number of directories created in the destination,
	// including the destination root when CopyTree created it.
	Dirs int
	// Symlinks is the number of symlinks recreated.
	Symlinks int
	// Filtered is the number of entries skipped by the filter callback.
	// A skipped directory counts once; its descendants are never visited.
	Filtered int
	// FileBytes is the total content bytes copied across all files.
	FileBytes int64
	// FileBlocks is the number of buffer-sized reads it took to copy the
	// file contents, an indication of how much real IO was done.
	FileBlocks int
}

// EntryKind is the dispatch key for one directory entry.
type EntryKind int

const (
	// KindFile is a regular file.
	KindFile EntryKind = iota
	// KindDir is a directory.
	KindDir
	// KindSymlink is a symbolic link.
	KindSymlink
	// KindUnsupported is anything else: device nodes, FIFOs, sockets.
	KindUnsupported
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "unsupported"
	}
}

// entryKind maps a directory entry's type bits to an EntryKind.
func entryKind(mode fs.FileMode) EntryKind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindUnsupported
	}
}
