package cpr

import "fmt"

// ErrorKind classifies what a copy error was doing when it failed.
type ErrorKind int

const (
	// ReadDir means listing a source directory, or reading an entry's
	// type, failed.
	ReadDir ErrorKind = iota
	// ReadFile means opening or reading a source file failed.
	ReadFile
	// WriteFile means creating or writing a destination file failed,
	// including when the destination file already exists.
	WriteFile
	// CreateDir means creating a destination directory failed.
	CreateDir
	// ReadSymlink means reading a source symlink's target failed, or, on
	// Windows, the link target could not be resolved to decide between a
	// file and a directory link.
	ReadSymlink
	// CreateSymlink means creating a symlink in the destination failed.
	CreateSymlink
	// UnsupportedFileType means the source tree contains something that is
	// neither a regular file, a directory, nor a symlink, such as a Unix
	// FIFO, device node, or socket.
	UnsupportedFileType
	// DestinationDoesNotExist means destination creation was disabled with
	// WithCreateDest(false) and the destination is not an existing
	// directory.
	DestinationDoesNotExist
	// Interrupted is never produced by this package. It is reserved for
	// filter and after-entry callbacks that want to stop the walk
	// deliberately while still returning a *Error.
	Interrupted
)

func (k ErrorKind) String() string {
	switch k {
	case ReadDir:
		return "read dir"
	case ReadFile:
		return "read file"
	case WriteFile:
		return "write file"
	case CreateDir:
		return "create dir"
	case ReadSymlink:
		return "read symlink"
	case CreateSymlink:
		return "create symlink"
	case UnsupportedFileType:
		return "unsupported file type"
	case DestinationDoesNotExist:
		return "destination does not exist"
	case Interrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the error type returned by CopyTree. It carries the kind of
// operation that failed, the path it failed on, and the underlying OS error
// if there was one.
//
// Exactly one Error is surfaced per CopyTree call: the first failure stops
// the traversal.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the underlying OS error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}
