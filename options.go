package cpr

import "io/fs"

// Default size of the buffer used to stream file contents.
const defaultBufferSize = 8 << 20

// FilterFunc decides whether a directory entry should be copied. It is called
// once per entry, before the entry is copied, with the entry's path relative
// to the tree root and the raw directory entry from the source listing.
//
// Returning false skips the entry; if the entry is a directory its whole
// subtree is skipped and never visited. Returning an error aborts the
// traversal with that error.
type FilterFunc func(rel string, entry fs.DirEntry) (bool, error)

// AfterEntryFunc is called once per successfully copied entry, after the
// copy, with the entry's relative path, its kind, and a snapshot of the
// cumulative stats. Returning an error aborts the remainder of the traversal
// and that error becomes CopyTree's result.
type AfterEntryFunc func(rel string, kind EntryKind, stats CopyStats) error

type options struct {
	createDest bool
	bufferSize int
	filter     FilterFunc
	afterEntry AfterEntryFunc
}

// Option configures a CopyTree call.
type Option func(*options)

// WithCreateDest controls whether CopyTree creates the destination directory
// when it does not already exist. The default is true. When disabled,
// CopyTree fails with DestinationDoesNotExist unless the destination is
// already a directory.
func WithCreateDest(create bool) Option {
	return func(o *options) {
		o.createDest = create
	}
}

// WithBufferSize sets the size in bytes of the buffer used to stream file
// contents. Values <= 0 fall back to the default of 8 MiB.
func WithBufferSize(size int) Option {
	return func(o *options) {
		o.bufferSize = size
	}
}

// WithFilter installs a filter callback. See FilterFunc.
func WithFilter(f FilterFunc) Option {
	return func(o *options) {
		o.filter = f
	}
}

// WithAfterEntry installs a progress callback. See AfterEntryFunc.
func WithAfterEntry(f AfterEntryFunc) Option {
	return func(o *options) {
		o.afterEntry = f
	}
}

func newOptions(opts []Option) options {
	o := options{
		createDest: true,
		bufferSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bufferSize <= 0 {
		o.bufferSize = defaultBufferSize
	}
	return o
}
