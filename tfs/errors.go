package tfs

import "errors"

// Package-specific sentinel errors, checked with errors.Is. Grounded
// on KarpelesLab/squashfs's errors.go, which follows the same
// flat-var-block convention for a filesystem-shaped library.
var (
	// ErrInvalidPath is returned for a path that isn't absolute,
	// single-component, and at least one character long after the
	// leading slash.
	ErrInvalidPath = errors.New("tfs: invalid path")

	// ErrInvalidArgument covers out-of-range or unallocated handles,
	// out-of-range inumbers, and operations against the wrong inode
	// type. Zero-length reads and writes have their own sentinels below.
	ErrInvalidArgument = errors.New("tfs: invalid argument")

	// ErrNotFound is returned by lookup and by open without CREAT when
	// no entry matches.
	ErrNotFound = errors.New("tfs: no such file")

	// ErrTableFull is returned when the inode table, the data-block
	// pool, the open-file table, or a directory's entry array has no
	// free slot.
	ErrTableFull = errors.New("tfs: table full")

	// ErrNothingToWrite is returned by Write when n == 0.
	ErrNothingToWrite = errors.New("tfs: nothing to write")

	// ErrNothingToRead is returned by Read when n == 0, or when the
	// file has no unread bytes left.
	ErrNothingToRead = errors.New("tfs: nothing to read")

	// ErrWrite covers a failure partway through the addressing
	// engine's write path (an unresolvable block reference).
	ErrWrite = errors.New("tfs: write error")

	// ErrRead covers a failure partway through the addressing
	// engine's read path.
	ErrRead = errors.New("tfs: read error")

	// ErrClosed is returned by operations against a Filesystem that
	// has already been torn down with Destroy.
	ErrClosed = errors.New("tfs: filesystem destroyed")

	// ErrExternalIO is returned when copying to an external sink
	// fails, including a short write.
	ErrExternalIO = errors.New("tfs: external I/O error")
)
