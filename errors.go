// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"errors"
	"io/fs"
)

// CancelledMessage is the fixed text reported for cancelled operations.
const CancelledMessage = "Operation cancelled"

// Error kinds for archive operations. Use errors.Is in callers.
var (
	// ErrIO means a filesystem stat/open/create/read/write failed.
	ErrIO = errors.New("i/o error")
	// ErrFormat means format or compression configuration was rejected.
	ErrFormat = errors.New("invalid archive format")
	// ErrCorruptArchive means header or data could not be read from an existing archive.
	ErrCorruptArchive = errors.New("corrupt archive")
	// ErrCancelled means operation was stopped by progress callback or context.
	ErrCancelled = errors.New("operation cancelled")
	// ErrPathOutsideRoot means resolved extraction path escapes destination root.
	ErrPathOutsideRoot = errors.New("extract path escapes destination root")
)

// Detail errors wrapped together with one of the kinds above.
var (
	// ErrUnknownFormat means archive stream is not tar, cpio or zip.
	ErrUnknownFormat = errors.New("unrecognized archive format")
	// ErrUnsupportedFilter means compression filter cannot be combined with selected format.
	ErrUnsupportedFilter = errors.New("unsupported compression filter")
	// ErrInvalidExcludeRules means one or more exclude rules failed to compile.
	ErrInvalidExcludeRules = errors.New("invalid exclude rules")
	// ErrEntryExists means destination already exists and overwrite is disabled.
	ErrEntryExists = errors.New("destination already exists")
)

// OpError describes one fatal operation failure.
type OpError struct {
	// Kind is one of ErrIO, ErrFormat, ErrCorruptArchive, ErrCancelled, ErrPathOutsideRoot.
	Kind error
	// Err is underlying codec or filesystem diagnostic.
	Err error
	// Op is short action name, e.g. "write header".
	Op string
	// Path is offending filesystem or archive path.
	Path string
}

// Error implements error.
func (e *OpError) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}

	cause := e.Err
	if cause == nil {
		cause = e.Kind
	}
	if cause == nil {
		return msg
	}

	return msg + ": " + cause.Error()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *OpError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}

	return out
}

// newOpError builds OpError and strips duplicated path from *fs.PathError causes.
func newOpError(kind error, op, path string, err error) *OpError {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Path == path {
		err = pathErr.Err
	}

	return &OpError{Kind: kind, Op: op, Path: path, Err: err}
}

// ioError wraps err as ErrIO.
func ioError(op, path string, err error) error {
	return newOpError(ErrIO, op, path, err)
}

// formatError wraps err as ErrFormat.
func formatError(op, path string, err error) error {
	return newOpError(ErrFormat, op, path, err)
}

// corruptError wraps err as ErrCorruptArchive.
func corruptError(op, path string, err error) error {
	return newOpError(ErrCorruptArchive, op, path, err)
}

// cancelledError wraps cancellation cause as ErrCancelled.
func cancelledError(path string, cause error) error {
	if errors.Is(cause, ErrCancelled) {
		cause = nil
	}

	return &OpError{Kind: ErrCancelled, Op: "cancelled at", Path: path, Err: cause}
}

// IsCancelled reports whether err is a cancellation outcome.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
