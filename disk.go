// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"
)

// DiskOption selects which entry metadata is restored on extraction.
type DiskOption uint8

// Disk sink options.
const (
	// DiskRestoreTime restores modification times.
	DiskRestoreTime DiskOption = 1 << iota
	// DiskRestorePerm restores permission bits.
	DiskRestorePerm
	// DiskRestoreACL restores POSIX ACL extended attributes.
	DiskRestoreACL
	// DiskRestoreFlags restores remaining extended attributes.
	DiskRestoreFlags
	// DiskNoOverwrite fails on existing destination files.
	DiskNoOverwrite
)

// Has reports whether all bits of flag are set.
func (o DiskOption) Has(flag DiskOption) bool {
	return o&flag == flag
}

// aclXattrPrefix marks POSIX ACL extended attributes.
const aclXattrPrefix = "system.posix_acl_"

// pendingDir is directory metadata applied when the sink closes, after
// all children were written.
type pendingDir struct {
	modTime time.Time
	path    string
	mode    fs.FileMode
}

// diskWriter materializes archive entries on the local filesystem.
type diskWriter struct {
	log   *slog.Logger
	file  *os.File
	entry *Entry
	dest  string
	dirs  []pendingDir
	opts  DiskOption
}

// newDiskWriter creates sink with opts.
func newDiskWriter(opts DiskOption, log *slog.Logger) *diskWriter {
	return &diskWriter{opts: opts, log: log}
}

// WriteHeader creates destination for entry. Directories are created with
// parents; existing directories are accepted even with DiskNoOverwrite.
// An existing non-directory at dest is replaced, never written through.
func (w *diskWriter) WriteHeader(dest string, e *Entry) error {
	if w.file != nil {
		if err := w.FinishEntry(); err != nil {
			return err
		}
	}

	w.entry = e
	w.dest = dest

	if e.IsDir() {
		if info, err := os.Lstat(dest); err == nil && !info.IsDir() {
			if err := w.clearDestination(dest); err != nil {
				return err
			}
		}
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return err
		}

		w.dirs = append(w.dirs, pendingDir{path: dest, mode: e.Mode.Perm(), modTime: e.ModTime})
		return nil
	}

	if err := w.clearDestination(dest); err != nil {
		return err
	}

	file, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrEntryExists, dest)
		}

		return err
	}

	w.file = file
	return nil
}

// WriteLink creates hard link dest pointing at already extracted target.
func (w *diskWriter) WriteLink(dest, target string) error {
	if err := w.FinishEntry(); err != nil {
		return err
	}
	if err := w.clearDestination(dest); err != nil {
		return err
	}

	return os.Link(target, dest)
}

// clearDestination unlinks an existing non-directory at dest. Symlinks are
// removed, not followed. With DiskNoOverwrite any existing entry is an error.
func (w *diskWriter) clearDestination(dest string) error {
	info, err := os.Lstat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if w.opts.Has(DiskNoOverwrite) {
		return fmt.Errorf("%w: %s", ErrEntryExists, dest)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrEntryExists, dest)
	}

	return os.Remove(dest)
}

// Write appends payload to current file.
func (w *diskWriter) Write(p []byte) (int, error) {
	if w.file == nil {
		return 0, io.ErrClosedPipe
	}

	return w.file.Write(p)
}

// FinishEntry closes current file and commits its metadata.
func (w *diskWriter) FinishEntry() error {
	if w.entry == nil || w.entry.IsDir() {
		w.entry = nil
		return nil
	}

	e, dest := w.entry, w.dest
	w.entry = nil
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		if err != nil {
			return err
		}
	}

	return w.restore(dest, e.Mode.Perm(), e.ModTime, e.Xattrs)
}

// Close finishes pending entry and applies deferred directory metadata
// deepest first.
func (w *diskWriter) Close() error {
	var errs []error
	if err := w.FinishEntry(); err != nil {
		errs = append(errs, err)
	}

	for i := len(w.dirs) - 1; i >= 0; i-- {
		d := w.dirs[i]
		if err := w.restore(d.path, d.mode, d.modTime, nil); err != nil {
			errs = append(errs, err)
		}
	}
	w.dirs = nil

	return errors.Join(errs...)
}

// restore applies enabled metadata to path.
func (w *diskWriter) restore(path string, mode fs.FileMode, modTime time.Time, xattrs map[string]string) error {
	w.restoreXattrs(path, xattrs)

	if w.opts.Has(DiskRestorePerm) && mode != 0 {
		if err := os.Chmod(path, mode); err != nil {
			return err
		}
	}

	if w.opts.Has(DiskRestoreTime) && !modTime.IsZero() {
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			return err
		}
	}

	return nil
}

// restoreXattrs applies extended attributes best-effort; failures are logged.
func (w *diskWriter) restoreXattrs(path string, xattrs map[string]string) {
	for name, value := range xattrs {
		isACL := strings.HasPrefix(name, aclXattrPrefix)
		if isACL && !w.opts.Has(DiskRestoreACL) {
			continue
		}
		if !isACL && !w.opts.Has(DiskRestoreFlags) {
			continue
		}

		if err := setXattr(path, name, []byte(value)); err != nil {
			w.log.Warn("restore xattr failed", slog.String("path", path), slog.String("name", name), slog.Any("error", err))
		}
	}
}
