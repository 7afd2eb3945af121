// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"fmt"
	"io/fs"
	"strings"
	"time"
)

// Stream tuning values.
const (
	// copyBufferSize is the fixed chunk size for entry payload copies.
	copyBufferSize = 8 * 1024
	// readBlockSize is the buffered read block size for archive input.
	readBlockSize = 10240
)

// Format is archive container layout.
type Format int

// Supported container formats. Numeric values are stable.
const (
	// FormatTar writes POSIX pax tar.
	FormatTar Format = 0
	// FormatCpio writes SVR4 "newc" cpio.
	FormatCpio Format = 1
	// FormatZip writes zip with UTF-8 names.
	FormatZip Format = 2
)

// String returns lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatTar:
		return "tar"
	case FormatCpio:
		return "cpio"
	case FormatZip:
		return "zip"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat resolves format by case-insensitive name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tar", "pax":
		return FormatTar, nil
	case "cpio", "newc":
		return FormatCpio, nil
	case "zip":
		return FormatZip, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Compression is compression filter applied to the archive byte stream.
type Compression int

// Supported compression filters. Numeric values are stable.
const (
	CompressionNone  Compression = 0
	CompressionGzip  Compression = 1
	CompressionBzip2 Compression = 2
	CompressionXz    Compression = 3
	CompressionLz4   Compression = 4
	CompressionZstd  Compression = 5
)

// String returns lowercase filter name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXz:
		return "xz"
	case CompressionLz4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", int(c))
	}
}

// ParseCompression resolves compression filter by case-insensitive name.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "store":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "bzip2", "bz2":
		return CompressionBzip2, nil
	case "xz":
		return CompressionXz, nil
	case "lz4":
		return CompressionLz4, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFilter, name)
	}
}

// EntryType is archive entry kind.
type EntryType uint8

// Entry kinds. Files and directories are written; hard links are also extracted.
const (
	EntryFile EntryType = iota + 1
	EntryDir
	EntrySymlink
	EntryHardlink
	EntryOther
)

// String returns short entry kind name.
func (t EntryType) String() string {
	switch t {
	case EntryFile:
		return "file"
	case EntryDir:
		return "dir"
	case EntrySymlink:
		return "symlink"
	case EntryHardlink:
		return "hardlink"
	default:
		return "other"
	}
}

// Entry describes one item inside an archive.
type Entry struct {
	// ModTime is entry modification time.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
	// Xattrs holds extended attributes recorded in tar pax records.
	Xattrs map[string]string `json:"xattrs,omitempty" yaml:"xattrs,omitempty"`
	// Path is archive-relative pathname as stored (directories may end with "/").
	Path string `json:"path" yaml:"path"`
	// Linkname is symlink target, or archive path of the link target for EntryHardlink.
	Linkname string `json:"linkname,omitempty" yaml:"linkname,omitempty"`
	// Size is payload size in bytes; authoritative only for regular files.
	Size int64 `json:"size" yaml:"size"`
	// CompressedSize is stored size when the container records it (zip), zero otherwise.
	CompressedSize int64 `json:"compressed_size,omitempty" yaml:"compressed_size,omitempty"`
	// Mode holds permission bits.
	Mode fs.FileMode `json:"mode" yaml:"mode"`
	// Type is entry kind.
	Type EntryType `json:"type" yaml:"type"`
	// Virtual marks directories synthesized by CompleteEntries.
	Virtual bool `json:"virtual,omitempty" yaml:"virtual,omitempty"`
}

// IsDir reports whether entry is a directory.
func (e *Entry) IsDir() bool {
	return e.Type == EntryDir
}

// IsRegular reports whether entry is a regular file.
func (e *Entry) IsRegular() bool {
	return e.Type == EntryFile
}

// FileMode returns permission bits combined with type bits.
func (e *Entry) FileMode() fs.FileMode {
	switch e.Type {
	case EntryDir:
		return e.Mode.Perm() | fs.ModeDir
	case EntrySymlink:
		return e.Mode.Perm() | fs.ModeSymlink
	default:
		return e.Mode.Perm()
	}
}

// Name returns last path segment of entry path.
func (e *Entry) Name() string {
	return EntryName(e.Path)
}

// BuildSpec describes one archive to build.
type BuildSpec struct {
	// Output is destination archive file path.
	Output string `json:"output" yaml:"output"`
	// BaseDir is root for relative entry naming.
	BaseDir string `json:"base_dir" yaml:"base_dir"`
	// Inputs are files and directories added in order.
	Inputs []string `json:"inputs" yaml:"inputs"`
	// Format is container layout.
	Format Format `json:"format" yaml:"format"`
	// Compression is stream filter; ignored for zip except None selects store.
	Compression Compression `json:"compression" yaml:"compression"`
	// Level is filter-specific level, clamped into range before use.
	Level int `json:"level" yaml:"level"`
}

// Progress is one progress report for a regular-file entry.
type Progress struct {
	// Path is current item label (archive-relative on build, destination on extract).
	Path string `json:"path" yaml:"path"`
	// Index is 1-based index of current regular file.
	Index int `json:"index" yaml:"index"`
	// Total is regular file count computed by counting pass.
	Total int `json:"total" yaml:"total"`
}

// TestResult is archive verification outcome.
type TestResult struct {
	// Err is fatal condition that stopped verification; nil on success.
	Err error `json:"-" yaml:"-"`
	// Message is human-readable failure text; empty on success.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	// Tested is number of regular files fully read.
	Tested int `json:"tested" yaml:"tested"`
	// Total is regular file count computed by counting pass.
	Total int `json:"total" yaml:"total"`
	// Success reports whether every entry was read without error.
	Success bool `json:"success" yaml:"success"`
}

// ExtractOptions configures Extract behavior.
type ExtractOptions struct {
	// Overwrite replaces existing destination files. When false existing files abort extraction.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
	// SanitizeNames rewrites entry names to filesystem-safe form before resolving destinations.
	SanitizeNames bool `json:"sanitize_names,omitempty" yaml:"sanitize_names,omitempty"`
}

// diskOptions maps extract options to disk sink options.
func (opts ExtractOptions) diskOptions() DiskOption {
	out := DiskRestoreTime | DiskRestorePerm | DiskRestoreACL | DiskRestoreFlags
	if !opts.Overwrite {
		out |= DiskNoOverwrite
	}

	return out
}
