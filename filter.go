// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Stream magic prefixes used for filter detection on read.
var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicBzip2 = []byte("BZh")
	magicXz    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicLz4   = []byte{0x04, 0x22, 0x4d, 0x18}
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// xzDictCaps maps xz preset levels 0..9 to LZMA2 dictionary capacity.
var xzDictCaps = [10]int{
	256 << 10, 1 << 20, 2 << 20, 4 << 20, 4 << 20,
	8 << 20, 8 << 20, 16 << 20, 32 << 20, 64 << 20,
}

// levelRange returns valid level bounds for filter; ok is false when filter has no level.
func levelRange(c Compression) (lo, hi int, ok bool) {
	switch c {
	case CompressionGzip, CompressionBzip2:
		return 1, 9, true
	case CompressionXz:
		return 0, 9, true
	case CompressionZstd:
		return 1, 19, true
	default:
		return 0, 0, false
	}
}

// ClampLevel clamps level into the valid range of format and filter.
// Zip uses 0..9 regardless of filter; filters without levels return 0.
func ClampLevel(format Format, c Compression, level int) int {
	if format == FormatZip {
		if c == CompressionNone {
			return 0
		}

		return min(max(level, 0), 9)
	}

	lo, hi, ok := levelRange(c)
	if !ok {
		return 0
	}

	return min(max(level, lo), hi)
}

// FilterConfig is resolved output pipeline configuration with clamped level.
type FilterConfig struct {
	// Format is container layout.
	Format Format `json:"format" yaml:"format"`
	// Compression is stream filter; for zip only None vs other matters.
	Compression Compression `json:"compression" yaml:"compression"`
	// Level is clamped level.
	Level int `json:"level" yaml:"level"`
}

// NewFilterConfig resolves pipeline configuration, clamping level silently.
func NewFilterConfig(format Format, c Compression, level int) FilterConfig {
	return FilterConfig{
		Format:      format,
		Compression: c,
		Level:       ClampLevel(format, c, level),
	}
}

// ZipStore reports whether zip entries are stored without deflate.
func (c FilterConfig) ZipStore() bool {
	return c.Format == FormatZip && (c.Compression == CompressionNone || c.Level == 0)
}

// Options renders filter option string in libarchive notation,
// e.g. "gzip:compression-level=6" or "zip:hdrcharset=UTF-8,zip:compression=store".
func (c FilterConfig) Options() string {
	level := strconv.Itoa(c.Level)
	if c.Format == FormatZip {
		opt := "zip:hdrcharset=UTF-8"
		if c.ZipStore() {
			return opt + ",zip:compression=store"
		}

		return opt + ",zip:compression=deflate,zip:compression-level=" + level
	}

	switch c.Compression {
	case CompressionGzip:
		return "gzip:compression-level=" + level
	case CompressionBzip2:
		return "bzip2:compression-level=" + level
	case CompressionXz:
		return "xz:compression-level=" + level
	case CompressionZstd:
		return "compression-level=" + level
	default:
		return ""
	}
}

// validate rejects unknown formats and filters.
func (c FilterConfig) validate() error {
	switch c.Format {
	case FormatTar, FormatCpio, FormatZip:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, c.Format)
	}

	if c.Compression < CompressionNone || c.Compression > CompressionZstd {
		return fmt.Errorf("%w: %s", ErrUnsupportedFilter, c.Compression)
	}

	return nil
}

// newFilterWriter wraps w with compression encoder for non-zip formats.
// Returned closer flushes encoder trailer but does not close w.
func newFilterWriter(w io.Writer, c FilterConfig) (io.WriteCloser, error) {
	if c.Format == FormatZip {
		return nopWriteCloser{Writer: w}, nil
	}

	switch c.Compression {
	case CompressionNone:
		return nopWriteCloser{Writer: w}, nil
	case CompressionGzip:
		return gzip.NewWriterLevel(w, c.Level)
	case CompressionBzip2:
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: c.Level})
	case CompressionXz:
		return xz.WriterConfig{DictCap: xzDictCaps[c.Level]}.NewWriter(w)
	case CompressionLz4:
		return lz4.NewWriter(w), nil
	case CompressionZstd:
		return zstd.NewWriter(w,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(c.Level)),
			zstd.WithEncoderConcurrency(1),
		)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, c.Compression)
	}
}

// detectFilter resolves compression filter from stream prefix.
func detectFilter(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, magicGzip):
		return CompressionGzip
	case bytes.HasPrefix(head, magicBzip2):
		return CompressionBzip2
	case bytes.HasPrefix(head, magicXz):
		return CompressionXz
	case bytes.HasPrefix(head, magicLz4):
		return CompressionLz4
	case bytes.HasPrefix(head, magicZstd):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// newFilterReader wraps r with decoder for compression c.
func newFilterReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		return gzip.NewReader(r)
	case CompressionBzip2:
		return bzip2.NewReader(r, nil)
	case CompressionXz:
		zr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}

		return io.NopCloser(zr), nil
	case CompressionLz4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}

		return dec.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, c)
	}
}

// nopWriteCloser adds no-op Close to a writer.
type nopWriteCloser struct {
	io.Writer
}

// Close implements io.Closer (no-op).
func (nopWriteCloser) Close() error {
	return nil
}
