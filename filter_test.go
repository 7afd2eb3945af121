// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestClampLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		format Format
		c      Compression
		level  int
		want   int
	}{
		{name: "zstd high", format: FormatTar, c: CompressionZstd, level: 30, want: 19},
		{name: "zstd low", format: FormatTar, c: CompressionZstd, level: 0, want: 1},
		{name: "gzip low", format: FormatTar, c: CompressionGzip, level: 0, want: 1},
		{name: "gzip in range", format: FormatCpio, c: CompressionGzip, level: 6, want: 6},
		{name: "bzip2 high", format: FormatTar, c: CompressionBzip2, level: 12, want: 9},
		{name: "xz zero", format: FormatTar, c: CompressionXz, level: 0, want: 0},
		{name: "xz negative", format: FormatTar, c: CompressionXz, level: -3, want: 0},
		{name: "lz4 has no level", format: FormatTar, c: CompressionLz4, level: 5, want: 0},
		{name: "none has no level", format: FormatTar, c: CompressionNone, level: 5, want: 0},
		{name: "zip high", format: FormatZip, c: CompressionGzip, level: 12, want: 9},
		{name: "zip zero", format: FormatZip, c: CompressionZstd, level: 0, want: 0},
		{name: "zip none", format: FormatZip, c: CompressionNone, level: 7, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ClampLevel(tc.format, tc.c, tc.level)
			if got != tc.want {
				t.Fatalf("ClampLevel(%s, %s, %d)=%d, want %d", tc.format, tc.c, tc.level, got, tc.want)
			}
		})
	}
}

func TestFilterConfigOptions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		cfg  FilterConfig
		want string
	}{
		{cfg: NewFilterConfig(FormatTar, CompressionNone, 9), want: ""},
		{cfg: NewFilterConfig(FormatTar, CompressionGzip, 6), want: "gzip:compression-level=6"},
		{cfg: NewFilterConfig(FormatCpio, CompressionBzip2, 0), want: "bzip2:compression-level=1"},
		{cfg: NewFilterConfig(FormatTar, CompressionXz, 0), want: "xz:compression-level=0"},
		{cfg: NewFilterConfig(FormatTar, CompressionLz4, 9), want: ""},
		{cfg: NewFilterConfig(FormatTar, CompressionZstd, 30), want: "compression-level=19"},
		{cfg: NewFilterConfig(FormatZip, CompressionNone, 9), want: "zip:hdrcharset=UTF-8,zip:compression=store"},
		{cfg: NewFilterConfig(FormatZip, CompressionGzip, 0), want: "zip:hdrcharset=UTF-8,zip:compression=store"},
		{cfg: NewFilterConfig(FormatZip, CompressionGzip, 5), want: "zip:hdrcharset=UTF-8,zip:compression=deflate,zip:compression-level=5"},
	}

	for _, tc := range testCases {
		if got := tc.cfg.Options(); got != tc.want {
			t.Fatalf("Options(%+v)=%q, want %q", tc.cfg, got, tc.want)
		}
	}
}

func TestFilterConfigValidate(t *testing.T) {
	t.Parallel()

	if err := NewFilterConfig(Format(7), CompressionNone, 0).validate(); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("validate(format 7)=%v, want ErrUnknownFormat", err)
	}
	if err := NewFilterConfig(FormatTar, Compression(42), 0).validate(); !errors.Is(err, ErrUnsupportedFilter) {
		t.Fatalf("validate(compression 42)=%v, want ErrUnsupportedFilter", err)
	}
}

func TestParseFormatAndCompression(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]Format{"tar": FormatTar, "PAX": FormatTar, "cpio": FormatCpio, "newc": FormatCpio, "Zip": FormatZip} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q)=%v,%v, want %v", name, got, err, want)
		}
	}
	if _, err := ParseFormat("rar"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("ParseFormat(rar) err=%v, want ErrUnknownFormat", err)
	}

	for name, want := range map[string]Compression{
		"": CompressionNone, "gz": CompressionGzip, "bzip2": CompressionBzip2,
		"xz": CompressionXz, "LZ4": CompressionLz4, "zst": CompressionZstd,
	} {
		got, err := ParseCompression(name)
		if err != nil || got != want {
			t.Fatalf("ParseCompression(%q)=%v,%v, want %v", name, got, err, want)
		}
	}
	if _, err := ParseCompression("brotli"); !errors.Is(err, ErrUnsupportedFilter) {
		t.Fatalf("ParseCompression(brotli) err=%v, want ErrUnsupportedFilter", err)
	}
}

func TestFilterStreamDetection(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("filter payload "), 256)
	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionBzip2, CompressionXz, CompressionLz4, CompressionZstd} {
		t.Run(c.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w, err := newFilterWriter(&buf, NewFilterConfig(FormatTar, c, 6))
			if err != nil {
				t.Fatalf("newFilterWriter: %v", err)
			}
			if _, err := w.Write(payload); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			if c != CompressionNone {
				if got := detectFilter(buf.Bytes()); got != c {
					t.Fatalf("detectFilter=%s, want %s", got, c)
				}
			}

			r, err := newFilterReader(bytes.NewReader(buf.Bytes()), c)
			if err != nil {
				t.Fatalf("newFilterReader: %v", err)
			}
			defer func() { _ = r.Close() }()

			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Fatalf("payload mismatch: got %d bytes, want %d", len(got), len(payload))
			}
		})
	}
}
