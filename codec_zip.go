// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"errors"
	"io"
	"io/fs"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// errNoZipEntry is returned by Write before first header.
var errNoZipEntry = errors.New("zip: write before header")

// zipEntryWriter writes zip entries with store or leveled deflate.
type zipEntryWriter struct {
	zw    *zip.Writer
	cur   io.Writer
	store bool
}

func newZipEntryWriter(w io.Writer, cfg FilterConfig) *zipEntryWriter {
	zw := zip.NewWriter(w)
	store := cfg.ZipStore()
	if !store {
		level := cfg.Level
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, level)
		})
	}

	return &zipEntryWriter{zw: zw, store: store}
}

// WriteHeader starts zip entry. Directories are always stored.
func (w *zipEntryWriter) WriteHeader(e *Entry) error {
	fh := &zip.FileHeader{
		Name:     e.Path,
		Modified: e.ModTime,
		Method:   zip.Deflate,
	}

	mode := e.Mode.Perm()
	if e.IsDir() {
		mode |= fs.ModeDir
		fh.Method = zip.Store
		if !strings.HasSuffix(fh.Name, "/") {
			fh.Name += "/"
		}
	} else {
		fh.UncompressedSize64 = uint64(max(e.Size, 0))
		if w.store {
			fh.Method = zip.Store
		}
	}
	fh.SetMode(mode)

	cur, err := w.zw.CreateHeader(fh)
	if err != nil {
		return err
	}

	w.cur = cur
	return nil
}

func (w *zipEntryWriter) Write(p []byte) (int, error) {
	if w.cur == nil {
		return 0, errNoZipEntry
	}

	return w.cur.Write(p)
}

// Close writes central directory; underlying writer stays open.
func (w *zipEntryWriter) Close() error {
	return w.zw.Close()
}

// zipEntryReader walks zip central directory in stored order and opens
// entry payloads lazily on first Read.
type zipEntryReader struct {
	zr    *zip.Reader
	rc    io.ReadCloser
	index int
}

func newZipEntryReader(r io.ReaderAt, size int64) (*zipEntryReader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	return &zipEntryReader{zr: zr, index: -1}, nil
}

// Next returns next central directory entry; io.EOF after last.
func (r *zipEntryReader) Next() (*Entry, error) {
	if err := r.closeCurrent(); err != nil {
		return nil, err
	}

	r.index++
	if r.index >= len(r.zr.File) {
		return nil, io.EOF
	}

	f := r.zr.File[r.index]
	mode := f.Mode()
	e := &Entry{
		Path:           f.Name,
		Mode:           mode.Perm(),
		ModTime:        f.Modified,
		Size:           int64(f.UncompressedSize64),
		CompressedSize: int64(f.CompressedSize64),
		Type:           entryTypeOf(mode),
	}
	if e.Type != EntryFile {
		e.Size = 0
		e.CompressedSize = 0
	}

	return e, nil
}

// Read reads current entry payload; checksum mismatch surfaces as zip.ErrChecksum.
func (r *zipEntryReader) Read(p []byte) (int, error) {
	if r.index < 0 || r.index >= len(r.zr.File) {
		return 0, io.EOF
	}

	f := r.zr.File[r.index]
	if !f.Mode().IsRegular() {
		return 0, io.EOF
	}
	if r.rc == nil {
		rc, err := f.Open()
		if err != nil {
			return 0, err
		}
		r.rc = rc
	}

	return r.rc.Read(p)
}

// Close releases current entry reader.
func (r *zipEntryReader) Close() error {
	return r.closeCurrent()
}

func (r *zipEntryReader) closeCurrent() error {
	if r.rc == nil {
		return nil
	}

	err := r.rc.Close()
	r.rc = nil
	return err
}
