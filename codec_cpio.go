// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"errors"
	"io"
	"io/fs"

	"github.com/cavaliergopher/cpio"
)

// cpioEntryWriter writes SVR4 newc cpio entries.
type cpioEntryWriter struct {
	cw *cpio.Writer
}

func newCpioEntryWriter(w io.Writer) *cpioEntryWriter {
	return &cpioEntryWriter{cw: cpio.NewWriter(w)}
}

// WriteHeader writes newc header for file or directory entry.
func (w *cpioEntryWriter) WriteHeader(e *Entry) error {
	hdr := &cpio.Header{
		Name:    e.Path,
		Mode:    cpio.FileMode(e.Mode.Perm()),
		ModTime: e.ModTime,
		Links:   1,
	}
	if e.IsDir() {
		hdr.Mode |= cpio.TypeDir
		hdr.Links = 2
	} else {
		hdr.Mode |= cpio.TypeReg
		hdr.Size = e.Size
	}

	return w.cw.WriteHeader(hdr)
}

func (w *cpioEntryWriter) Write(p []byte) (int, error) {
	return w.cw.Write(p)
}

// Close writes TRAILER!!! record; underlying writer stays open.
func (w *cpioEntryWriter) Close() error {
	return w.cw.Close()
}

// cpioEntryReader reads newc/crc cpio entries and detects truncated payloads.
type cpioEntryReader struct {
	cr        *cpio.Reader
	remaining int64
}

func newCpioEntryReader(r io.Reader) *cpioEntryReader {
	return &cpioEntryReader{cr: cpio.NewReader(r)}
}

// Next returns next entry; io.EOF at trailer. Unread payload of current
// entry is drained first so truncation is reported instead of clean end.
func (r *cpioEntryReader) Next() (*Entry, error) {
	if r.remaining > 0 {
		if _, err := io.Copy(io.Discard, r); err != nil {
			return nil, err
		}
	}

	hdr, err := r.cr.Next()
	if err != nil {
		return nil, err
	}

	e := &Entry{
		Path:     hdr.Name,
		Linkname: hdr.Linkname,
		Size:     hdr.Size,
		Mode:     fs.FileMode(hdr.Mode.Perm()),
		ModTime:  hdr.ModTime,
	}
	switch hdr.Mode & cpio.ModeType {
	case cpio.TypeReg:
		e.Type = EntryFile
	case cpio.TypeDir:
		e.Type = EntryDir
		e.Size = 0
	case cpio.TypeSymlink:
		e.Type = EntrySymlink
	default:
		e.Type = EntryOther
	}

	r.remaining = hdr.Size
	return e, nil
}

// Read reads current payload; premature end of stream is io.ErrUnexpectedEOF.
func (r *cpioEntryReader) Read(p []byte) (int, error) {
	if r.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > r.remaining {
		p = p[:r.remaining]
	}

	n, err := r.cr.Read(p)
	r.remaining -= int64(n)
	if errors.Is(err, io.EOF) {
		if r.remaining > 0 {
			return n, io.ErrUnexpectedEOF
		}
		if n > 0 {
			err = nil
		}
	}

	return n, err
}
