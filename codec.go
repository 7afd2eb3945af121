// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// entryWriter is container-level sequential entry writer.
type entryWriter interface {
	// WriteHeader starts new entry; payload follows via Write for regular files.
	WriteHeader(e *Entry) error
	// Write appends payload bytes of current entry.
	Write(p []byte) (int, error)
	// Close writes container trailer.
	Close() error
}

// entryReader is container-level sequential entry reader.
type entryReader interface {
	// Next advances to next entry header; io.EOF at end of archive.
	Next() (*Entry, error)
	// Read reads payload of current entry; io.EOF when entry is exhausted.
	Read(p []byte) (int, error)
}

// writeSession owns output file, buffer, filter encoder, and container writer.
type writeSession struct {
	entries entryWriter
	filter  io.WriteCloser
	buf     *bufio.Writer
	file    *os.File
	path    string
	closed  bool
}

// createArchive opens path for writing and builds container pipeline for cfg.
func createArchive(path string, cfg FilterConfig) (*writeSession, error) {
	if err := cfg.validate(); err != nil {
		return nil, formatError("configure output", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, ioError("create archive", path, err)
	}

	buf := bufio.NewWriterSize(f, readBlockSize)
	filter, err := newFilterWriter(buf, cfg)
	if err != nil {
		_ = f.Close()
		return nil, formatError("configure filter "+cfg.Options(), path, err)
	}

	s := &writeSession{filter: filter, buf: buf, file: f, path: path}
	switch cfg.Format {
	case FormatTar:
		s.entries = newTarEntryWriter(filter)
	case FormatCpio:
		s.entries = newCpioEntryWriter(filter)
	case FormatZip:
		s.entries = newZipEntryWriter(filter, cfg)
	}

	return s, nil
}

// WriteHeader writes entry header.
func (s *writeSession) WriteHeader(e *Entry) error {
	return s.entries.WriteHeader(e)
}

// Write writes payload bytes of current entry.
func (s *writeSession) Write(p []byte) (int, error) {
	return s.entries.Write(p)
}

// Close finalizes container and filter, then closes file. Safe to call once per session.
func (s *writeSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.entries.Close(); err != nil {
		errs = append(errs, fmt.Errorf("finish container: %w", err))
	}
	if err := s.filter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("finish filter: %w", err))
	}
	if err := s.buf.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush: %w", err))
	}
	if err := s.file.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Abort releases resources without writing container or filter trailers.
// Output is left truncated.
func (s *writeSession) Abort() {
	if s.closed {
		return
	}
	s.closed = true

	_ = s.file.Close()
	// encoder goroutines and buffers are released; writes to closed file are discarded
	_ = s.filter.Close()
}

// readSession owns input file, decoder, and container reader.
type readSession struct {
	entryReader
	closers []io.Closer
	format  Format
	filter  Compression
}

// openArchive opens path, detects filter and container format, and
// returns reader positioned before the first header.
func openArchive(path string) (*readSession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("open archive", path, err)
	}

	s := &readSession{closers: []io.Closer{f}}
	if err := s.init(f, path); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

// init builds decoding pipeline over f.
func (s *readSession) init(f *os.File, path string) error {
	raw := bufio.NewReaderSize(f, readBlockSize)
	head, err := raw.Peek(len(magicXz))
	if err != nil && !errors.Is(err, io.EOF) {
		return ioError("read archive", path, err)
	}

	s.filter = detectFilter(head)
	if s.filter == CompressionNone && isZipMagic(head) {
		info, err := f.Stat()
		if err != nil {
			return ioError("stat archive", path, err)
		}

		zr, err := newZipEntryReader(f, info.Size())
		if err != nil {
			return corruptError("open zip directory", path, err)
		}

		s.format = FormatZip
		s.entryReader = zr
		s.closers = append(s.closers, zr)
		return nil
	}

	dec, err := newFilterReader(raw, s.filter)
	if err != nil {
		return corruptError("open "+s.filter.String()+" stream", path, err)
	}
	s.closers = append(s.closers, dec)

	body := bufio.NewReaderSize(dec, readBlockSize)
	block, err := body.Peek(tarBlockSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return corruptError("read "+s.filter.String()+" stream", path, err)
	}

	switch {
	case isZipMagic(block):
		return formatError("open archive", path, fmt.Errorf("%w: zip inside %s", ErrUnsupportedFilter, s.filter))
	case isCpioMagic(block):
		s.format = FormatCpio
		s.entryReader = newCpioEntryReader(body)
	case isTarBlock(block):
		s.format = FormatTar
		s.entryReader = newTarEntryReader(body)
	default:
		return formatError("open archive", path, ErrUnknownFormat)
	}

	return nil
}

// Close releases all session resources in reverse acquisition order.
func (s *readSession) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil

	return errors.Join(errs...)
}

// tarBlockSize is tar header block size.
const tarBlockSize = 512

// isZipMagic reports zip local header or empty-archive end record prefix.
func isZipMagic(head []byte) bool {
	return bytes.HasPrefix(head, []byte("PK\x03\x04")) || bytes.HasPrefix(head, []byte("PK\x05\x06"))
}

// isCpioMagic reports SVR4 newc/crc cpio magic.
func isCpioMagic(head []byte) bool {
	return bytes.HasPrefix(head, []byte("070701")) || bytes.HasPrefix(head, []byte("070702"))
}

// isTarBlock reports whether block looks like first tar header: ustar magic,
// valid v7 checksum, or zero end-of-archive block.
func isTarBlock(block []byte) bool {
	if len(block) < tarBlockSize {
		return false
	}
	if bytes.Equal(block[257:262], []byte("ustar")) {
		return true
	}
	if isZeroBlock(block) {
		return true
	}

	return tarChecksumValid(block)
}

// isZeroBlock reports whether block has only zero bytes.
func isZeroBlock(block []byte) bool {
	for _, b := range block {
		if b != 0 {
			return false
		}
	}

	return true
}

// tarChecksumValid verifies header checksum treating chksum field as spaces.
func tarChecksumValid(block []byte) bool {
	field := bytes.Trim(block[148:156], " \x00")
	want, err := strconv.ParseInt(string(field), 8, 64)
	if err != nil {
		return false
	}

	var sum int64
	for i, b := range block[:tarBlockSize] {
		if i >= 148 && i < 156 {
			b = ' '
		}
		sum += int64(b)
	}

	return sum == want
}

// copyEntryData copies src to dst through buf, separating read and write failures.
func copyEntryData(dst io.Writer, src io.Reader, buf []byte) (written int64, readErr, writeErr error) {
	for {
		n, err := src.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, nil, werr
			}
			if wn != n {
				return written, nil, io.ErrShortWrite
			}
		}

		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			return written, nil, nil
		}

		return written, err, nil
	}
}
