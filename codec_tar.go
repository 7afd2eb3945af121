// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"archive/tar"
	"io"
	"io/fs"
	"strings"
)

// paxXattrPrefix is pax record prefix for extended attributes.
const paxXattrPrefix = "SCHILY.xattr."

// tarEntryWriter writes pax tar entries.
type tarEntryWriter struct {
	tw *tar.Writer
}

func newTarEntryWriter(w io.Writer) *tarEntryWriter {
	return &tarEntryWriter{tw: tar.NewWriter(w)}
}

// WriteHeader writes pax header for file or directory entry.
func (w *tarEntryWriter) WriteHeader(e *Entry) error {
	hdr := &tar.Header{
		Name:    e.Path,
		Mode:    int64(e.Mode.Perm()),
		ModTime: e.ModTime,
		Format:  tar.FormatPAX,
	}
	if e.IsDir() {
		hdr.Typeflag = tar.TypeDir
	} else {
		hdr.Typeflag = tar.TypeReg
		hdr.Size = e.Size
	}

	if len(e.Xattrs) > 0 {
		hdr.PAXRecords = make(map[string]string, len(e.Xattrs))
		for k, v := range e.Xattrs {
			hdr.PAXRecords[paxXattrPrefix+k] = v
		}
	}

	return w.tw.WriteHeader(hdr)
}

func (w *tarEntryWriter) Write(p []byte) (int, error) {
	return w.tw.Write(p)
}

// Close writes two zero blocks; underlying writer stays open.
func (w *tarEntryWriter) Close() error {
	return w.tw.Close()
}

// tarEntryReader reads tar entries of any supported tar dialect.
type tarEntryReader struct {
	tr *tar.Reader
}

func newTarEntryReader(r io.Reader) *tarEntryReader {
	return &tarEntryReader{tr: tar.NewReader(r)}
}

// Next returns next entry, skipping pax global headers.
func (r *tarEntryReader) Next() (*Entry, error) {
	for {
		hdr, err := r.tr.Next()
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}

		return tarHeaderEntry(hdr), nil
	}
}

func (r *tarEntryReader) Read(p []byte) (int, error) {
	return r.tr.Read(p)
}

// tarHeaderEntry converts tar header to Entry.
func tarHeaderEntry(hdr *tar.Header) *Entry {
	info := hdr.FileInfo()
	e := &Entry{
		Path:     hdr.Name,
		Linkname: hdr.Linkname,
		Size:     hdr.Size,
		Mode:     info.Mode().Perm(),
		ModTime:  hdr.ModTime,
		Type:     tarEntryType(hdr, info.Mode()),
	}
	if e.Type != EntryFile {
		e.Size = 0
	}

	for key, value := range hdr.PAXRecords {
		name, ok := strings.CutPrefix(key, paxXattrPrefix)
		if !ok || name == "" {
			continue
		}
		if e.Xattrs == nil {
			e.Xattrs = make(map[string]string)
		}
		e.Xattrs[name] = value
	}

	return e
}

// tarEntryType resolves entry kind from typeflag; hard links carry no
// type bits in their file mode.
func tarEntryType(hdr *tar.Header, mode fs.FileMode) EntryType {
	switch hdr.Typeflag {
	case tar.TypeLink:
		return EntryHardlink
	case tar.TypeSymlink:
		return EntrySymlink
	case tar.TypeDir:
		return EntryDir
	}

	return entryTypeOf(mode)
}

// entryTypeOf maps file mode type bits to EntryType.
func entryTypeOf(mode fs.FileMode) EntryType {
	switch {
	case mode.IsRegular():
		return EntryFile
	case mode.IsDir():
		return EntryDir
	case mode&fs.ModeSymlink != 0:
		return EntrySymlink
	default:
		return EntryOther
	}
}
