// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Extractor reads one existing archive. Format and compression are detected
// from stream content. An Extractor must not be used from several goroutines at once.
type Extractor struct {
	cfg  config
	path string
}

// NewExtractor creates extractor for archive at path.
func NewExtractor(path string, opts ...Option) *Extractor {
	return &Extractor{path: path, cfg: newConfig(opts)}
}

// Path returns archive path.
func (x *Extractor) Path() string {
	return x.path
}

// ListEntries returns raw header sequence in stored order without reading
// entry bodies. Directory entries may be incomplete; see CompleteEntries.
func (x *Extractor) ListEntries(ctx context.Context) ([]Entry, error) {
	s, err := openArchive(x.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	var out []Entry
	for {
		if err := checkContext(ctx, x.path); err != nil {
			return nil, err
		}

		e, err := s.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, corruptError("read header", x.path, err)
		}

		out = append(out, *e)
	}
}

// ListTree returns directory-complete listing.
func (x *Extractor) ListTree(ctx context.Context) (*EntryMap, error) {
	entries, err := x.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	return CompleteEntries(entries), nil
}

// Detect returns container format and compression filter of the archive.
func (x *Extractor) Detect() (Format, Compression, error) {
	s, err := openArchive(x.path)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = s.Close() }()

	return s.format, s.filter, nil
}

// countFiles counts regular-file entries passing keep in a throwaway session.
func (x *Extractor) countFiles(ctx context.Context, keep func(*Entry) bool) (int, error) {
	s, err := openArchive(x.path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = s.Close() }()

	total := 0
	for {
		if err := checkContext(ctx, x.path); err != nil {
			return 0, err
		}

		e, err := s.Next()
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return 0, corruptError("count entries", x.path, err)
		}

		if e.IsRegular() && (keep == nil || keep(e)) {
			total++
		}
	}
}

// Extract writes archive content below outputDir. Parent directories are
// created best-effort; progress fires after each regular file header and
// before its data. Entries resolving outside outputDir fail with
// ErrPathOutsideRoot. Symlinks and special entries are skipped. On error or
// cancellation already written files stay in place. Hard links are restored
// to targets inside outputDir.
func (x *Extractor) Extract(ctx context.Context, outputDir string, progress ProgressFunc, opts ExtractOptions) error {
	log := x.cfg.operationLogger("extract", x.path)

	exclude, err := x.cfg.excludeMatcher()
	if err != nil {
		return formatError("compile exclude rules", "", err)
	}
	keep := func(e *Entry) bool {
		return !exclude.Excluded(e.Path, e.IsDir())
	}

	total, err := x.countFiles(ctx, keep)
	if err != nil {
		return err
	}
	log.Debug("counted archive files", slog.Int("total", total), slog.String("output", outputDir))

	s, err := openArchive(x.path)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	run := &extractRun{
		src:      s,
		disk:     newDiskWriter(opts.diskOptions(), log),
		progress: newProgressCounter(ctx, progress, total),
		keep:     keep,
		log:      log,
		archive:  x.path,
		output:   outputDir,
		buf:      make([]byte, copyBufferSize),
	}
	if opts.SanitizeNames {
		run.names = newNameSanitizer()
	}

	err = run.extractAll()
	closeErr := run.disk.Close()
	if err != nil {
		if IsCancelled(err) {
			log.Info("extract cancelled", slog.Int("index", run.progress.index), slog.Int("total", total))
		}

		return err
	}
	if closeErr != nil {
		return ioError("finish extract", outputDir, closeErr)
	}

	log.Info("archive extracted", slog.Int("files", run.progress.index), slog.String("output", outputDir))
	return nil
}

// extractRun holds state of one Extract main pass.
type extractRun struct {
	src      *readSession
	disk     *diskWriter
	progress *progressCounter
	keep     func(*Entry) bool
	names    *nameSanitizer
	log      *slog.Logger
	archive  string
	output   string
	buf      []byte
}

// extractAll processes headers until end of archive.
func (r *extractRun) extractAll() error {
	for {
		if err := checkContext(r.progress.ctx, r.archive); err != nil {
			return err
		}

		e, err := r.src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return corruptError("read header", r.archive, err)
		}

		if err := r.extractEntry(e); err != nil {
			return err
		}
	}
}

// extractEntry materializes one entry.
func (r *extractRun) extractEntry(e *Entry) error {
	if !r.keep(e) {
		r.log.Debug("skip excluded entry", slog.String("entry", e.Path))
		return nil
	}
	if !e.IsRegular() && !e.IsDir() && e.Type != EntryHardlink {
		r.log.Debug("skip unsupported entry", slog.String("entry", e.Path), slog.String("type", e.Type.String()))
		return nil
	}

	name := e.Path
	if r.names != nil {
		name = r.names.apply(name)
	}

	dest, err := resolveDestination(r.output, name)
	if err != nil {
		return err
	}
	if dest == "" {
		return nil
	}

	// failure surfaces on header write
	_ = os.MkdirAll(filepath.Dir(dest), 0o755)

	if e.Type == EntryHardlink {
		return r.extractHardlink(e, dest)
	}

	if err := r.disk.WriteHeader(dest, e); err != nil {
		return ioError("write header", dest, err)
	}

	if e.IsRegular() {
		if err := r.progress.step(dest); err != nil {
			return err
		}

		_, readErr, writeErr := copyEntryData(r.disk, r.src, r.buf)
		if readErr != nil {
			return corruptError("read data", e.Path, readErr)
		}
		if writeErr != nil {
			return ioError("write data", dest, writeErr)
		}
	}

	if err := r.disk.FinishEntry(); err != nil {
		return ioError("finish entry", dest, err)
	}

	return nil
}

// extractHardlink links dest to the extracted target named by e.Linkname.
func (r *extractRun) extractHardlink(e *Entry, dest string) error {
	target := e.Linkname
	if !r.keep(&Entry{Path: target, Type: EntryFile}) {
		r.log.Debug("skip hard link to excluded entry", slog.String("entry", e.Path), slog.String("target", target))
		return nil
	}
	if r.names != nil {
		target = r.names.apply(target)
	}

	targetDest, err := resolveDestination(r.output, target)
	if err != nil {
		return err
	}
	if targetDest == "" || targetDest == dest {
		r.log.Debug("skip hard link without target", slog.String("entry", e.Path), slog.String("target", e.Linkname))
		return nil
	}

	if err := r.disk.WriteLink(dest, targetDest); err != nil {
		return ioError("link", dest, err)
	}

	return nil
}

// Test reads every regular file payload and discards it. Read failure stops
// the scan; Tested then holds number of fully read files.
func (x *Extractor) Test(ctx context.Context, progress ProgressFunc) TestResult {
	log := x.cfg.operationLogger("test", x.path)

	var res TestResult
	total, err := x.countFiles(ctx, nil)
	if err != nil {
		return res.fail(err)
	}
	res.Total = total

	s, err := openArchive(x.path)
	if err != nil {
		return res.fail(err)
	}
	defer func() { _ = s.Close() }()

	pc := newProgressCounter(ctx, progress, total)
	buf := make([]byte, copyBufferSize)
	for {
		if err := checkContext(ctx, x.path); err != nil {
			return res.fail(err)
		}

		e, err := s.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res.fail(corruptError("read header", x.path, err))
		}
		if !e.IsRegular() {
			continue
		}

		if err := pc.step(e.Path); err != nil {
			return res.fail(err)
		}
		if _, readErr, _ := copyEntryData(io.Discard, s, buf); readErr != nil {
			return res.fail(corruptError("read data", e.Path, readErr))
		}

		res.Tested++
	}

	res.Success = true
	log.Info("archive tested", slog.Int("files", res.Tested))
	return res
}

// fail records err as final test outcome.
func (r TestResult) fail(err error) TestResult {
	r.Success = false
	r.Err = err
	if IsCancelled(err) {
		r.Message = CancelledMessage
	} else {
		r.Message = err.Error()
	}

	return r
}

// readEntryPrealloc caps buffer pre-size taken from entry header.
const readEntryPrealloc = 1 << 20

// ReadEntry returns content of regular file entry name, scanning from the start.
func (x *Extractor) ReadEntry(ctx context.Context, name string) ([]byte, error) {
	want := NormalizePath(name)
	s, err := openArchive(x.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	for {
		if err := checkContext(ctx, want); err != nil {
			return nil, err
		}

		e, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil, ioError("read entry", want, fs.ErrNotExist)
		}
		if err != nil {
			return nil, corruptError("read header", x.path, err)
		}
		if !e.IsRegular() || NormalizePath(e.Path) != want {
			continue
		}

		// declared size is untrusted; buffer grows with actual data
		var out bytes.Buffer
		out.Grow(int(min(max(e.Size, 0), readEntryPrealloc)))
		if _, readErr, _ := copyEntryData(&out, s, make([]byte, copyBufferSize)); readErr != nil {
			return nil, corruptError("read data", e.Path, readErr)
		}

		return out.Bytes(), nil
	}
}
