// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
)

// Builder creates one archive from filesystem inputs.
// A Builder must not be used from several goroutines at once.
type Builder struct {
	cfg  config
	spec BuildSpec
}

// NewBuilder creates builder for spec. Spec is copied.
func NewBuilder(spec BuildSpec, opts ...Option) *Builder {
	spec.Inputs = slices.Clone(spec.Inputs)

	return &Builder{spec: spec, cfg: newConfig(opts)}
}

// Spec returns copy of build spec.
func (b *Builder) Spec() BuildSpec {
	spec := b.spec
	spec.Inputs = slices.Clone(spec.Inputs)

	return spec
}

// FilterConfig returns resolved output pipeline with clamped level.
func (b *Builder) FilterConfig() FilterConfig {
	return NewFilterConfig(b.spec.Format, b.spec.Compression, b.spec.Level)
}

// Create counts regular files under inputs, then writes the archive.
// Directories are stored with trailing "/" and walked in filesystem order;
// progress fires before each regular file header. On error or cancellation
// the output is left incomplete and is not removed.
func (b *Builder) Create(ctx context.Context, progress ProgressFunc) error {
	log := b.cfg.operationLogger("create", b.spec.Output)
	filter := b.FilterConfig()

	exclude, err := b.cfg.excludeMatcher()
	if err != nil {
		return formatError("compile exclude rules", "", err)
	}

	w := &buildWalker{
		baseDir: b.spec.BaseDir,
		output:  absPath(b.spec.Output),
		exclude: exclude,
		log:     log,
		xattrs:  filter.Format == FormatTar,
	}

	total := w.countInputs(b.spec.Inputs)
	log.Debug("counted input files",
		slog.Int("total", total),
		slog.String("format", filter.Format.String()),
		slog.String("filter", filter.Compression.String()),
		slog.String("options", filter.Options()),
	)

	if err := checkContext(ctx, b.spec.Output); err != nil {
		return err
	}

	out, err := createArchive(b.spec.Output, filter)
	if err != nil {
		return err
	}

	w.out = out
	w.progress = newProgressCounter(ctx, progress, total)
	w.buf = make([]byte, copyBufferSize)

	for _, in := range b.spec.Inputs {
		if err := w.add(in, true); err != nil {
			out.Abort()
			if IsCancelled(err) {
				log.Info("create cancelled", slog.Int("index", w.progress.index), slog.Int("total", total))
			}

			return err
		}
	}

	if err := out.Close(); err != nil {
		return ioError("finish archive", b.spec.Output, err)
	}

	log.Info("archive created", slog.Int("files", w.progress.index), slog.Int("total", total))
	return nil
}

// buildWalker holds state of one Create walk.
type buildWalker struct {
	out      *writeSession
	progress *progressCounter
	exclude  *excludeMatcher
	log      *slog.Logger
	baseDir  string
	output   string
	buf      []byte
	xattrs   bool
}

// countInputs counts regular files with the same skip rules as add.
func (w *buildWalker) countInputs(inputs []string) int {
	c := fileCounter{skip: w.skip}
	for _, in := range inputs {
		c.count(in, true)
	}

	return c.total
}

// skip reports whether fsPath stays out of the archive: base dir itself,
// unresolvable names, the output archive, and excluded names.
func (w *buildWalker) skip(fsPath string, info fs.FileInfo) bool {
	name, err := relativeEntryName(w.baseDir, fsPath)
	if err != nil || name == "" {
		return true
	}
	if w.isOutput(fsPath) {
		return true
	}

	return w.exclude.Excluded(name, info.IsDir())
}

// add writes one path and, for directories, its subtree.
func (w *buildWalker) add(fsPath string, top bool) error {
	info, err := statEntry(fsPath, top)
	if err != nil {
		return ioError("stat", fsPath, err)
	}

	name, err := relativeEntryName(w.baseDir, fsPath)
	if err != nil {
		return ioError("resolve entry name", fsPath, err)
	}
	if name == "" {
		w.log.Debug("skip base directory input", slog.String("path", fsPath))
		return nil
	}
	if w.isOutput(fsPath) {
		w.log.Debug("skip output archive", slog.String("path", fsPath))
		return nil
	}
	if w.exclude.Excluded(name, info.IsDir()) {
		w.log.Debug("skip excluded path", slog.String("path", fsPath))
		return nil
	}

	switch {
	case info.IsDir():
		return w.addDir(fsPath, name, info)
	case info.Mode().IsRegular():
		return w.addFile(fsPath, name, info)
	default:
		w.log.Debug("skip unsupported entry", slog.String("path", fsPath), slog.String("mode", info.Mode().String()))
		return nil
	}
}

// addDir writes directory header then recurses into children.
func (w *buildWalker) addDir(fsPath, name string, info fs.FileInfo) error {
	if err := checkContext(w.progress.ctx, fsPath); err != nil {
		return err
	}

	names, err := readDirNames(fsPath)
	if err != nil {
		return ioError("read directory", fsPath, err)
	}

	entry := &Entry{
		Path:    name + "/",
		Type:    EntryDir,
		Mode:    info.Mode().Perm(),
		ModTime: info.ModTime(),
		Xattrs:  w.entryXattrs(fsPath),
	}
	if err := w.out.WriteHeader(entry); err != nil {
		return ioError("write header", fsPath, err)
	}

	for _, child := range names {
		if err := w.add(filepath.Join(fsPath, child), false); err != nil {
			return err
		}
	}

	return nil
}

// addFile reports progress, writes header with current size, then copies data.
func (w *buildWalker) addFile(fsPath, name string, info fs.FileInfo) error {
	if err := w.progress.step(name); err != nil {
		return err
	}

	f, err := os.Open(fsPath)
	if err != nil {
		return ioError("open", fsPath, err)
	}
	defer func() { _ = f.Close() }()

	entry := &Entry{
		Path:    name,
		Type:    EntryFile,
		Size:    info.Size(),
		Mode:    info.Mode().Perm(),
		ModTime: info.ModTime(),
		Xattrs:  w.entryXattrs(fsPath),
	}
	if err := w.out.WriteHeader(entry); err != nil {
		return ioError("write header", fsPath, err)
	}

	if _, readErr, writeErr := copyEntryData(w.out, f, w.buf); readErr != nil {
		return ioError("read", fsPath, readErr)
	} else if writeErr != nil {
		return ioError("write data", fsPath, writeErr)
	}

	return nil
}

// entryXattrs reads extended attributes for containers that store them.
// Read failures drop attributes of that path only.
func (w *buildWalker) entryXattrs(fsPath string) map[string]string {
	if !w.xattrs {
		return nil
	}

	xattrs, err := readXattrs(fsPath)
	if err != nil {
		w.log.Debug("read xattrs failed", slog.String("path", fsPath), slog.Any("error", err))
		return nil
	}

	return xattrs
}

// isOutput reports whether fsPath is the archive being written.
func (w *buildWalker) isOutput(fsPath string) bool {
	return w.output != "" && absPath(fsPath) == w.output
}

// absPath returns cleaned absolute path or "" when it cannot be resolved.
func absPath(p string) string {
	if p == "" {
		return ""
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return ""
	}

	return abs
}
