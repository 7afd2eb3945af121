// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ListedEntry is one flattened listing row for host callers.
type ListedEntry struct {
	// ModTime is entry modification time.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
	// Path is normalized archive path.
	Path string `json:"path" yaml:"path"`
	// Name is last path segment.
	Name string `json:"name" yaml:"name"`
	// Size is payload size; zero for directories.
	Size int64 `json:"size" yaml:"size"`
	// CompressedSize is stored size when known.
	CompressedSize int64 `json:"compressed_size,omitempty" yaml:"compressed_size,omitempty"`
	// IsDir reports directory rows, explicit or synthesized.
	IsDir bool `json:"is_dir" yaml:"is_dir"`
}

// Session is boolean-result facade for host bindings. Each call returns
// its own outcome; LastError keeps text of the most recent failure of
// this session only. Session is safe for concurrent use.
type Session struct {
	opts    []Option
	cfg     config
	mu      sync.Mutex
	lastErr string
}

// NewSession creates session; opts are passed to every Builder and Extractor.
func NewSession(opts ...Option) *Session {
	return &Session{opts: opts, cfg: newConfig(opts)}
}

// LastError returns text of the most recent failure, CancelledMessage after
// cancellation, or "" when no call failed yet.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

// CreateArchive builds spec. Negative level means default (0).
func (s *Session) CreateArchive(ctx context.Context, spec BuildSpec, progress ProgressFunc) bool {
	if spec.Level < 0 {
		spec.Level = 0
	}

	err := NewBuilder(spec, s.opts...).Create(ctx, progress)
	return s.record("create archive", spec.Output, err)
}

// ExtractArchive extracts archivePath below outputDir.
func (s *Session) ExtractArchive(ctx context.Context, archivePath, outputDir string, overwrite bool, progress ProgressFunc) bool {
	err := NewExtractor(archivePath, s.opts...).Extract(ctx, outputDir, progress, ExtractOptions{Overwrite: overwrite})
	return s.record("extract archive", archivePath, err)
}

// ListArchive returns directory-complete listing in path order; nil and
// false on failure.
func (s *Session) ListArchive(ctx context.Context, archivePath string) ([]ListedEntry, bool) {
	tree, err := NewExtractor(archivePath, s.opts...).ListTree(ctx)
	if !s.record("list archive", archivePath, err) {
		return nil, false
	}

	out := make([]ListedEntry, 0, tree.Len())
	for key, e := range tree.All() {
		out = append(out, ListedEntry{
			Path:           key,
			Name:           EntryName(key),
			IsDir:          e.IsDir(),
			Size:           e.Size,
			CompressedSize: e.CompressedSize,
			ModTime:        e.ModTime,
		})
	}

	return out, true
}

// TestArchive verifies archivePath and records failure text.
func (s *Session) TestArchive(ctx context.Context, archivePath string, progress ProgressFunc) TestResult {
	res := NewExtractor(archivePath, s.opts...).Test(ctx, progress)
	s.record("test archive", archivePath, res.Err)

	return res
}

// record stores outcome of one call and reports success.
func (s *Session) record(op, archive string, err error) bool {
	if err == nil {
		return true
	}

	msg := err.Error()
	if IsCancelled(err) {
		msg = CancelledMessage
		s.cfg.log().Info(op+" cancelled", slog.String("archive", archive))
	} else {
		s.cfg.log().Error(op+" failed", slog.String("archive", archive), slog.Any("error", err))
	}

	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()

	return false
}
