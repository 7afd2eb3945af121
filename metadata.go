// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import "context"

// Create builds archive described by spec.
func Create(ctx context.Context, spec BuildSpec, progress ProgressFunc, opts ...Option) error {
	return NewBuilder(spec, opts...).Create(ctx, progress)
}

// Extract writes archive content below outputDir.
func Extract(ctx context.Context, archivePath, outputDir string, progress ProgressFunc, extractOpts ExtractOptions, opts ...Option) error {
	return NewExtractor(archivePath, opts...).Extract(ctx, outputDir, progress, extractOpts)
}

// ListEntries opens an archive and returns raw entry headers without payload reads.
func ListEntries(ctx context.Context, archivePath string, opts ...Option) ([]Entry, error) {
	return NewExtractor(archivePath, opts...).ListEntries(ctx)
}

// ListTree opens an archive and returns directory-complete listing.
func ListTree(ctx context.Context, archivePath string, opts ...Option) (*EntryMap, error) {
	return NewExtractor(archivePath, opts...).ListTree(ctx)
}

// ReadEntry returns content of one regular file entry.
func ReadEntry(ctx context.Context, archivePath, name string, opts ...Option) ([]byte, error) {
	return NewExtractor(archivePath, opts...).ReadEntry(ctx, name)
}

// Test verifies every regular file payload of an archive.
func Test(ctx context.Context, archivePath string, progress ProgressFunc, opts ...Option) TestResult {
	return NewExtractor(archivePath, opts...).Test(ctx, progress)
}
