// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

/*
Package arc builds, lists, extracts, and verifies tar, cpio, and zip
archives. Tar and cpio streams can be wrapped with gzip, bzip2, xz, lz4,
or zstd; zip entries are stored or deflated. On read, container format and
compression filter are detected from stream content.

All operations are synchronous and stream entry payloads in fixed 8 KiB
chunks. Every regular file is reported to an optional ProgressFunc whose
total comes from a counting pass run before the main pass.

Level handling (summary):
  - gzip and bzip2 accept 1..9, xz 0..9, zstd 1..19;
  - lz4 and none have no level;
  - zip uses store for level 0 or compression none, deflate otherwise;
  - out-of-range levels are clamped, never rejected.

# Creating

	b := arc.NewBuilder(arc.BuildSpec{
	    Output:      "backup.tar.zst",
	    BaseDir:     "/srv",
	    Inputs:      []string{"/srv/data", "/srv/config.yaml"},
	    Format:      arc.FormatTar,
	    Compression: arc.CompressionZstd,
	    Level:       30, // clamped to 19
	})
	err := b.Create(ctx, func(p arc.Progress) error {
	    fmt.Printf("%d/%d %s\n", p.Index, p.Total, p.Path)
	    return nil
	})

Directories are written with a trailing "/" and walked in the order the
filesystem reports. Symlinks below an input are skipped. Skip paths with
github.com/woozymasta/pathrules rules:

	b := arc.NewBuilder(spec, arc.WithExclude([]pathrules.Rule{
	    {Action: pathrules.ActionExclude, Pattern: "*.log"},
	    {Action: pathrules.ActionExclude, Pattern: ".git/"},
	}, pathrules.MatcherOptions{}))

# Listing

ListEntries returns raw headers in stored order. CompleteEntries turns them
into a connected tree, adding directories implied by file paths:

	x := arc.NewExtractor("backup.tar.zst")
	tree, err := x.ListTree(ctx)
	if err != nil {
	    return err
	}
	for p, e := range tree.All() {
	    fmt.Println(p, e.IsDir(), e.Virtual)
	}

# Extracting

	err := x.Extract(ctx, "out", nil, arc.ExtractOptions{Overwrite: false})

Destinations must stay below the output directory; entries that escape it
fail with ErrPathOutsideRoot. With Overwrite disabled an existing file
aborts extraction with ErrEntryExists.

# Cancellation

Return any error from ProgressFunc, or cancel ctx, to stop an operation.
The returned error matches ErrCancelled:

	err := b.Create(ctx, func(p arc.Progress) error {
	    if p.Index > 100 {
	        return arc.ErrStop
	    }
	    return nil
	})
	if arc.IsCancelled(err) {
	    // output archive is incomplete
	}

Session wraps the same operations with boolean results and keeps the
text of the last failure for host bindings.
*/
package arc
