// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// NormalizePath converts an archive path to normalized slash-separated form.
// It accepts both "/" and "\", removes leading "./" and "." segments, and drops
// the trailing slash except for root. Leading "/" of absolute names is kept.
func NormalizePath(raw string) string {
	raw = strings.ReplaceAll(raw, `\`, `/`)
	for strings.HasPrefix(raw, "./") {
		raw = raw[2:]
	}
	if raw == "" || raw == "." {
		return ""
	}

	return path.Clean(raw)
}

// EntryName returns last segment of archive path ("a/b/c.txt" -> "c.txt").
func EntryName(entryPath string) string {
	normalized := NormalizePath(entryPath)
	if normalized == "" || normalized == "/" {
		return normalized
	}

	return path.Base(normalized)
}

// parentPath returns parent of normalized path or "" when there is none.
// Absolute paths stop below root, so "/a" has no parent.
func parentPath(normalized string) string {
	idx := strings.LastIndexByte(normalized, '/')
	if idx <= 0 {
		return ""
	}

	return normalized[:idx]
}

// relativeEntryName returns slash-separated name of fsPath relative to baseDir.
// Empty string means fsPath is baseDir itself.
func relativeEntryName(baseDir, fsPath string) (string, error) {
	rel, err := filepath.Rel(baseDir, fsPath)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "", nil
	}

	return filepath.ToSlash(rel), nil
}

// resolveDestination joins outputDir with archive entry name and rejects
// results that are not descendants of outputDir. Empty result means the
// entry resolves to outputDir itself.
func resolveDestination(outputDir, name string) (string, error) {
	name = NormalizePath(name)
	if name == "" || name == "/" {
		return "", nil
	}

	root := filepath.Clean(outputDir)
	dest := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, dest)
	if err != nil {
		return "", newOpError(ErrPathOutsideRoot, "resolve destination", name, err)
	}
	if rel == "." {
		return "", nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", newOpError(ErrPathOutsideRoot, "resolve destination", name, nil)
	}

	return dest, nil
}

// CountFiles returns number of regular files under inputs, recursing into
// directories. Missing paths are skipped. Symlinks below an input are not
// followed.
func CountFiles(inputs ...string) int {
	c := fileCounter{}
	for _, in := range inputs {
		c.count(in, true)
	}

	return c.total
}

// fileCounter counts regular files with the same walk rules as Builder.
type fileCounter struct {
	// skip reports whether path must be left out; nil keeps everything.
	skip func(fsPath string, info fs.FileInfo) bool
	// total is accumulated regular file count.
	total int
}

// count walks one path. Unreadable directories are ignored here and
// reported by the write pass.
func (c *fileCounter) count(fsPath string, top bool) {
	info, err := statEntry(fsPath, top)
	if err != nil {
		return
	}
	if c.skip != nil && c.skip(fsPath, info) {
		return
	}

	switch {
	case info.IsDir():
		names, err := readDirNames(fsPath)
		if err != nil {
			return
		}
		for _, name := range names {
			c.count(filepath.Join(fsPath, name), false)
		}
	case info.Mode().IsRegular():
		c.total++
	}
}

// statEntry stats top-level inputs following symlinks and nested paths without.
func statEntry(fsPath string, top bool) (fs.FileInfo, error) {
	if top {
		return os.Stat(fsPath)
	}

	return os.Lstat(fsPath)
}

// readDirNames returns directory child names in the order reported by the filesystem.
func readDirNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return f.Readdirnames(-1)
}
