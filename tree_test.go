// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"slices"
	"testing"
	"time"
)

func TestCompleteEntriesSynthesizesAncestors(t *testing.T) {
	t.Parallel()

	mtime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tree := CompleteEntries([]Entry{
		{Path: "a/b/c.txt", Type: EntryFile, Size: 3, Mode: 0o644, ModTime: mtime},
	})

	if got, want := tree.Paths(), []string{"a", "a/b", "a/b/c.txt"}; !slices.Equal(got, want) {
		t.Fatalf("Paths()=%v, want %v", got, want)
	}

	a, ok := tree.Get("a")
	if !ok {
		t.Fatal("synthesized directory a missing")
	}
	if !a.IsDir() || !a.Virtual || a.Size != 0 {
		t.Fatalf("a=%+v, want virtual empty directory", a)
	}
	if !a.ModTime.Equal(mtime) {
		t.Fatalf("a.ModTime=%v, want %v", a.ModTime, mtime)
	}

	file, ok := tree.Get("./a/b/c.txt")
	if !ok {
		t.Fatal("file lookup by ./ path failed")
	}
	if file.Virtual || file.Size != 3 {
		t.Fatalf("file=%+v, want explicit 3-byte file", file)
	}
}

func TestCompleteEntriesExplicitDirectoryWins(t *testing.T) {
	t.Parallel()

	dirTime := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	fileTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tree := CompleteEntries([]Entry{
		{Path: "docs/readme.md", Type: EntryFile, ModTime: fileTime},
		{Path: "docs/", Type: EntryDir, Mode: 0o700, ModTime: dirTime},
	})

	if tree.Len() != 2 {
		t.Fatalf("Len()=%d, want 2", tree.Len())
	}

	docs, ok := tree.Get("docs")
	if !ok {
		t.Fatal("docs missing")
	}
	if docs.Virtual || docs.Mode != 0o700 || docs.Path != "docs" {
		t.Fatalf("docs=%+v, want explicit entry with mode 0700", docs)
	}
	if !docs.ModTime.Equal(dirTime) {
		t.Fatalf("docs.ModTime=%v, want %v", docs.ModTime, dirTime)
	}
}

func TestCompleteEntriesIgnoresNonFileAncestors(t *testing.T) {
	t.Parallel()

	tree := CompleteEntries([]Entry{
		{Path: "x/y/", Type: EntryDir},
		{Path: "l/link", Type: EntrySymlink, Linkname: "../x"},
		{Path: "./", Type: EntryDir},
	})

	if got, want := tree.Paths(), []string{"l/link", "x/y"}; !slices.Equal(got, want) {
		t.Fatalf("Paths()=%v, want %v", got, want)
	}
}

func TestEntryMapChildrenAndIteration(t *testing.T) {
	t.Parallel()

	tree := CompleteEntries([]Entry{
		{Path: "b.txt", Type: EntryFile},
		{Path: "a/one.txt", Type: EntryFile},
		{Path: "a/sub/two.txt", Type: EntryFile},
	})

	testCases := []struct {
		dir  string
		want []string
	}{
		{dir: "", want: []string{"a", "b.txt"}},
		{dir: "/", want: []string{"a", "b.txt"}},
		{dir: "a/", want: []string{"a/one.txt", "a/sub"}},
		{dir: "a/sub", want: []string{"a/sub/two.txt"}},
		{dir: "missing", want: nil},
	}

	for _, tc := range testCases {
		var got []string
		for _, e := range tree.Children(tc.dir) {
			got = append(got, e.Path)
		}
		if !slices.Equal(got, tc.want) {
			t.Fatalf("Children(%q)=%v, want %v", tc.dir, got, tc.want)
		}
	}

	var seen []string
	for p := range tree.All() {
		seen = append(seen, p)
		if len(seen) == 3 {
			break
		}
	}
	if want := []string{"a", "a/one.txt", "a/sub"}; !slices.Equal(seen, want) {
		t.Fatalf("All() prefix=%v, want %v", seen, want)
	}

	entries := tree.Entries()
	if len(entries) != 5 || entries[4].Path != "b.txt" {
		t.Fatalf("Entries()=%v, want 5 entries ending with b.txt", entries)
	}
}

func TestEntryMapNil(t *testing.T) {
	t.Parallel()

	var tree *EntryMap
	if tree.Len() != 0 || tree.Paths() != nil {
		t.Fatalf("nil map Len=%d Paths=%v", tree.Len(), tree.Paths())
	}
	if _, ok := tree.Get("a"); ok {
		t.Fatal("nil map Get must miss")
	}
	for range tree.All() {
		t.Fatal("nil map must not yield")
	}
}
