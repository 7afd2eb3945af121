// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"iter"
	"slices"
)

// virtualDirMode is mode of synthesized directories.
const virtualDirMode = 0o755

// EntryMap is a path-keyed, directory-complete archive listing iterated in
// lexicographic path order.
type EntryMap struct {
	entries map[string]Entry
	keys    []string
}

// CompleteEntries normalizes raw entry paths and adds missing ancestor
// directories of regular files. Explicit entries take precedence over
// synthesized ones; later duplicates of one path replace earlier ones.
// Synthesized directories copy the descendant file's ModTime.
func CompleteEntries(raw []Entry) *EntryMap {
	m := &EntryMap{entries: make(map[string]Entry, len(raw))}

	for _, e := range raw {
		key := NormalizePath(e.Path)
		if key == "" || key == "/" {
			continue
		}

		e.Path = key
		m.entries[key] = e
	}

	for _, e := range raw {
		if e.Type != EntryFile {
			continue
		}

		for dir := parentPath(NormalizePath(e.Path)); dir != ""; dir = parentPath(dir) {
			if _, ok := m.entries[dir]; ok {
				continue
			}

			m.entries[dir] = Entry{
				Path:    dir,
				Type:    EntryDir,
				Mode:    virtualDirMode,
				ModTime: e.ModTime,
				Virtual: true,
			}
		}
	}

	m.keys = make([]string, 0, len(m.entries))
	for key := range m.entries {
		m.keys = append(m.keys, key)
	}
	slices.Sort(m.keys)

	return m
}

// Len returns number of entries.
func (m *EntryMap) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Get returns entry by path in any accepted path notation.
func (m *EntryMap) Get(entryPath string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}

	e, ok := m.entries[NormalizePath(entryPath)]
	return e, ok
}

// Paths returns sorted entry paths.
func (m *EntryMap) Paths() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// Entries returns entries in path order.
func (m *EntryMap) Entries() []Entry {
	if m == nil {
		return nil
	}

	out := make([]Entry, 0, len(m.keys))
	for _, key := range m.keys {
		out = append(out, m.entries[key])
	}

	return out
}

// All iterates entries in path order.
func (m *EntryMap) All() iter.Seq2[string, Entry] {
	return func(yield func(string, Entry) bool) {
		if m == nil {
			return
		}

		for _, key := range m.keys {
			if !yield(key, m.entries[key]) {
				return
			}
		}
	}
}

// Children returns direct children of dir in path order. Empty dir lists top level.
func (m *EntryMap) Children(dir string) []Entry {
	if m == nil {
		return nil
	}

	dir = NormalizePath(dir)
	if dir == "/" {
		dir = ""
	}

	var out []Entry
	for _, key := range m.keys {
		if parentPath(key) == dir {
			out = append(out, m.entries[key])
		}
	}

	return out
}
