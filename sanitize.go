// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"fmt"
	"hash/fnv"
	"path"
	"strconv"
	"strings"
	"unicode"
)

// maxSanitizedSegmentLen limits one path segment to common filesystem-safe length.
const maxSanitizedSegmentLen = 240

// reservedDeviceNames are case-insensitive DOS/Windows device names.
var reservedDeviceNames = func() map[string]struct{} {
	names := map[string]struct{}{
		"aux": {}, "con": {}, "nul": {}, "prn": {}, "clock$": {},
	}
	for i := 1; i <= 9; i++ {
		names["com"+strconv.Itoa(i)] = struct{}{}
		names["lpt"+strconv.Itoa(i)] = struct{}{}
	}

	return names
}()

// SanitizePath rewrites one archive path to deterministic filesystem-safe
// slash-separated relative form. Traversal and root segments are dropped.
func SanitizePath(entryPath string) string {
	normalized := NormalizePath(entryPath)
	parts := strings.Split(normalized, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			continue
		}

		out = append(out, sanitizeSegment(part))
	}

	return strings.Join(out, "/")
}

// sanitizeSegment sanitizes one path segment for broad filesystem compatibility.
func sanitizeSegment(segment string) string {
	var b strings.Builder
	b.Grow(len(segment))
	for _, r := range segment {
		if unicode.IsControl(r) || unicode.In(r, unicode.Cf) || r == '\uFFFD' ||
			strings.ContainsRune(`<>:"/\|?*`, r) {
			b.WriteRune('_')
			continue
		}

		b.WriteRune(r)
	}

	sanitized := strings.TrimRight(b.String(), ". ")
	if sanitized == "" {
		return "_"
	}
	if isReservedDeviceName(sanitized) {
		sanitized = "_" + sanitized
	}
	if len(sanitized) > maxSanitizedSegmentLen {
		sanitized = shortenSegment(sanitized, maxSanitizedSegmentLen)
	}

	return sanitized
}

// isReservedDeviceName reports whether name base (before first dot) is a reserved device name.
func isReservedDeviceName(name string) bool {
	base := strings.ToLower(name)
	if dot := strings.IndexByte(base, '.'); dot >= 0 {
		base = base[:dot]
	}

	_, ok := reservedDeviceNames[strings.TrimRight(base, " ")]
	return ok
}

// shortenSegment shortens value keeping a stable hash suffix.
func shortenSegment(value string, maxLen int) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(value))
	suffix := fmt.Sprintf("~%08x", h.Sum32())

	return value[:max(maxLen-len(suffix), 1)] + suffix
}

// nameSanitizer sanitizes a stream of entry paths and keeps results unique.
type nameSanitizer struct {
	used map[string]string
}

// newNameSanitizer creates an empty sanitizer.
func newNameSanitizer() *nameSanitizer {
	return &nameSanitizer{used: make(map[string]string)}
}

// apply sanitizes entryPath. Distinct sources mapping to one name get "~N" suffixes;
// repeated source paths map to the same result.
func (s *nameSanitizer) apply(entryPath string) string {
	source := NormalizePath(entryPath)
	candidate := SanitizePath(source)
	if candidate == "" {
		return ""
	}

	key := strings.ToLower(candidate)
	owner, taken := s.used[key]
	if !taken || owner == source {
		s.used[key] = source
		return candidate
	}

	dir, name := path.Split(candidate)
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 2; ; n++ {
		next := dir + base + "~" + strconv.Itoa(n) + ext
		nextKey := strings.ToLower(next)
		if prev, exists := s.used[nextKey]; exists && prev != source {
			continue
		}

		s.used[nextKey] = source
		return next
	}
}
