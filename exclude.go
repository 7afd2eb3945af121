// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"fmt"

	"github.com/woozymasta/pathrules"
)

// excludeMatcher holds compiled exclude rules.
type excludeMatcher struct {
	matcher *pathrules.Matcher
}

// newExcludeMatcher compiles exclude rules. Nil matcher means nothing is excluded.
func newExcludeMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*excludeMatcher, error) {
	rules = normalizeExcludeRules(rules)
	if len(rules) == 0 {
		return nil, nil
	}

	if opts.DefaultAction == pathrules.ActionUnknown {
		opts.DefaultAction = pathrules.ActionInclude
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidExcludeRules, err)
	}

	return &excludeMatcher{matcher: matcher}, nil
}

// normalizeExcludeRules normalizes rule patterns and drops empty patterns.
func normalizeExcludeRules(rules []pathrules.Rule) []pathrules.Rule {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := NormalizePath(rule.Pattern)
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	return normalized
}

// Excluded reports whether archive-relative path is left out.
func (m *excludeMatcher) Excluded(entryPath string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}

	candidate := NormalizePath(entryPath)
	if candidate == "" {
		return false
	}

	return !m.matcher.Included(candidate, isDir)
}
