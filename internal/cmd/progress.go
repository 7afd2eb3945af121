// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package cmd

import (
	"fmt"
	"io"

	"github.com/woozymasta/arc"
	"github.com/woozymasta/pathrules"
)

// progressPrinter returns progress callback printing one line per file, or
// nil when disabled.
func progressPrinter(w io.Writer, enabled bool) arc.ProgressFunc {
	if !enabled {
		return nil
	}

	return func(p arc.Progress) error {
		_, err := fmt.Fprintf(w, "[%d/%d] %s\n", p.Index, p.Total, p.Path)
		return err
	}
}

// excludeOption converts --exclude patterns to builder/extractor option.
func excludeOption(patterns []string, caseInsensitive bool) arc.Option {
	if len(patterns) == 0 {
		return nil
	}

	rules := make([]pathrules.Rule, 0, len(patterns))
	for _, pattern := range patterns {
		rules = append(rules, pathrules.Rule{
			Action:  pathrules.ActionExclude,
			Pattern: pattern,
		})
	}

	return arc.WithExclude(rules, pathrules.MatcherOptions{
		CaseInsensitive: caseInsensitive,
		DefaultAction:   pathrules.ActionInclude,
	})
}
