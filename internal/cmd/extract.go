// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/woozymasta/arc"
)

// NewExtractCmd creates the extract subcommand.
func NewExtractCmd(global *globalFlags) *cobra.Command {
	var (
		overwrite       bool
		sanitize        bool
		progress        bool
		caseInsensitive bool
		exclude         []string
	)

	cmd := &cobra.Command{
		Use:   "extract ARCHIVE [OUTPUT_DIR]",
		Short: "Extract archive into a directory",
		Long: `Extract ARCHIVE into OUTPUT_DIR (default: current directory).

Existing files are kept and extraction fails unless --overwrite is set.
Entries that would land outside OUTPUT_DIR are rejected.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir := "."
			if len(args) > 1 {
				outputDir = args[1]
			}

			log, err := global.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			x := arc.NewExtractor(args[0], arc.WithLogger(log), excludeOption(exclude, caseInsensitive))
			err = x.Extract(cmd.Context(), outputDir, progressPrinter(cmd.OutOrStdout(), progress), arc.ExtractOptions{
				Overwrite:     overwrite,
				SanitizeNames: sanitize,
			})
			if arc.IsCancelled(err) {
				return fmt.Errorf("%s: %s is partially populated", arc.CancelledMessage, outputDir)
			}

			return err
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false, "Replace existing files")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Rewrite entry names to filesystem-safe form")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "Exclude pattern (repeatable)")
	cmd.Flags().BoolVar(&caseInsensitive, "exclude-ignore-case", false, "Match exclude patterns case-insensitively")
	cmd.Flags().BoolVarP(&progress, "progress", "p", false, "Print progress for each file")

	return cmd
}
