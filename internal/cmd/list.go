// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/woozymasta/arc"
)

// NewListCmd creates the list subcommand.
func NewListCmd(global *globalFlags) *cobra.Command {
	var (
		raw    bool
		asJSON bool
		dir    string
	)

	cmd := &cobra.Command{
		Use:     "list ARCHIVE",
		Aliases: []string{"ls"},
		Short:   "List archive entries",
		Long: `List entries of ARCHIVE in path order.

Directories implied by file paths are added to the listing unless --raw is
set; --raw prints headers exactly as stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := global.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			x := arc.NewExtractor(args[0], arc.WithLogger(log))

			var entries []arc.Entry
			switch {
			case raw:
				entries, err = x.ListEntries(cmd.Context())
			default:
				var tree *arc.EntryMap
				tree, err = x.ListTree(cmd.Context())
				if err == nil {
					if cmd.Flags().Changed("dir") {
						entries = tree.Children(dir)
					} else {
						entries = tree.Entries()
					}
				}
			}
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			return printEntries(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw headers without directory completion")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "List only direct children of directory")

	return cmd
}

// printEntries writes aligned listing table.
func printEntries(w io.Writer, entries []arc.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i := range entries {
		e := &entries[i]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			e.FileMode(),
			e.Size,
			e.ModTime.Local().Format(time.DateTime),
			e.Path,
		)
	}

	return tw.Flush()
}
