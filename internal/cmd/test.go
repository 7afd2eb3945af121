// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/woozymasta/arc"
)

// NewTestCmd creates the test subcommand.
func NewTestCmd(global *globalFlags) *cobra.Command {
	var progress bool

	cmd := &cobra.Command{
		Use:   "test ARCHIVE",
		Short: "Verify that every file in archive can be read",
		Long: `Read every file of ARCHIVE and discard the data.

The scan stops at the first read error; the number of files read before it
is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := global.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			res := arc.NewExtractor(args[0], arc.WithLogger(log)).
				Test(cmd.Context(), progressPrinter(cmd.OutOrStdout(), progress))

			fmt.Fprintf(cmd.OutOrStdout(), "tested %d of %d files\n", res.Tested, res.Total)
			if !res.Success {
				return errors.New(res.Message)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&progress, "progress", "p", false, "Print progress for each file")

	return cmd
}
