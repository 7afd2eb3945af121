// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/woozymasta/arc"
)

// NewCatCmd creates the cat subcommand.
func NewCatCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cat ARCHIVE ENTRY",
		Short: "Print one file entry to stdout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := global.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			data, err := arc.ReadEntry(cmd.Context(), args[0], args[1], arc.WithLogger(log))
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
