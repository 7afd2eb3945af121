// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/woozymasta/arc/version"
)

// Command group ids.
const (
	groupArchive = "archive"
	groupInspect = "inspect"
)

// globalFlags are persistent flags shared by all subcommands.
type globalFlags struct {
	logLevel  string
	logFormat string
}

// NewRootCmd creates the root arc command with all subcommands.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "arc",
		Short: "Create, extract, list and test tar, cpio and zip archives",
		Long: `arc packs files and directories into tar, cpio or zip archives and unpacks them.

Tar and cpio archives can be compressed with gzip, bzip2, xz, lz4 or zstd.
Format and compression of existing archives are detected from content.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupArchive,
		Title: "Archive Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupInspect,
		Title: "Inspection Commands",
	})

	createCmd := NewCreateCmd(flags)
	extractCmd := NewExtractCmd(flags)
	listCmd := NewListCmd(flags)
	testCmd := NewTestCmd(flags)
	catCmd := NewCatCmd(flags)

	createCmd.GroupID = groupArchive
	extractCmd.GroupID = groupArchive
	listCmd.GroupID = groupInspect
	testCmd.GroupID = groupInspect
	catCmd.GroupID = groupInspect

	rootCmd.AddCommand(createCmd, extractCmd, listCmd, testCmd, catCmd)

	return rootCmd
}

// logger builds slog logger writing to w according to global flags.
func (f *globalFlags) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", f.logLevel, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(f.logFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q: want text or json", f.logFormat)
	}
}
