// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/woozymasta/arc"
)

// createFlags holds create command flags.
type createFlags struct {
	format          string
	compression     string
	baseDir         string
	exclude         []string
	level           int
	progress        bool
	caseInsensitive bool
}

// NewCreateCmd creates the create subcommand.
func NewCreateCmd(global *globalFlags) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create OUTPUT INPUT...",
		Short: "Create archive from files and directories",
		Long: `Create an archive at OUTPUT from INPUT files and directories.

Entry names are relative to --base-dir. Directories are added recursively.
Out-of-range compression levels are clamped to the valid range of the filter.`,
		Example: `  arc create backup.tar.zst -c zstd -l 19 data config.yaml
  arc create site.zip -f zip -l 0 public
  arc create initrd.cpio.gz -f cpio -c gzip -C rootfs rootfs`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, global, flags, args[0], args[1:])
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Container format: tar, cpio, zip (default: from OUTPUT extension)")
	cmd.Flags().StringVarP(&flags.compression, "compression", "c", "", "Compression: none, gzip, bzip2, xz, lz4, zstd (default: from OUTPUT extension)")
	cmd.Flags().IntVarP(&flags.level, "level", "l", 6, "Compression level")
	cmd.Flags().StringVarP(&flags.baseDir, "base-dir", "C", ".", "Base directory for entry names")
	cmd.Flags().StringSliceVarP(&flags.exclude, "exclude", "x", nil, "Exclude pattern (repeatable)")
	cmd.Flags().BoolVar(&flags.caseInsensitive, "exclude-ignore-case", false, "Match exclude patterns case-insensitively")
	cmd.Flags().BoolVarP(&flags.progress, "progress", "p", false, "Print progress for each file")

	return cmd
}

func runCreate(cmd *cobra.Command, global *globalFlags, flags *createFlags, output string, inputs []string) error {
	log, err := global.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	format, compression := guessFormat(output)
	if flags.format != "" {
		if format, err = arc.ParseFormat(flags.format); err != nil {
			return err
		}
	}
	if flags.compression != "" {
		if compression, err = arc.ParseCompression(flags.compression); err != nil {
			return err
		}
	}

	spec := arc.BuildSpec{
		Output:      output,
		BaseDir:     flags.baseDir,
		Inputs:      inputs,
		Format:      format,
		Compression: compression,
		Level:       flags.level,
	}

	b := arc.NewBuilder(spec, arc.WithLogger(log), excludeOption(flags.exclude, flags.caseInsensitive))
	if err := b.Create(cmd.Context(), progressPrinter(cmd.OutOrStdout(), flags.progress)); err != nil {
		if arc.IsCancelled(err) {
			return fmt.Errorf("%s: %s is incomplete", arc.CancelledMessage, output)
		}

		return err
	}

	cfg := b.FilterConfig()
	fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s, %s, level %d)\n", output, cfg.Format, cfg.Compression, cfg.Level)
	return nil
}

// guessFormat infers format and compression from archive file name.
func guessFormat(name string) (arc.Format, arc.Compression) {
	lower := strings.ToLower(name)

	compression := arc.CompressionNone
	for _, s := range []struct {
		suffix string
		c      arc.Compression
	}{
		{".gz", arc.CompressionGzip},
		{".tgz", arc.CompressionGzip},
		{".bz2", arc.CompressionBzip2},
		{".tbz2", arc.CompressionBzip2},
		{".xz", arc.CompressionXz},
		{".txz", arc.CompressionXz},
		{".lz4", arc.CompressionLz4},
		{".zst", arc.CompressionZstd},
		{".tzst", arc.CompressionZstd},
	} {
		if strings.HasSuffix(lower, s.suffix) {
			compression = s.c
			break
		}
	}

	switch {
	case strings.HasSuffix(lower, ".zip"):
		// zip deflates unless compression is none or level is 0
		return arc.FormatZip, arc.CompressionGzip
	case strings.Contains(lower, ".cpio"):
		return arc.FormatCpio, compression
	default:
		return arc.FormatTar, compression
	}
}
