// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

// Package cmd implements the arc command line interface.
//
// Commands are built with cobra and executed through fang:
//   - create: build tar, cpio, or zip archive from files and directories
//   - extract: unpack archive into a directory
//   - list: print archive entries, optionally as a completed tree
//   - test: read every file of an archive and report integrity
//   - cat: print one file entry to stdout
//
// Each command has its own constructor returning *cobra.Command.
package cmd
