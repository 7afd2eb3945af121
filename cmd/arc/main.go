// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/woozymasta/arc/internal/cmd"
	"github.com/woozymasta/arc/version"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		cmd.NewRootCmd(),
		fang.WithVersion(version.GetVersion()),
		fang.WithCommit(version.GetCommit()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
