// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

// Package version reports build version of the arc CLI.
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Set by -ldflags at release build time.
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info contains version information.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// GetVersion returns linker-provided version or module version from build info.
func GetVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}

	return "development"
}

// GetCommit returns linker-provided commit or vcs.revision.
func GetCommit() string {
	if Commit != "unknown" && Commit != "" {
		return Commit
	}

	return buildSetting("vcs.revision")
}

// GetBuildDate returns linker-provided date or vcs.time.
func GetBuildDate() string {
	if Date != "unknown" && Date != "" {
		return Date
	}

	return buildSetting("vcs.time")
}

// GetInfo returns complete version information.
func GetInfo() Info {
	return Info{
		Version: GetVersion(),
		Commit:  GetCommit(),
		Date:    GetBuildDate(),
	}
}

// GetFullVersion returns version with short commit and date when known.
func GetFullVersion() string {
	info := GetInfo()
	if info.Commit == "unknown" || len(info.Commit) <= 7 {
		return info.Version
	}

	short := info.Commit[:7]
	if info.Date != "unknown" {
		return fmt.Sprintf("%s (%s, built %s)", info.Version, short, info.Date)
	}

	return fmt.Sprintf("%s (%s)", info.Version, short)
}

func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}

	return "unknown"
}
