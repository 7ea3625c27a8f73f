// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/cukefmt/cmd/glyphs"
	"github.com/matt-FFFFFF/cukefmt/cmd/replay"
	"github.com/urfave/cli/v3"
)

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		replay.ReplayCmd,
		glyphs.GlyphsCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "cukefmt",
	Description: `cukefmt prints the progress of a Cucumber style test run.
Every step result is shown as a single character as it arrives
('.' passed, 'P' pending, '-' skipped, 'U' undefined, 'F' failed),
followed by a summary of scenarios, steps, failures and snippets
for undefined steps once all features have run.`,
	Usage:     "cukefmt replay -f run.yaml",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
