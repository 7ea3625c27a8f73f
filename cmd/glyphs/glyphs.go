// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package glyphs contains the glyphs command, which prints the character used for each step status.
package glyphs

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/cukefmt/internal/color"
	"github.com/matt-FFFFFF/cukefmt/internal/ctxlog"
	"github.com/matt-FFFFFF/cukefmt/internal/listener"
	"github.com/matt-FFFFFF/cukefmt/internal/stepresult"
	"github.com/urfave/cli/v3"
)

const (
	glyphFlag  = "glyph"
	colourFlag = "colour"
)

// GlyphsCmd prints the step status table, including any overrides.
var GlyphsCmd = newGlyphsCmd()

func newGlyphsCmd() *cli.Command {
	return &cli.Command{
		Name:        "glyphs",
		Usage:       "cukefmt glyphs --glyph failed=X",
		Description: "Print the character used for each step status.",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    glyphFlag,
				Aliases: []string{"g"},
				Usage:   "Override the character printed for a step status, as status=char.",
			},
			&cli.BoolFlag{
				Name:        colourFlag,
				Aliases:     []string{"color"},
				Usage:       "Colour the characters when the terminal supports it",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	ctxlog.Logger(ctx).Debug("Running glyphs command")

	glyphs, err := listener.ParseGlyphOverrides(listener.DefaultGlyphs, cmd.StringSlice(glyphFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	colour := cmd.Bool(colourFlag) && color.Enabled()

	for _, s := range stepresult.Statuses {
		g := glyphs.For(s)
		if colour {
			g = glyphs.Colourised(s)
		}

		if _, err := fmt.Fprintf(cmd.Writer, "%-10s %s\n", s.String(), g); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	return nil
}
