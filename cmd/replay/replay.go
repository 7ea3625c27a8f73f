// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package replay contains the replay command, which feeds a recorded run
// through the progress formatter.
package replay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matt-FFFFFF/cukefmt/internal/bus"
	"github.com/matt-FFFFFF/cukefmt/internal/color"
	"github.com/matt-FFFFFF/cukefmt/internal/ctxlog"
	"github.com/matt-FFFFFF/cukefmt/internal/listener"
	"github.com/matt-FFFFFF/cukefmt/internal/runrecord"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag              = "file"
	colourFlag            = "colour"
	glyphFlag             = "glyph"
	noFailFlag            = "no-fail"
	timeoutFlag           = "timeout"
	timeoutSecondsDefault = 0
	busBufferSize         = 16
	cliExitStr            = ""
)

// ErrStepsFailed is returned when the replayed run contains failed steps.
var ErrStepsFailed = errors.New("one or more steps failed")

// ReplayCmd is the command that replays a recorded run through the progress formatter.
var ReplayCmd = newReplayCmd()

func newReplayCmd() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "cukefmt replay -f run.yaml",
		Description: `Replay a recorded run and print its progress.
Each step result is printed as a single character as it arrives, followed by
a summary of scenarios and steps once all features have run.

Record URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.
Plain paths are read from the local filesystem.
`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     fileFlag,
				Aliases:  []string{"f"},
				Usage:    "Specify the path or go-getter URL of the YAML run record to replay.",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:        colourFlag,
				Aliases:     []string{"color"},
				Usage:       "Colour the step characters when the terminal supports it",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.StringSliceFlag{
				Name:    glyphFlag,
				Aliases: []string{"g"},
				Usage: "Override the character printed for a step status, as status=char. " +
					"Specify multiple times to override multiple statuses.",
			},
			&cli.BoolFlag{
				Name:        noFailFlag,
				Usage:       "Exit zero even when steps failed",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.IntFlag{
				Name: timeoutFlag,
				Usage: "Set the maximum time in seconds the replay may take. " +
					"Zero disables the limit.",
				Value: timeoutSecondsDefault,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running replay command")

	src := cmd.String(fileFlag)
	if src == "" {
		logger.Error("Please specify the run record using the --file or -f flag.")
		return cli.Exit(cliExitStr, 1)
	}

	glyphs, err := listener.ParseGlyphOverrides(listener.DefaultGlyphs, cmd.StringSlice(glyphFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	rec, err := load(ctx, src)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if secs := cmd.Int(timeoutFlag); secs > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, time.Duration(secs)*time.Second)
		defer cancel()
	}

	pf := listener.NewProgressFormatter(listener.Options{
		Writer: cmd.Writer,
		Glyphs: glyphs,
		Colour: cmd.Bool(colourFlag) && color.Enabled(),
	})

	b := bus.New(ctx, busBufferSize)
	b.Register(pf)

	replayErr := rec.Replay(ctx, b)
	if err := errors.Join(replayErr, b.Close()); err != nil {
		logger.Error(fmt.Sprintf("Replay of %s stopped: %s", src, err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	if err := pf.Err(); err != nil {
		logger.Error(fmt.Sprintf("Failed to write progress: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	if err := failures(pf.Summarizer()); err != nil {
		logger.Info("replayed run has failures", "error", err.Error())

		if !cmd.Bool(noFailFlag) {
			return cli.Exit(ErrStepsFailed.Error(), 1)
		}
	}

	return nil
}

// load reads src from the local filesystem, or through go-getter when it
// looks like a getter URL.
func load(ctx context.Context, src string) (*runrecord.Record, error) {
	if isGetterURL(src) {
		return runrecord.Fetch(ctx, src)
	}

	return runrecord.Load(ctx, src)
}

func isGetterURL(src string) bool {
	return strings.Contains(src, "::") || strings.Contains(src, "://")
}

func failures(s listener.Summary) error {
	if e, ok := s.(interface{ Err() error }); ok {
		return e.Err()
	}

	return nil
}
