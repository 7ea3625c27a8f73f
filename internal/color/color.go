// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/term"
)

const (
	sbPadding = 16 // padding for the strings.Builder
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"
	reset      = "\033[0m"
	prefix     = "\033["
	suffix     = "m"
)

// Code represents an ANSI control code for text formatting.
type Code int

// Control codes for text formatting.
const (
	Reset Code = 0
	Bold  Code = 1
	Faint Code = 2
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled atomic.Bool

func init() {
	enabled.Store(isColorCapable())
}

// Colorize returns str wrapped in the given codes followed by a reset.
// It returns str unchanged when colour output is disabled.
func Colorize(str string, colorCodes ...Code) string {
	if !enabled.Load() || len(colorCodes) == 0 {
		return str
	}

	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(reset) + sbPadding)
	sb.WriteString(prefix)

	for i, code := range colorCodes {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(suffix)
	sb.WriteString(str)
	sb.WriteString(reset)

	return sb.String()
}

// Enabled reports whether colour output is enabled.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled overrides colour detection and returns a function that restores
// the previous setting.
func SetEnabled(v bool) (restore func()) {
	old := enabled.Swap(v)
	return func() { enabled.Store(old) }
}

func isColorCapable() bool {
	if nc := os.Getenv(NoColor); nc != "" {
		return false
	}

	if fc := os.Getenv(ForceColor); fc != "" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}
