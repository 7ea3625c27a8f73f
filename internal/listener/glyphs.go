// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package listener

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matt-FFFFFF/cukefmt/internal/color"
	"github.com/matt-FFFFFF/cukefmt/internal/stepresult"
)

// Default progress glyphs.
const (
	PassedStepCharacter    = "."
	PendingStepCharacter   = "P"
	SkippedStepCharacter   = "-"
	UndefinedStepCharacter = "U"
	FailedStepCharacter    = "F"
)

var (
	// ErrInvalidGlyph is returned when a glyph is not exactly one character.
	ErrInvalidGlyph = errors.New("glyph must be a single character")
	// ErrDuplicateGlyph is returned when two categories share a glyph.
	ErrDuplicateGlyph = errors.New("glyph is used by more than one status")
	// ErrInvalidGlyphOverride is returned when an override is not in status=glyph form.
	ErrInvalidGlyphOverride = errors.New("invalid glyph override, expected status=glyph")
)

// Glyphs is the progress glyph table, indexed by stepresult.Status.
// It is a value type; With returns a modified copy.
type Glyphs [stepresult.NumStatuses]string

// DefaultGlyphs is the standard glyph table.
var DefaultGlyphs = Glyphs{
	stepresult.StatusPassed:    PassedStepCharacter,
	stepresult.StatusPending:   PendingStepCharacter,
	stepresult.StatusSkipped:   SkippedStepCharacter,
	stepresult.StatusUndefined: UndefinedStepCharacter,
	stepresult.StatusFailed:    FailedStepCharacter,
}

var statusColours = map[stepresult.Status]color.Code{
	stepresult.StatusPassed:    color.FgGreen,
	stepresult.StatusPending:   color.FgYellow,
	stepresult.StatusSkipped:   color.FgCyan,
	stepresult.StatusUndefined: color.FgYellow,
	stepresult.StatusFailed:    color.FgRed,
}

// For returns the glyph for status s.
func (g Glyphs) For(s stepresult.Status) string {
	if s < 0 || int(s) >= len(g) {
		return g[stepresult.StatusFailed]
	}

	return g[s]
}

// Colourised returns the glyph for s wrapped in the status colour.
// The glyph is returned unchanged when colour output is disabled.
func (g Glyphs) Colourised(s stepresult.Status) string {
	c, ok := statusColours[s]
	if !ok {
		c = statusColours[stepresult.StatusFailed]
	}

	return color.Colorize(g.For(s), c)
}

// IsZero reports whether no glyph has been set.
func (g Glyphs) IsZero() bool {
	return g == Glyphs{}
}

// With returns a copy of g with the glyph for s replaced.
func (g Glyphs) With(s stepresult.Status, glyph string) (Glyphs, error) {
	if s < 0 || int(s) >= len(g) {
		return g, fmt.Errorf("%w: %d", stepresult.ErrUnknownStatus, s)
	}

	if utf8.RuneCountInString(glyph) != 1 {
		return g, fmt.Errorf("%w: %s=%q", ErrInvalidGlyph, s, glyph)
	}

	g[s] = glyph

	return g, nil
}

// Validate checks every glyph is a single character and no two statuses share one.
func (g Glyphs) Validate() error {
	seen := make(map[string]stepresult.Status, len(g))

	for _, s := range stepresult.Statuses {
		glyph := g[s]
		if utf8.RuneCountInString(glyph) != 1 {
			return fmt.Errorf("%w: %s=%q", ErrInvalidGlyph, s, glyph)
		}

		if other, ok := seen[glyph]; ok {
			return fmt.Errorf("%w: %q (%s, %s)", ErrDuplicateGlyph, glyph, other, s)
		}

		seen[glyph] = s
	}

	return nil
}

// ParseGlyphOverrides applies overrides of the form "status=glyph" to base,
// for example "passed=+". The resulting table is validated.
func ParseGlyphOverrides(base Glyphs, overrides []string) (Glyphs, error) {
	g := base

	for _, o := range overrides {
		name, glyph, ok := strings.Cut(o, "=")
		if !ok {
			return base, fmt.Errorf("%w: %q", ErrInvalidGlyphOverride, o)
		}

		s, err := stepresult.ParseStatus(name)
		if err != nil {
			return base, errors.Join(ErrInvalidGlyphOverride, err)
		}

		if g, err = g.With(s, glyph); err != nil {
			return base, err
		}
	}

	if err := g.Validate(); err != nil {
		return base, err
	}

	return g, nil
}
