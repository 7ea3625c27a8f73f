// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package listener

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/cukefmt/internal/ctxlog"
	"github.com/matt-FFFFFF/cukefmt/internal/event"
	"github.com/matt-FFFFFF/cukefmt/internal/stepresult"
)

// Summary observes every event of a run and renders a report on demand.
type Summary interface {
	event.Listener
	// GetLogs returns the rendered report.
	GetLogs() string
}

// FormatterFactory builds the base formatter of a ProgressFormatter.
// It is a variable so tests can replace it.
var FormatterFactory = func(opts Options, handlers Handlers) Base {
	return NewFormatter(opts, handlers)
}

// SummarizerFactory builds the summarizer of a ProgressFormatter.
// It is a variable so tests can replace it.
var SummarizerFactory = func() Summary {
	return NewSummarizer()
}

// ProgressFormatter prints one glyph per step as results arrive and the
// summarizer's report once all features have run.
type ProgressFormatter struct {
	base       Base
	summarizer Summary
	glyphs     Glyphs
	colour     bool
}

var _ Base = (*ProgressFormatter)(nil)

// NewProgressFormatter creates a ProgressFormatter. opts is handed to
// FormatterFactory unchanged.
func NewProgressFormatter(opts Options) *ProgressFormatter {
	glyphs := opts.Glyphs
	if glyphs.IsZero() {
		glyphs = DefaultGlyphs
	}

	pf := &ProgressFormatter{
		glyphs: glyphs,
		colour: opts.Colour,
	}

	pf.base = FormatterFactory(opts, Handlers{
		event.StepResult:    pf.HandleStepResultEvent,
		event.AfterFeatures: pf.HandleAfterFeaturesEvent,
	})
	pf.summarizer = SummarizerFactory()

	return pf
}

// Hear implements event.Listener. The summarizer sees the event first; once
// it calls back, the base formatter dispatches the event to this formatter's
// handlers, and callback fires when that is done.
func (pf *ProgressFormatter) Hear(ctx context.Context, e event.Event, callback event.Callback) {
	pf.summarizer.Hear(ctx, e, func() {
		pf.base.Hear(ctx, e, callback)
	})
}

// Log writes text through the base formatter.
func (pf *ProgressFormatter) Log(text string) {
	pf.base.Log(text)
}

// Summarizer returns the summarizer fed by this formatter.
func (pf *ProgressFormatter) Summarizer() Summary {
	return pf.summarizer
}

// Err returns the base formatter's output error, if it tracks one.
func (pf *ProgressFormatter) Err() error {
	if e, ok := pf.base.(interface{ Err() error }); ok {
		return e.Err()
	}

	return nil
}

// HandleStepResultEvent prints the glyph for the step result in the event
// payload and calls back.
//
// Classification follows stepresult.Classify: successful, pending, skipped,
// undefined, otherwise failed. A missing or foreign payload item ends up failed.
func (pf *ProgressFormatter) HandleStepResultEvent(ctx context.Context, e event.Event, callback event.Callback) {
	result, ok := e.GetPayloadItem(event.KeyStepResult).(stepresult.StepResult)
	if !ok {
		ctxlog.Warn(ctx, "step result event without a step result",
			"payload", fmt.Sprintf("%T", e.GetPayloadItem(event.KeyStepResult)))
	}

	switch stepresult.Classify(result) {
	case stepresult.StatusPassed:
		pf.HandleSuccessfulStepResult()
	case stepresult.StatusPending:
		pf.HandlePendingStepResult()
	case stepresult.StatusSkipped:
		pf.HandleSkippedStepResult()
	case stepresult.StatusUndefined:
		pf.HandleUndefinedStepResult()
	default:
		pf.HandleFailedStepResult()
	}

	callback()
}

// HandleSuccessfulStepResult prints the passed step glyph.
func (pf *ProgressFormatter) HandleSuccessfulStepResult() {
	pf.logGlyph(stepresult.StatusPassed)
}

// HandlePendingStepResult prints the pending step glyph.
func (pf *ProgressFormatter) HandlePendingStepResult() {
	pf.logGlyph(stepresult.StatusPending)
}

// HandleSkippedStepResult prints the skipped step glyph.
func (pf *ProgressFormatter) HandleSkippedStepResult() {
	pf.logGlyph(stepresult.StatusSkipped)
}

// HandleUndefinedStepResult prints the undefined step glyph.
func (pf *ProgressFormatter) HandleUndefinedStepResult() {
	pf.logGlyph(stepresult.StatusUndefined)
}

// HandleFailedStepResult prints the failed step glyph.
func (pf *ProgressFormatter) HandleFailedStepResult() {
	pf.logGlyph(stepresult.StatusFailed)
}

// HandleAfterFeaturesEvent prints the summarizer's report and calls back.
func (pf *ProgressFormatter) HandleAfterFeaturesEvent(_ context.Context, _ event.Event, callback event.Callback) {
	logs := pf.summarizer.GetLogs()
	pf.Log(logs)
	callback()
}

func (pf *ProgressFormatter) logGlyph(s stepresult.Status) {
	if pf.colour {
		pf.Log(pf.glyphs.Colourised(s))
		return
	}

	pf.Log(pf.glyphs.For(s))
}
