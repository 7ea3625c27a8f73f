// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package listener

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/cukefmt/internal/ctxlog"
	"github.com/matt-FFFFFF/cukefmt/internal/event"
	"github.com/matt-FFFFFF/cukefmt/internal/stepresult"
)

// ErrStepFailed is used for failed steps that carry no error of their own.
var ErrStepFailed = errors.New("step failed")

// Report section headers.
const (
	FailedStepsHeader = "(::) failed steps (::)"
	SnippetsHeader    = "You can implement step definitions for undefined steps with these snippets:"
)

// summaryOrder is the order of the per-status breakdown in the count lines.
var summaryOrder = []stepresult.Status{
	stepresult.StatusFailed,
	stepresult.StatusSkipped,
	stepresult.StatusUndefined,
	stepresult.StatusPending,
	stepresult.StatusPassed,
}

// severity ranks statuses when folding step outcomes into a scenario outcome.
var severity = map[stepresult.Status]int{
	stepresult.StatusPassed:    0,
	stepresult.StatusSkipped:   1,
	stepresult.StatusPending:   2,
	stepresult.StatusUndefined: 3,
	stepresult.StatusFailed:    4,
}

type failedStep struct {
	text string
	err  error
}

// Summarizer counts scenario and step outcomes over a whole run and renders
// the report when the AfterFeatures event arrives.
type Summarizer struct {
	base   *Formatter
	buf    *bytes.Buffer
	mu     sync.Mutex
	counts struct {
		scenarios [stepresult.NumStatuses]int
		steps     [stepresult.NumStatuses]int
	}
	scenario  stepresult.Status
	failed    []failedStep
	undefined []string
}

var _ Summary = (*Summarizer)(nil)

// NewSummarizer creates an empty Summarizer.
func NewSummarizer() *Summarizer {
	s := &Summarizer{
		buf: &bytes.Buffer{},
	}

	s.base = NewFormatter(Options{Writer: s.buf}, Handlers{
		event.BeforeScenario: s.handleBeforeScenarioEvent,
		event.StepResult:     s.handleStepResultEvent,
		event.AfterScenario:  s.handleAfterScenarioEvent,
		event.AfterFeatures:  s.handleAfterFeaturesEvent,
	})

	return s
}

// Hear implements event.Listener.
func (s *Summarizer) Hear(ctx context.Context, e event.Event, callback event.Callback) {
	s.base.Hear(ctx, e, callback)
}

// GetLogs returns the report. It is empty until AfterFeatures has been heard.
func (s *Summarizer) GetLogs() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.String()
}

// Err returns every failed step's error combined, or nil if no step failed.
func (s *Summarizer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result *multierror.Error

	for _, f := range s.failed {
		result = multierror.Append(result, fmt.Errorf("%s: %w", f.text, f.err))
	}

	return result.ErrorOrNil()
}

// ScenarioCount returns the number of scenarios that ended with status st.
func (s *Summarizer) ScenarioCount(st stepresult.Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counts.scenarios[st]
}

// StepCount returns the number of steps that ended with status st.
func (s *Summarizer) StepCount(st stepresult.Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counts.steps[st]
}

func (s *Summarizer) handleBeforeScenarioEvent(_ context.Context, _ event.Event, callback event.Callback) {
	s.mu.Lock()
	s.scenario = stepresult.StatusPassed
	s.mu.Unlock()

	callback()
}

func (s *Summarizer) handleStepResultEvent(ctx context.Context, e event.Event, callback event.Callback) {
	result, _ := e.GetPayloadItem(event.KeyStepResult).(stepresult.StepResult)
	status := stepresult.Classify(result)

	s.mu.Lock()
	s.counts.steps[status]++

	if severity[status] > severity[s.scenario] {
		s.scenario = status
	}

	switch status {
	case stepresult.StatusFailed:
		f := failedStep{text: stepText(e, result), err: ErrStepFailed}
		if fr, ok := result.(interface{ Failure() error }); ok && fr.Failure() != nil {
			f.err = fr.Failure()
		}

		s.failed = append(s.failed, f)
	case stepresult.StatusUndefined:
		s.undefined = append(s.undefined, stepName(e, result))
	}
	s.mu.Unlock()

	ctxlog.Debug(ctx, "summarizer", "detail", "step result", "status", status.String())
	callback()
}

func (s *Summarizer) handleAfterScenarioEvent(_ context.Context, _ event.Event, callback event.Callback) {
	s.mu.Lock()
	s.counts.scenarios[s.scenario]++
	s.scenario = stepresult.StatusPassed
	s.mu.Unlock()

	callback()
}

func (s *Summarizer) handleAfterFeaturesEvent(ctx context.Context, _ event.Event, callback event.Callback) {
	s.mu.Lock()
	report := s.render()
	s.mu.Unlock()

	s.base.Log(report)
	ctxlog.Debug(ctx, "summarizer", "detail", "report rendered", "bytes", len(report))
	callback()
}

// render must be called with s.mu held.
func (s *Summarizer) render() string {
	sb := strings.Builder{}
	sb.WriteString("\n\n")

	if len(s.failed) > 0 {
		sb.WriteString(FailedStepsHeader)
		sb.WriteString("\n\n")

		for _, f := range s.failed {
			fmt.Fprintf(&sb, "%s\n%s\n\n", f.text, f.err) // nolint:errcheck
		}
	}

	sb.WriteString(countLine(s.counts.scenarios, "scenario"))
	sb.WriteString(countLine(s.counts.steps, "step"))

	if snippets := uniqueSnippets(s.undefined); len(snippets) > 0 {
		sb.WriteString("\n")
		sb.WriteString(SnippetsHeader)
		sb.WriteString("\n\n")

		for _, snippet := range snippets {
			sb.WriteString(snippet)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// countLine renders e.g. "3 scenarios (1 failed, 2 passed)".
func countLine(counts [stepresult.NumStatuses]int, noun string) string {
	total := 0
	parts := make([]string, 0, len(counts))

	for _, st := range summaryOrder {
		if counts[st] == 0 {
			continue
		}

		total += counts[st]
		parts = append(parts, fmt.Sprintf("%d %s", counts[st], st))
	}

	if total != 1 {
		noun += "s"
	}

	if len(parts) == 0 {
		return fmt.Sprintf("%d %s\n", total, noun)
	}

	return fmt.Sprintf("%d %s (%s)\n", total, noun, strings.Join(parts, ", "))
}

func uniqueSnippets(steps []string) []string {
	seen := make(map[string]struct{}, len(steps))
	snippets := make([]string, 0, len(steps))

	for _, step := range steps {
		if _, ok := seen[step]; ok {
			continue
		}

		seen[step] = struct{}{}
		snippets = append(snippets, Snippet(step))
	}

	return snippets
}

// stepText describes a step for the failure listing, keyword included.
func stepText(e event.Event, r stepresult.StepResult) string {
	if t, ok := r.(interface{ Text() string }); ok && t.Text() != "" {
		return t.Text()
	}

	return stepName(e, r)
}

// stepName is the bare step text, used for snippets.
func stepName(e event.Event, r stepresult.StepResult) string {
	if sr, ok := r.(*stepresult.Result); ok && sr != nil && sr.Step != "" {
		return sr.Step
	}

	if step := e.GetPayloadItem(event.KeyStep); step != nil {
		return fmt.Sprint(step)
	}

	return "unknown step"
}
