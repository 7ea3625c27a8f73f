// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package stepresult

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownStatus is returned when a status name cannot be parsed.
var ErrUnknownStatus = errors.New("unknown step status")

// StepResult is the outcome of one executed step as seen by listeners.
type StepResult interface {
	IsSuccessful() bool
	IsPending() bool
	IsFailed() bool
	IsSkipped() bool
	IsUndefined() bool
}

// Status is the outcome category of a step.
type Status int

const (
	// StatusPassed indicates the step ran successfully.
	StatusPassed Status = iota
	// StatusPending indicates the step definition is not finished yet.
	StatusPending
	// StatusSkipped indicates the step was not run because an earlier step did not pass.
	StatusSkipped
	// StatusUndefined indicates no step definition matched the step.
	StatusUndefined
	// StatusFailed indicates the step ran and failed.
	StatusFailed
)

// NumStatuses is the number of distinct statuses.
const NumStatuses = int(StatusFailed) + 1

// Statuses lists every status in classification order.
var Statuses = []Status{
	StatusPassed,
	StatusPending,
	StatusSkipped,
	StatusUndefined,
	StatusFailed,
}

// String implements the Stringer interface for Status.
func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusPending:
		return "pending"
	case StatusSkipped:
		return "skipped"
	case StatusUndefined:
		return "undefined"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseStatus converts a status name into a Status. It is case insensitive
// and accepts "successful" as an alias of "passed".
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "passed", "successful":
		return StatusPassed, nil
	case "pending":
		return StatusPending, nil
	case "skipped":
		return StatusSkipped, nil
	case "undefined":
		return StatusUndefined, nil
	case "failed":
		return StatusFailed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Result is a StepResult backed by a single Status.
type Result struct {
	Status   Status        // Outcome category
	Keyword  string        // Gherkin keyword, e.g. "Given"
	Step     string        // Step text without the keyword
	Err      error         // Failure cause, only meaningful for StatusFailed
	Duration time.Duration // Time spent running the step
}

var _ StepResult = (*Result)(nil)

// New returns a Result for the given status and step text.
func New(status Status, step string) *Result {
	return &Result{
		Status: status,
		Step:   step,
	}
}

// NewFailed returns a failed Result carrying err.
func NewFailed(step string, err error) *Result {
	return &Result{
		Status: StatusFailed,
		Step:   step,
		Err:    err,
	}
}

// IsSuccessful implements StepResult.
func (r *Result) IsSuccessful() bool { return r != nil && r.Status == StatusPassed }

// IsPending implements StepResult.
func (r *Result) IsPending() bool { return r != nil && r.Status == StatusPending }

// IsFailed implements StepResult.
func (r *Result) IsFailed() bool { return r != nil && r.Status == StatusFailed }

// IsSkipped implements StepResult.
func (r *Result) IsSkipped() bool { return r != nil && r.Status == StatusSkipped }

// IsUndefined implements StepResult.
func (r *Result) IsUndefined() bool { return r != nil && r.Status == StatusUndefined }

// Failure returns the cause of a failed step.
func (r *Result) Failure() error {
	if r == nil {
		return nil
	}

	return r.Err
}

// Text returns the keyword and step text joined by a space.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}

	if r.Keyword == "" {
		return r.Step
	}

	return r.Keyword + " " + r.Step
}
