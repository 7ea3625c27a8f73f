// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package stepresult

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// predicates is a StepResult whose answers are set independently,
// which lets tests build contradictory results.
type predicates struct {
	successful, pending, failed, skipped, undefined bool
}

func (p predicates) IsSuccessful() bool { return p.successful }
func (p predicates) IsPending() bool    { return p.pending }
func (p predicates) IsFailed() bool     { return p.failed }
func (p predicates) IsSkipped() bool    { return p.skipped }
func (p predicates) IsUndefined() bool  { return p.undefined }

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		result   StepResult
		expected Status
	}{
		{
			name:     "only successful",
			result:   predicates{successful: true},
			expected: StatusPassed,
		},
		{
			name:     "successful wins over everything else",
			result:   predicates{successful: true, pending: true, failed: true, skipped: true, undefined: true},
			expected: StatusPassed,
		},
		{
			name:     "pending",
			result:   predicates{pending: true},
			expected: StatusPending,
		},
		{
			name:     "pending wins over skipped and undefined",
			result:   predicates{pending: true, skipped: true, undefined: true},
			expected: StatusPending,
		},
		{
			name:     "skipped",
			result:   predicates{skipped: true},
			expected: StatusSkipped,
		},
		{
			name:     "skipped wins over undefined",
			result:   predicates{skipped: true, undefined: true},
			expected: StatusSkipped,
		},
		{
			name:     "undefined",
			result:   predicates{undefined: true},
			expected: StatusUndefined,
		},
		{
			name:     "failed",
			result:   predicates{failed: true},
			expected: StatusFailed,
		},
		{
			name:     "nothing true falls back to failed",
			result:   predicates{},
			expected: StatusFailed,
		},
		{
			name:     "nil falls back to failed",
			result:   nil,
			expected: StatusFailed,
		},
		{
			name:     "nil *Result falls back to failed",
			result:   (*Result)(nil),
			expected: StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.result))
		})
	}
}

func TestResult_NilReceiver(t *testing.T) {
	var r *Result

	assert.NotPanics(t, func() {
		assert.False(t, r.IsSuccessful())
		assert.False(t, r.IsPending())
		assert.False(t, r.IsFailed())
		assert.False(t, r.IsSkipped())
		assert.False(t, r.IsUndefined())
		assert.NoError(t, r.Failure())
		assert.Empty(t, r.Text())
	})
	assert.False(t, Consistent(r))
}

func TestClassify_RoundTripsResult(t *testing.T) {
	for _, s := range Statuses {
		t.Run(s.String(), func(t *testing.T) {
			r := New(s, "a step")
			assert.True(t, Consistent(r))
			assert.Equal(t, s, Classify(r))
		})
	}
}

func TestConsistent(t *testing.T) {
	assert.False(t, Consistent(predicates{}))
	assert.False(t, Consistent(predicates{successful: true, failed: true}))
	assert.True(t, Consistent(predicates{skipped: true}))
	assert.False(t, Consistent(nil))
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusPassed, "passed"},
		{StatusPending, "pending"},
		{StatusSkipped, "skipped"},
		{StatusUndefined, "undefined"},
		{StatusFailed, "failed"},
		{Status(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
		wantErr  bool
	}{
		{input: "passed", expected: StatusPassed},
		{input: "Successful", expected: StatusPassed},
		{input: " PENDING ", expected: StatusPending},
		{input: "skipped", expected: StatusSkipped},
		{input: "undefined", expected: StatusUndefined},
		{input: "failed", expected: StatusFailed},
		{input: "broken", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := ParseStatus(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownStatus)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestResult_Text(t *testing.T) {
	r := NewFailed("the result is 5", errors.New("got 6"))
	assert.Equal(t, "the result is 5", r.Text())

	r.Keyword = "Then"
	assert.Equal(t, "Then the result is 5", r.Text())
	assert.True(t, r.IsFailed())
	assert.False(t, r.IsSuccessful())
}
