// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runrecord

import (
	"context"
	"errors"
	"testing"

	"github.com/matt-FFFFFF/cukefmt/internal/event"
	"github.com/matt-FFFFFF/cukefmt/internal/stepresult"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroadcaster struct {
	events []event.Event
	failAt int
	err    error
}

func (f *fakeBroadcaster) Broadcast(_ context.Context, e event.Event) error {
	if f.err != nil && len(f.events) == f.failAt {
		return f.err
	}

	f.events = append(f.events, e)

	return nil
}

func names(events []event.Event) []event.Name {
	out := make([]event.Name, 0, len(events))
	for _, e := range events {
		out = append(out, e.Name)
	}

	return out
}

func stepEvents() []event.Name {
	return []event.Name{event.BeforeStep, event.StepResult, event.AfterStep}
}

func TestRecord_Events(t *testing.T) {
	rec, err := Parse(readTestdata(t, "calculator.yaml"))
	require.NoError(t, err)

	events, err := rec.Events()
	require.NoError(t, err)

	expected := []event.Name{event.BeforeFeatures, event.BeforeFeature, event.Background}
	// scenario 1: background step + 2 steps
	expected = append(expected, event.BeforeScenario)
	for range 3 {
		expected = append(expected, stepEvents()...)
	}

	expected = append(expected, event.AfterScenario)
	// scenario 2: background step + 2 steps
	expected = append(expected, event.BeforeScenario)
	for range 3 {
		expected = append(expected, stepEvents()...)
	}

	expected = append(expected, event.AfterScenario, event.AfterFeature, event.AfterFeatures)

	assert.Equal(t, expected, names(events))

	var statuses []stepresult.Status

	for _, e := range events {
		if e.Name != event.StepResult {
			continue
		}

		r, ok := e.GetPayloadItem(event.KeyStepResult).(*stepresult.Result)
		require.True(t, ok)
		assert.NotNil(t, e.GetPayloadItem(event.KeyStep))

		statuses = append(statuses, r.Status)
	}

	assert.Equal(t, []stepresult.Status{
		stepresult.StatusPassed,
		stepresult.StatusPassed,
		stepresult.StatusFailed,
		stepresult.StatusPassed,
		stepresult.StatusUndefined,
		stepresult.StatusSkipped,
	}, statuses)
}

func TestRecord_EventsEmpty(t *testing.T) {
	events, err := (&Record{}).Events()
	require.NoError(t, err)
	assert.Equal(t, []event.Name{event.BeforeFeatures, event.AfterFeatures}, names(events))
}

func TestRecord_EventsInvalidStep(t *testing.T) {
	rec := &Record{Features: []*Feature{{
		Scenarios: []*Scenario{{Steps: []*Step{{Name: "x", Status: "sideways"}}}},
	}}}

	_, err := rec.Events()
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRecord_Replay(t *testing.T) {
	rec, err := Parse(readTestdata(t, "calculator.yaml"))
	require.NoError(t, err)

	expected, err := rec.Events()
	require.NoError(t, err)

	b := &fakeBroadcaster{}
	require.NoError(t, rec.Replay(context.Background(), b))
	assert.Equal(t, names(expected), names(b.events))
}

func TestRecord_ReplayStopsOnError(t *testing.T) {
	rec, err := Parse(readTestdata(t, "calculator.yaml"))
	require.NoError(t, err)

	boom := errors.New("boom")
	b := &fakeBroadcaster{failAt: 2, err: boom}

	err = rec.Replay(context.Background(), b)
	require.ErrorIs(t, err, boom)
	assert.Len(t, b.events, 2)
}
