// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runrecord

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/cukefmt/internal/ctxlog"
	"github.com/matt-FFFFFF/cukefmt/internal/event"
)

// Broadcaster delivers a single event and waits until it has been handled.
type Broadcaster interface {
	Broadcast(ctx context.Context, e event.Event) error
}

// Events returns the event sequence of a run that produced r.
// The background steps of a feature are replayed at the start of each of
// its scenarios.
func (r *Record) Events() ([]event.Event, error) {
	events := []event.Event{
		event.New(event.BeforeFeatures, map[string]any{event.KeyFeatures: r}),
	}

	for _, f := range r.Features {
		events = append(events, event.New(event.BeforeFeature, map[string]any{event.KeyFeature: f}))

		var background []*Step
		if f.Background != nil {
			background = f.Background.Steps
			events = append(events, event.New(event.Background, map[string]any{event.KeyBackground: f.Background}))
		}

		for _, sc := range f.Scenarios {
			events = append(events, event.New(event.BeforeScenario, map[string]any{event.KeyScenario: sc}))

			steps := make([]*Step, 0, len(background)+len(sc.Steps))
			steps = append(steps, background...)
			steps = append(steps, sc.Steps...)

			for _, st := range steps {
				res, err := st.Result()
				if err != nil {
					return nil, err
				}

				events = append(events,
					event.New(event.BeforeStep, map[string]any{event.KeyStep: st}),
					event.New(event.StepResult, map[string]any{event.KeyStep: st, event.KeyStepResult: res}),
					event.New(event.AfterStep, map[string]any{event.KeyStep: st}),
				)
			}

			events = append(events, event.New(event.AfterScenario, map[string]any{event.KeyScenario: sc}))
		}

		events = append(events, event.New(event.AfterFeature, map[string]any{event.KeyFeature: f}))
	}

	events = append(events, event.New(event.AfterFeatures, map[string]any{event.KeyFeatures: r}))

	return events, nil
}

// Replay broadcasts the events of r in order and stops at the first error.
func (r *Record) Replay(ctx context.Context, b Broadcaster) error {
	events, err := r.Events()
	if err != nil {
		return err
	}

	ctxlog.Debug(ctx, "runrecord", "detail", "replaying record", "name", r.Name, "events", len(events))

	for i, e := range events {
		if err := b.Broadcast(ctx, e); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, e, err)
		}
	}

	return nil
}
