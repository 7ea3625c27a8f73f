// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package event

import (
	"context"
	"time"
)

// Name identifies the kind of event.
type Name string

// Lifecycle events, listed in the order a run emits them.
const (
	BeforeFeatures Name = "BeforeFeatures"
	BeforeFeature  Name = "BeforeFeature"
	Background     Name = "Background"
	BeforeScenario Name = "BeforeScenario"
	BeforeStep     Name = "BeforeStep"
	StepResult     Name = "StepResult"
	AfterStep      Name = "AfterStep"
	AfterScenario  Name = "AfterScenario"
	AfterFeature   Name = "AfterFeature"
	AfterFeatures  Name = "AfterFeatures"
)

// Payload keys understood by the listeners in this module.
const (
	KeyFeatures   = "features"
	KeyFeature    = "feature"
	KeyBackground = "background"
	KeyScenario   = "scenario"
	KeyStep       = "step"
	KeyStepResult = "stepResult"
)

// Event is a notification of something that happened during a run.
type Event struct {
	Name      Name           // Kind of event
	Payload   map[string]any // Type-specific items, see the Key constants
	Timestamp time.Time      // When the event occurred
}

// New creates an event with the given name and payload.
// A nil payload is replaced with an empty one.
func New(name Name, payload map[string]any) Event {
	if payload == nil {
		payload = make(map[string]any)
	}

	return Event{
		Name:      name,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// GetPayloadItem returns the payload item stored under key, or nil.
func (e Event) GetPayloadItem(key string) any {
	return e.Payload[key]
}

// String implements the Stringer interface for Event.
func (e Event) String() string {
	return string(e.Name)
}

// Callback signals that a listener has finished with an event.
type Callback func()

// Listener receives events.
type Listener interface {
	// Hear is called once per event. Implementations must call callback
	// exactly once when they are done with the event.
	Hear(ctx context.Context, e Event, callback Callback)
}

// ListenerFunc adapts an ordinary function to the Listener interface.
type ListenerFunc func(ctx context.Context, e Event, callback Callback)

// Hear implements Listener.
func (f ListenerFunc) Hear(ctx context.Context, e Event, callback Callback) {
	f(ctx, e, callback)
}
