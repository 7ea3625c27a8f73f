// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package bus delivers run events to listeners, one event at a time.
//
// For every event the bus calls each listener in registration order and waits
// for its callback before moving on. A listener that never calls back stalls
// the run until the context is cancelled.
package bus

import (
	"context"
	"errors"
	"sync"

	"github.com/matt-FFFFFF/cukefmt/internal/ctxlog"
	"github.com/matt-FFFFFF/cukefmt/internal/event"
)

var (
	// ErrCancelled is returned when the context ends before a listener called back.
	ErrCancelled = errors.New("event delivery cancelled")
	// ErrClosed is returned when reporting to a closed bus.
	ErrClosed = errors.New("event bus is closed")
)

// Bus delivers events to its listeners.
type Bus struct {
	listeners []event.Listener
	ch        chan event.Event
	done      chan struct{} // closed when Close starts
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	startOnce sync.Once
	deliverMu sync.Mutex
	closeMu   sync.RWMutex // guards closed and sends on ch
	closed    bool
	mu        sync.RWMutex // guards listeners and err
	err       error
}

// New creates a Bus whose background queue holds up to bufferSize events.
func New(ctx context.Context, bufferSize int) *Bus {
	busCtx, cancel := context.WithCancel(ctx)

	return &Bus{
		ch:     make(chan event.Event, bufferSize),
		done:   make(chan struct{}),
		ctx:    busCtx,
		cancel: cancel,
	}
}

// Register adds a listener. Listeners registered after delivery has started
// only see later events.
func (b *Bus) Register(l event.Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = append(b.listeners, l)
}

// Broadcast delivers e to every listener and returns once all of them have
// called back. Concurrent callers are serialised, so a single event is in
// flight at any time.
func (b *Bus) Broadcast(ctx context.Context, e event.Event) error {
	b.deliverMu.Lock()
	defer b.deliverMu.Unlock()

	b.mu.RLock()
	listeners := make([]event.Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, l := range listeners {
		if err := deliver(ctx, l, e); err != nil {
			return err
		}
	}

	return nil
}

// Start launches the background loop that broadcasts queued events.
// Calling it more than once has no effect.
func (b *Bus) Start() {
	b.startOnce.Do(func() {
		b.wg.Add(1)

		go func() {
			defer b.wg.Done()

			for e := range b.ch {
				if b.Err() != nil {
					continue
				}

				if err := b.Broadcast(b.ctx, e); err != nil {
					b.setErr(err)
				}
			}
		}()
	})
}

// Report queues e for the background loop. It blocks while the queue is full
// so no event is lost, and returns an error once the bus is closing or its
// context has ended.
func (b *Bus) Report(e event.Event) error {
	b.closeMu.RLock()
	defer b.closeMu.RUnlock()

	if b.closed {
		return ErrClosed
	}

	select {
	case <-b.done:
		return ErrClosed
	default:
	}

	select {
	case b.ch <- e:
		return nil
	case <-b.done:
		return ErrClosed
	case <-b.ctx.Done():
		return errors.Join(ErrCancelled, b.ctx.Err())
	}
}

// Close stops accepting events, waits for queued events to be delivered and
// returns the first delivery error. Events queued on a bus that was never
// started are discarded.
func (b *Bus) Close() error {
	b.closeOnce.Do(func() {
		// wakes any Report blocked on a full queue
		close(b.done)

		b.closeMu.Lock()
		b.closed = true
		close(b.ch)
		b.closeMu.Unlock()

		b.wg.Wait()
		b.cancel()
	})

	return b.Err()
}

// Err returns the first error seen by the background loop.
func (b *Bus) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.err
}

func (b *Bus) setErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err == nil {
		b.err = err
	}
}

// deliver hands e to l and waits for the callback or the end of ctx.
func deliver(ctx context.Context, l event.Listener, e event.Event) error {
	done := make(chan struct{})

	var once sync.Once

	l.Hear(ctx, e, func() {
		called := false

		once.Do(func() {
			called = true
			close(done)
		})

		if !called {
			ctxlog.Debug(ctx, "bus", "detail", "callback invoked more than once", "event", e.String())
		}
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(ErrCancelled, ctx.Err())
	}
}
