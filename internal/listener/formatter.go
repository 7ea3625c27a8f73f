// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package listener

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/matt-FFFFFF/cukefmt/internal/event"
)

// ErrLogWrite is returned by Err when writing to the output failed.
var ErrLogWrite = errors.New("failed to write formatter output")

// Options configures a formatter. Formatters pass it through unchanged.
type Options struct {
	Writer io.Writer // Destination for Log, defaults to os.Stdout
	Glyphs Glyphs    // Progress glyphs, zero value means DefaultGlyphs
	Colour bool      // Colourise progress glyphs
}

// HandlerFunc handles a single event and must call callback exactly once.
type HandlerFunc func(ctx context.Context, e event.Event, callback event.Callback)

// Handlers maps event names to their handlers.
type Handlers map[event.Name]HandlerFunc

// Base is the capability a specialised formatter builds upon.
type Base interface {
	event.Listener
	// Log writes text to the output as is.
	Log(text string)
}

// Formatter is the default Base. It dispatches each event to the handler
// registered for its name; events without a handler are acknowledged at once.
type Formatter struct {
	writer   io.Writer
	handlers Handlers
	err      error
	mu       sync.Mutex
}

var _ Base = (*Formatter)(nil)

// NewFormatter creates a Formatter writing to opts.Writer.
func NewFormatter(opts Options, handlers Handlers) *Formatter {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	if handlers == nil {
		handlers = make(Handlers)
	}

	return &Formatter{
		writer:   w,
		handlers: handlers,
	}
}

// Hear implements event.Listener.
func (f *Formatter) Hear(ctx context.Context, e event.Event, callback event.Callback) {
	h, ok := f.handlers[e.Name]
	if !ok {
		callback()
		return
	}

	h(ctx, e, callback)
}

// Log writes text to the output. The first write error is kept and
// reported by Err; later writes are still attempted.
func (f *Formatter) Log(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := io.WriteString(f.writer, text); err != nil && f.err == nil {
		f.err = errors.Join(ErrLogWrite, err)
	}
}

// Err returns the first error encountered by Log, if any.
func (f *Formatter) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.err
}
