// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errWriter struct{}

func (errWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestNewPrettyHandler(t *testing.T) {
	tests := []struct {
		name    string
		options *slog.HandlerOptions
		opts    []Option
	}{
		{
			name:    "with nil options",
			options: nil,
		},
		{
			name: "with custom options",
			options: &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			},
		},
		{
			name:    "with functional options",
			options: &slog.HandlerOptions{},
			opts: []Option{
				WithColour(),
				WithOutputEmptyAttrs(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPrettyHandler(tt.options, tt.opts...)
			require.NotNil(t, handler)
			assert.NotNil(t, handler.h)
			assert.NotNil(t, handler.b)
			assert.NotNil(t, handler.m)
			assert.NotNil(t, handler.writer)
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		level   slog.Level
		options *slog.HandlerOptions
		want    bool
	}{
		{
			name:    "debug level with debug handler",
			level:   slog.LevelDebug,
			options: &slog.HandlerOptions{Level: slog.LevelDebug},
			want:    true,
		},
		{
			name:    "debug level with info handler",
			level:   slog.LevelDebug,
			options: &slog.HandlerOptions{Level: slog.LevelInfo},
			want:    false,
		},
		{
			name:    "error level with warn handler",
			level:   slog.LevelError,
			options: &slog.HandlerOptions{Level: slog.LevelWarn},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPrettyHandler(tt.options)
			assert.Equal(t, tt.want, handler.Enabled(context.Background(), tt.level))
		})
	}
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{})

	withAttrs, ok := handler.WithAttrs([]slog.Attr{slog.String("key1", "value1")}).(*PrettyHandler)
	require.True(t, ok)
	assert.Same(t, handler.b, withAttrs.b, "WithAttrs() should share the same buffer")
	assert.Same(t, handler.m, withAttrs.m, "WithAttrs() should share the same mutex")

	withGroup, ok := handler.WithGroup("group").(*PrettyHandler)
	require.True(t, ok)
	assert.Same(t, handler.b, withGroup.b, "WithGroup() should share the same buffer")
	assert.Same(t, handler.m, withGroup.m, "WithGroup() should share the same mutex")
}

func TestPrettyHandler_Handle(t *testing.T) {
	tests := []struct {
		name           string
		level          slog.Level
		message        string
		attrs          []any
		expectInOutput []string
	}{
		{
			name:           "basic info message",
			level:          slog.LevelInfo,
			message:        "test message",
			expectInOutput: []string{"INFO:", "test message"},
		},
		{
			name:           "debug message with attributes",
			level:          slog.LevelDebug,
			message:        "debug message",
			attrs:          []any{"key", "value", "number", 42},
			expectInOutput: []string{"DEBUG:", "debug message", "key", "value", "42"},
		},
		{
			name:           "error message",
			level:          slog.LevelError,
			message:        "broken",
			attrs:          []any{"error", "boom"},
			expectInOutput: []string{"ERROR:", "broken", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := slog.New(NewPrettyHandler(
				&slog.HandlerOptions{Level: slog.LevelDebug},
				WithDestinationWriter(buf),
			))

			logger.Log(context.Background(), tt.level, tt.message, tt.attrs...)

			output := buf.String()
			for _, s := range tt.expectInOutput {
				assert.Contains(t, output, s)
			}

			assert.True(t, strings.HasSuffix(output, "\n"))
			assert.NotContains(t, output, "\033[", "no colour without WithColour")
		})
	}
}

func TestPrettyHandler_HandleWriteError(t *testing.T) {
	handler := NewPrettyHandler(nil, WithDestinationWriter(errWriter{}))
	r := slog.NewRecord(testTime, slog.LevelWarn, "message", 0)

	err := handler.Handle(context.Background(), r)
	assert.ErrorIs(t, err, ErrIoWrite)
}

func TestPrettyHandler_OutputEmptyAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewPrettyHandler(nil, WithDestinationWriter(buf), WithOutputEmptyAttrs())
	r := slog.NewRecord(testTime, slog.LevelWarn, "message", 0)

	require.NoError(t, handler.Handle(context.Background(), r))
	assert.Contains(t, buf.String(), "{}")
}

var testTime = time.Date(2025, time.June, 1, 12, 30, 0, 0, time.UTC)
