// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package listener

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/matt-FFFFFF/cukefmt/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

var errFailingWriter = errors.New("disk full")

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errFailingWriter
}

func TestFormatter_HearDispatchesToHandler(t *testing.T) {
	var got []event.Name

	f := NewFormatter(Options{Writer: &bytes.Buffer{}}, Handlers{
		event.StepResult: func(_ context.Context, e event.Event, callback event.Callback) {
			got = append(got, e.Name)
			callback()
		},
	})

	called := 0
	f.Hear(context.Background(), event.New(event.StepResult, nil), func() { called++ })

	assert.Equal(t, []event.Name{event.StepResult}, got)
	assert.Equal(t, 1, called)
}

func TestFormatter_HearWithoutHandlerCallsBack(t *testing.T) {
	f := NewFormatter(Options{}, nil)

	called := 0
	f.Hear(context.Background(), event.New(event.BeforeFeature, nil), func() { called++ })

	assert.Equal(t, 1, called)
}

func TestFormatter_Log(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewFormatter(Options{Writer: buf}, nil)

	f.Log(".")
	f.Log("F")

	assert.Equal(t, ".F", buf.String())
	assert.NoError(t, f.Err())
}

func TestFormatter_LogKeepsFirstError(t *testing.T) {
	f := NewFormatter(Options{Writer: failingWriter{}}, nil)

	f.Log(".")
	f.Log(".")

	err := f.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLogWrite)
	assert.ErrorIs(t, err, errFailingWriter)
}
