// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/matt-FFFFFF/cukefmt/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func quietContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(ctxlog.NewPrettyHandler(nil, ctxlog.WithDestinationWriter(&bytes.Buffer{})))

	return ctxlog.New(ctx, logger), cancel
}

func startWatch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) *sync.WaitGroup {
	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()

	return &wg
}

func TestWatch_FirstSignalNoCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := quietContext(t)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	wg := startWatch(ctx, sigCh, cancel)

	sigCh <- os.Interrupt

	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, ctx.Err(), "context should not be cancelled after first signal")

	close(sigCh)
	wg.Wait()
}

func TestWatch_SecondSignalCancels(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := quietContext(t)
	defer cancel()

	sigCh := make(chan os.Signal, 2)
	sigCh <- os.Interrupt
	sigCh <- os.Interrupt

	wg := startWatch(ctx, sigCh, cancel)
	wg.Wait()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	_, ok := <-sigCh
	assert.False(t, ok, "signal channel should be closed after second signal")
}

func TestWatch_DifferentSignalsNoCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := quietContext(t)
	defer cancel()

	sigCh := make(chan os.Signal, 2)
	wg := startWatch(ctx, sigCh, cancel)

	sigCh <- os.Interrupt
	sigCh <- syscall.SIGTERM

	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, ctx.Err(), "context should not be cancelled for different signals")

	close(sigCh)
	wg.Wait()
}

func TestWatch_ReturnsWhenContextEnds(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := quietContext(t)
	sigCh := make(chan os.Signal, 1)
	wg := startWatch(ctx, sigCh, cancel)

	cancel()
	wg.Wait()
}

func TestWatch_LaterSignalAfterCancelIsSafe(t *testing.T) {
	ctx, cancel := quietContext(t)
	defer cancel()

	// keeps SIGUSR1 from terminating the test binary
	guard := make(chan os.Signal, 1)
	signal.Notify(guard, syscall.SIGUSR1)

	defer signal.Stop(guard)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGUSR1)

	sigCh <- syscall.SIGUSR1
	sigCh <- syscall.SIGUSR1

	Watch(ctx, sigCh, cancel)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))

	select {
	case <-guard:
	case <-time.After(time.Second):
		t.Fatal("signal was not delivered")
	}
}

func TestNew_StopsDelivery(t *testing.T) {
	ctx, cancel := quietContext(t)
	defer cancel()

	ch := New(ctx, syscall.SIGUSR1)
	assert.Equal(t, 1, cap(ch))
	Stop(ch)
}
