// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker turns OS termination signals into context cancellation.
// By default it listens for os.Interrupt, SIGINT, SIGTERM and SIGQUIT.
//
// The first signal of a kind is only reported, so a replay that is nearly
// done can finish printing its summary. The second signal of the same kind
// cancels the run.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/cukefmt/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New returns a channel that receives the given signals, or the termination
// signals when none are given.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "listening for signals", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop stops signal delivery to ch.
func Stop(ch chan os.Signal) {
	signal.Stop(ch)
}
