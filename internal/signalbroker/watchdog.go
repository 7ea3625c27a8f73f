// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/cukefmt/internal/ctxlog"
)

// Watch reads sigCh until the second signal of a kind arrives, then stops
// signal delivery to sigCh, closes it and cancels. It returns early when ctx ends or sigCh is closed.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, ok := seen[sig]; ok {
				ctxlog.Warn(ctx, "watchdog", "detail", "second signal received, cancelling replay", "signal", sig.String())
				Stop(sigCh)
				close(sigCh)
				cancel()

				return
			}

			ctxlog.Warn(ctx, "watchdog", "detail", "signal received, send again to cancel", "signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}
