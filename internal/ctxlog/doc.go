// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger built on log/slog.
//
// The default logger writes one line per record to stderr, so log output never
// interleaves with the progress stream on stdout. The level is read from the
// CUKEFMT_LOG_LEVEL environment variable: DEBUG, INFO, WARN or ERROR.
// Any other value falls back to WARN.
package ctxlog
