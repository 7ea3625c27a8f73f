// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package listener contains the run listeners that turn events into output.
//
// Formatter is the generic base: it routes each event to the handler registered
// for its name and exposes Log for raw output. ProgressFormatter prints one
// glyph per step and the Summarizer report at the end of the run. Summarizer
// aggregates scenario and step outcomes and renders the final report.
package listener
