// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package event defines the lifecycle events emitted during a run and the
// listener contract used to observe them.
//
// Listeners are cooperative: Hear must eventually invoke its callback exactly
// once, and nothing else is delivered to the listener until it does.
package event
