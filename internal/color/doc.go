// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI colour codes.
//
// Colour is enabled when stdout is a terminal, or when FORCE_COLOR is set.
// NO_COLOR always wins and disables colour output.
package color
