// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package stepresult describes the outcome of a single executed step.
//
// The execution engine hands results over as a StepResult, which exposes the
// outcome as five predicates. Exactly one predicate is expected to be true.
// Results built by this module use the Result type, which derives its
// predicates from a single Status and therefore cannot contradict itself.
package stepresult
