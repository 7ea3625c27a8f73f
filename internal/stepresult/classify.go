// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package stepresult

// Classify maps a StepResult onto exactly one Status.
//
// The predicates are checked in a fixed order and the first true one wins:
// successful, pending, skipped, undefined. Anything else is failed.
// IsFailed is never consulted, so a result with every predicate false
// (a broken producer) is reported as failed. A nil result, including a nil
// *Result, is failed too.
func Classify(r StepResult) Status {
	switch {
	case r == nil:
		return StatusFailed
	case r.IsSuccessful():
		return StatusPassed
	case r.IsPending():
		return StatusPending
	case r.IsSkipped():
		return StatusSkipped
	case r.IsUndefined():
		return StatusUndefined
	default:
		return StatusFailed
	}
}

// Consistent reports whether exactly one predicate of r is true.
func Consistent(r StepResult) bool {
	if r == nil {
		return false
	}

	n := 0

	for _, ok := range []bool{r.IsSuccessful(), r.IsPending(), r.IsFailed(), r.IsSkipped(), r.IsUndefined()} {
		if ok {
			n++
		}
	}

	return n == 1
}
