// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package callcheck

import "fmt"

// ViolationError is the reporting error a caller may raise when a validation
// call returned a non-empty set. The engine itself never returns it; turning
// violations into an error is the caller's decision.
type ViolationError struct {
	message    string
	violations ViolationSet
}

// NewViolationError builds a reporting error from a message and a violation
// set. The set is copied; a nil set is normalized to an empty one.
func NewViolationError(message string, violations ViolationSet) *ViolationError {
	copied := make(ViolationSet, len(violations))
	copy(copied, violations)

	return &ViolationError{
		message:    message,
		violations: copied,
	}
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s: %d violation(s)", e.message, len(e.violations))
}

// Violations returns the violations the error was built from. The returned
// set is a copy, mutating it does not affect the error.
func (e *ViolationError) Violations() ViolationSet {
	view := make(ViolationSet, len(e.violations))
	copy(view, e.violations)

	return view
}
