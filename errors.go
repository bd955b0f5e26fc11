// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package callcheck

import (
	"fmt"

	"github.com/DataDog/callcheck/metadata"
)

// UsageError is a caller mistake: an index outside the callable arity, a
// value count not matching the arity, a nil subject for an instance-bound
// callable. Usage errors abort the call immediately, they are never
// violations.
type UsageError struct {
	context map[string]string
	Err     error
}

// NewUsageError wraps a cause into a usage error
func NewUsageError(err error) UsageError {
	return UsageError{Err: err}
}

// NewUsageErrorf builds a usage error from a format string
func NewUsageErrorf(format string, args ...interface{}) UsageError {
	return UsageError{Err: fmt.Errorf(format, args...)}
}

// NewIndexOutOfRangeError is the usage error for a parameter index outside
// the callable arity
func NewIndexOutOfRangeError(c metadata.Callable, index, arity int) UsageError {
	return NewUsageErrorf("parameter index %d out of range for %s of arity %d", index, c, arity).
		WithContext("subject", c.Subject).
		WithContext("callable", c.Name).
		WithContext("index", fmt.Sprintf("%d", index))
}

// NewValueCountError is the usage error for a batch call supplying a value
// count different from the callable arity
func NewValueCountError(c metadata.Callable, got, want int) UsageError {
	return NewUsageErrorf("%d values supplied for %s of arity %d", got, c, want).
		WithContext("subject", c.Subject).
		WithContext("callable", c.Name)
}

// NewNilSubjectError is the usage error for validating an instance-bound
// callable without an instance
func NewNilSubjectError(c metadata.Callable) UsageError {
	return NewUsageErrorf("a non-nil subject instance is required to validate method %s", c).
		WithContext("subject", c.Subject).
		WithContext("callable", c.Name)
}

// NewKindMismatchError is the usage error for handing a constructor to a
// method operation or the other way around
func NewKindMismatchError(c metadata.Callable, want metadata.CallableKind) UsageError {
	return NewUsageErrorf("operation expects a %s callable, got %s %s", want, c.Kind, c).
		WithContext("subject", c.Subject).
		WithContext("callable", c.Name).
		WithContext("kind", string(c.Kind))
}

func (e UsageError) Error() string {
	return e.Err.Error()
}

func (e UsageError) Unwrap() error {
	return e.Err
}

// Context returns the key/value context of the error, never nil
func (e UsageError) Context() map[string]string {
	if e.context == nil {
		return map[string]string{}
	}

	return e.context
}

// WithContext returns a copy of the error carrying one more context entry
func (e UsageError) WithContext(key, value string) UsageError {
	context := make(map[string]string, len(e.context)+1)

	for k, v := range e.context {
		context[k] = v
	}

	context[key] = value
	e.context = context

	return e
}
