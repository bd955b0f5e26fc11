// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package metadata

import "fmt"

// Error is a declaration problem: an unknown callable, a malformed declaration,
// a bad mapping document. It carries a key/value context describing where the
// problem sits.
type Error struct {
	context map[string]string
	Err     error
}

// NewError wraps a cause into a metadata error
func NewError(err error) Error {
	return Error{Err: err}
}

// NewErrorf builds a metadata error from a format string
func NewErrorf(format string, args ...interface{}) Error {
	return Error{Err: fmt.Errorf(format, args...)}
}

// NewUnknownCallableError is the lookup failure for a callable the registry never saw
func NewUnknownCallableError(c Callable) Error {
	return NewErrorf("no declarations registered for callable %s", c).
		WithContext("subject", c.Subject).
		WithContext("callable", c.Name).
		WithContext("kind", string(c.Kind))
}

func (e Error) Error() string {
	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}

// Context returns the key/value context of the error, never nil
func (e Error) Context() map[string]string {
	if e.context == nil {
		return map[string]string{}
	}

	return e.context
}

// WithContext returns a copy of the error carrying one more context entry
func (e Error) WithContext(key, value string) Error {
	context := make(map[string]string, len(e.context)+1)

	for k, v := range e.context {
		context[k] = v
	}

	context[key] = value
	e.context = context

	return e
}

// NameResolutionError is a failure to resolve a parameter display name. It is
// a distinct kind so callers can tell it apart from declaration problems; a
// batch validation call hitting one aborts entirely rather than reporting
// partial results under wrong names.
type NameResolutionError struct {
	context map[string]string
	Err     error
}

// NewNameResolutionError builds a name resolution failure for one parameter
func NewNameResolutionError(c Callable, index int, cause error) NameResolutionError {
	return NameResolutionError{
		context: map[string]string{
			"subject":  c.Subject,
			"callable": c.Name,
			"index":    fmt.Sprintf("%d", index),
		},
		Err: fmt.Errorf("resolving name of parameter %d of %s: %w", index, c, cause),
	}
}

func (e NameResolutionError) Error() string {
	return e.Err.Error()
}

func (e NameResolutionError) Unwrap() error {
	return e.Err
}

// Context returns the key/value context of the error, never nil
func (e NameResolutionError) Context() map[string]string {
	if e.context == nil {
		return map[string]string{}
	}

	return e.context
}
