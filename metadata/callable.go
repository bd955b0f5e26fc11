// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

// Package metadata holds the declaration model: which callables exist, which
// constraints are bound to their parameters and return values, and the type
// metadata cascaded values are validated against.
package metadata

import "fmt"

// CallableKind distinguishes instance-bound methods from constructors
type CallableKind string

const (
	// KindMethod is an instance-bound callable, validated with a subject instance
	KindMethod CallableKind = "method"

	// KindConstructor is a callable producing the subject, validated without an instance
	KindConstructor CallableKind = "constructor"
)

// Callable identifies one method or constructor of a subject type. It is
// comparable and used as a registry key.
type Callable struct {
	Subject string
	Name    string
	Kind    CallableKind
}

// NewMethod returns the identity of an instance-bound callable
func NewMethod(subject, name string) Callable {
	return Callable{Subject: subject, Name: name, Kind: KindMethod}
}

// NewConstructor returns the identity of a constructor callable
func NewConstructor(subject, name string) Callable {
	return Callable{Subject: subject, Name: name, Kind: KindConstructor}
}

func (c Callable) String() string {
	return fmt.Sprintf("%s.%s", c.Subject, c.Name)
}

// TargetKind says which part of a call or type a declaration binds to
type TargetKind string

const (
	// TargetParameter binds a declaration to one parameter index
	TargetParameter TargetKind = "parameter"

	// TargetReturn binds a declaration to the return value
	TargetReturn TargetKind = "return"

	// TargetField binds a declaration to a named field of a cascaded type
	TargetField TargetKind = "field"

	// TargetObject binds a declaration to a whole cascaded object
	TargetObject TargetKind = "object"
)
