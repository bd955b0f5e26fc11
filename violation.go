// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package callcheck

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/DataDog/callcheck/constraint"
	"github.com/DataDog/callcheck/metadata"
)

// ViolationKind tells which part of the call a violation was raised against
type ViolationKind string

const (
	// MethodParameter is a violation on one argument of a method call
	MethodParameter ViolationKind = "method-parameter"
	// ConstructorParameter is a violation on one argument of a constructor call
	ConstructorParameter ViolationKind = "constructor-parameter"
	// ReturnValue is a violation on the value a method returned
	ReturnValue ViolationKind = "return-value"
)

// Violation is the immutable record of one constraint failing against one
// value. Index and Name are set for the parameter kinds only and are both nil
// for return value violations. Path localizes the failure, descending into
// cascaded object graphs when the failing value sits below the call boundary.
type Violation struct {
	// Callable identifies the validated method or constructor
	Callable metadata.Callable
	// Kind is the part of the call the violation was raised against
	Kind ViolationKind
	// Index is the zero-based parameter index, nil for return values
	Index *int
	// Name is the resolved parameter display name, nil for return values
	Name *string
	// Value is the value the constraint rejected
	Value interface{}
	// Constraint is the constraint that failed
	Constraint constraint.Constraint
	// Message is the constraint failure message
	Message string
	// Path locates the failing value, starting at the parameter name or the
	// return segment
	Path Path
	// Root is the subject instance under validation, nil for constructors
	Root interface{}
}

// Rule returns the stable rule name of the failed constraint
func (v Violation) Rule() string {
	if v.Constraint == nil {
		return ""
	}

	return constraint.Name(v.Constraint)
}

// Equal compares two violations field by field
func (v Violation) Equal(other Violation) bool {
	return reflect.DeepEqual(v, other)
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Callable, v.Path, v.Message)
}

// ViolationSet is an unordered collection of violations. API calls return an
// empty set, never nil, when everything passed.
type ViolationSet []Violation

// Empty reports whether the set holds no violation
func (s ViolationSet) Empty() bool {
	return len(s) == 0
}

// Equal compares two sets regardless of order, matching duplicates one to one
func (s ViolationSet) Equal(other ViolationSet) bool {
	if len(s) != len(other) {
		return false
	}

	matched := make([]bool, len(other))

	for _, violation := range s {
		found := false

		for i := range other {
			if !matched[i] && violation.Equal(other[i]) {
				matched[i] = true
				found = true

				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

func (s ViolationSet) String() string {
	lines := make([]string, 0, len(s))

	for _, violation := range s {
		lines = append(lines, violation.String())
	}

	return strings.Join(lines, "\n")
}
