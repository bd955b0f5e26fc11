// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package callcheck

import (
	"fmt"
	"strings"
)

// returnSegment is the first path segment of every return value violation
const returnSegment = "return"

// Path locates a failing value within a validated call. The first segment is
// the resolved parameter name or the return segment; descent into cascaded
// object graphs appends field names and element indices.
type Path []string

// NewPath builds a path from its segments
func NewPath(segments ...string) Path {
	return Path(segments)
}

// Child returns a new path extended with the given segment, leaving the
// receiver untouched
func (p Path) Child(segment string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)

	return append(child, segment)
}

// Index returns a new path extended with a slice or array index segment
func (p Path) Index(index int) Path {
	return p.Child(fmt.Sprintf("[%d]", index))
}

// Key returns a new path extended with a map key segment
func (p Path) Key(key string) Path {
	return p.Child(fmt.Sprintf("[%s]", key))
}

func (p Path) String() string {
	return strings.Join(p, ">")
}

// Equal compares two paths segment by segment
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}

	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}

	return true
}
