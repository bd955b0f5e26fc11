// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package metadata

import (
	"github.com/DataDog/callcheck/constraint"
)

// Declaration binds one constraint to a parameter, a return value, a field or
// a whole object. Target and Index are fixed at construction. Declarations are
// value types and never mutated after a registry build.
type Declaration struct {
	Constraint constraint.Constraint
	Target     TargetKind
	Index      int
	Groups     Groups
	Cascade    bool
}

// Applies returns true when the declaration is active for the requested groups
func (d Declaration) Applies(requested Groups) bool {
	return d.Groups.Intersects(requested)
}

// CallableMeta holds everything declared about one callable
type CallableMeta struct {
	Callable Callable
	Arity    int
	Names    []string
	Params   []Declaration
	Returns  []Declaration
}

// ParamDeclarations returns the declarations bound to one parameter index
func (m CallableMeta) ParamDeclarations(index int) []Declaration {
	var decls []Declaration

	for _, decl := range m.Params {
		if decl.Index == index {
			decls = append(decls, decl)
		}
	}

	return decls
}

// FieldMeta is one declaration bound to a named field of a cascaded type
type FieldMeta struct {
	Field       string
	Declaration Declaration
}

// TypeMeta holds the declared constraints of a type reached by cascade:
// whole-object rules plus per-field rules, in declaration order
type TypeMeta struct {
	Name   string
	Object []Declaration
	Fields []FieldMeta
}
