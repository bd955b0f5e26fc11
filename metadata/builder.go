// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package metadata

import (
	"fmt"

	"github.com/DataDog/callcheck/constraint"
	"github.com/hashicorp/go-multierror"
)

// Builder is the programmatic declaration source. Declarations are registered
// through the fluent sub-builders, checked and frozen into an immutable
// Registry by Build. Every declaration problem is aggregated into one
// multierror instead of failing on the first.
type Builder struct {
	callables []*CallableBuilder
	types     []*TypeBuilder
}

// NewBuilder returns an empty declaration builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Method starts the declarations of an instance-bound callable
func (b *Builder) Method(subject, name string, arity int) *CallableBuilder {
	cb := &CallableBuilder{callable: NewMethod(subject, name), arity: arity}
	b.callables = append(b.callables, cb)

	return cb
}

// Constructor starts the declarations of a constructor callable
func (b *Builder) Constructor(subject, name string, arity int) *CallableBuilder {
	cb := &CallableBuilder{callable: NewConstructor(subject, name), arity: arity}
	b.callables = append(b.callables, cb)

	return cb
}

// Type starts the cascade metadata of a struct type
func (b *Builder) Type(name string) *TypeBuilder {
	tb := &TypeBuilder{name: name}
	b.types = append(b.types, tb)

	return tb
}

// CallableBuilder accumulates the declarations of one callable. Groups and
// Cascade apply to the declarations added by the most recent Parameter or
// Return call.
type CallableBuilder struct {
	callable  Callable
	arity     int
	names     []string
	namesSet  bool
	params    []Declaration
	returns   []Declaration
	hasLast   bool
	lastRet   bool
	lastStart int
	errs      []error
}

// Names declares the display names of every parameter, in order. Declared
// names take precedence over the synthetic arg<N> fallback.
func (cb *CallableBuilder) Names(names ...string) *CallableBuilder {
	if cb.namesSet {
		cb.errs = append(cb.errs, NewErrorf("callable %s: parameter names declared twice", cb.callable))

		return cb
	}

	cb.names = names
	cb.namesSet = true

	return cb
}

// Parameter binds constraints to one parameter index. With no constraints it
// adds a marker-only declaration, which needs a following Cascade call to mean
// anything.
func (cb *CallableBuilder) Parameter(index int, constraints ...constraint.Constraint) *CallableBuilder {
	cb.hasLast, cb.lastRet, cb.lastStart = true, false, len(cb.params)

	if len(constraints) == 0 {
		cb.params = append(cb.params, Declaration{Target: TargetParameter, Index: index})

		return cb
	}

	for _, c := range constraints {
		cb.params = append(cb.params, Declaration{Constraint: c, Target: TargetParameter, Index: index})
	}

	return cb
}

// Return binds constraints to the return value
func (cb *CallableBuilder) Return(constraints ...constraint.Constraint) *CallableBuilder {
	cb.hasLast, cb.lastRet, cb.lastStart = true, true, len(cb.returns)

	if len(constraints) == 0 {
		cb.returns = append(cb.returns, Declaration{Target: TargetReturn})

		return cb
	}

	for _, c := range constraints {
		cb.returns = append(cb.returns, Declaration{Constraint: c, Target: TargetReturn})
	}

	return cb
}

// Groups restricts the declarations of the last Parameter or Return call to
// the given groups
func (cb *CallableBuilder) Groups(groups ...string) *CallableBuilder {
	decls := cb.lastDeclarations()
	if decls == nil {
		cb.errs = append(cb.errs, NewErrorf("callable %s: Groups must follow a Parameter or Return call", cb.callable))

		return cb
	}

	for i := range decls {
		decls[i].Groups = NormalizeGroups(groups)
	}

	return cb
}

// Cascade marks the declarations of the last Parameter or Return call for
// recursive validation of the value's own type metadata
func (cb *CallableBuilder) Cascade() *CallableBuilder {
	decls := cb.lastDeclarations()
	if decls == nil {
		cb.errs = append(cb.errs, NewErrorf("callable %s: Cascade must follow a Parameter or Return call", cb.callable))

		return cb
	}

	for i := range decls {
		decls[i].Cascade = true
	}

	return cb
}

func (cb *CallableBuilder) lastDeclarations() []Declaration {
	if !cb.hasLast {
		return nil
	}

	if cb.lastRet {
		return cb.returns[cb.lastStart:]
	}

	return cb.params[cb.lastStart:]
}

// TypeBuilder accumulates the cascade metadata of one type. Groups and Cascade
// apply to the declarations added by the most recent Field or Object call.
type TypeBuilder struct {
	name      string
	object    []Declaration
	fields    []FieldMeta
	hasLast   bool
	lastObj   bool
	lastStart int
	errs      []error
}

// Object binds whole-object constraints (struct rules) to the type
func (tb *TypeBuilder) Object(constraints ...constraint.Constraint) *TypeBuilder {
	tb.hasLast, tb.lastObj, tb.lastStart = true, true, len(tb.object)

	if len(constraints) == 0 {
		tb.errs = append(tb.errs, NewErrorf("type %s: Object needs at least one constraint", tb.name))

		return tb
	}

	for _, c := range constraints {
		tb.object = append(tb.object, Declaration{Constraint: c, Target: TargetObject})
	}

	return tb
}

// Field binds constraints to a named field. With no constraints it adds a
// marker-only declaration, which needs a following Cascade call to mean
// anything.
func (tb *TypeBuilder) Field(field string, constraints ...constraint.Constraint) *TypeBuilder {
	tb.hasLast, tb.lastObj, tb.lastStart = true, false, len(tb.fields)

	if len(constraints) == 0 {
		tb.fields = append(tb.fields, FieldMeta{Field: field, Declaration: Declaration{Target: TargetField}})

		return tb
	}

	for _, c := range constraints {
		tb.fields = append(tb.fields, FieldMeta{Field: field, Declaration: Declaration{Constraint: c, Target: TargetField}})
	}

	return tb
}

// Groups restricts the declarations of the last Field or Object call to the
// given groups
func (tb *TypeBuilder) Groups(groups ...string) *TypeBuilder {
	if !tb.hasLast {
		tb.errs = append(tb.errs, NewErrorf("type %s: Groups must follow a Field or Object call", tb.name))

		return tb
	}

	if tb.lastObj {
		for i := tb.lastStart; i < len(tb.object); i++ {
			tb.object[i].Groups = NormalizeGroups(groups)
		}

		return tb
	}

	for i := tb.lastStart; i < len(tb.fields); i++ {
		tb.fields[i].Declaration.Groups = NormalizeGroups(groups)
	}

	return tb
}

// Cascade marks the declarations of the last Field call for recursive
// validation. A whole-object declaration can not cascade.
func (tb *TypeBuilder) Cascade() *TypeBuilder {
	if !tb.hasLast || tb.lastObj {
		tb.errs = append(tb.errs, NewErrorf("type %s: Cascade must follow a Field call", tb.name))

		return tb
	}

	for i := tb.lastStart; i < len(tb.fields); i++ {
		tb.fields[i].Declaration.Cascade = true
	}

	return tb
}

// Build checks every registered declaration and freezes them into an immutable
// Registry. All problems are reported together.
func (b *Builder) Build() (*Registry, error) {
	var result *multierror.Error

	callables := make(map[Callable]CallableMeta, len(b.callables))
	types := make(map[string]TypeMeta, len(b.types))
	count := 0

	for _, cb := range b.callables {
		for _, err := range cb.errs {
			result = multierror.Append(result, err)
		}

		c := cb.callable

		if c.Subject == "" || c.Name == "" {
			result = multierror.Append(result, NewErrorf("callable %q: subject and name are both required", c))
		}

		if cb.arity < 0 {
			result = multierror.Append(result, NewErrorf("callable %s: negative arity %d", c, cb.arity))
		}

		if _, dup := callables[c]; dup {
			result = multierror.Append(result, NewErrorf("callable %s declared twice", c))

			continue
		}

		if cb.namesSet && len(cb.names) != cb.arity {
			result = multierror.Append(result, NewErrorf("callable %s: %d parameter names declared for arity %d", c, len(cb.names), cb.arity))
		}

		params := append([]Declaration(nil), cb.params...)
		returns := append([]Declaration(nil), cb.returns...)

		for i := range params {
			if params[i].Index < 0 || params[i].Index >= cb.arity {
				result = multierror.Append(result, NewErrorf("callable %s: parameter index %d out of range for arity %d", c, params[i].Index, cb.arity))
			}

			result = finalizeDeclaration(&params[i], fmt.Sprintf("callable %s parameter %d", c, params[i].Index), result)
		}

		for i := range returns {
			result = finalizeDeclaration(&returns[i], fmt.Sprintf("callable %s return value", c), result)
		}

		callables[c] = CallableMeta{
			Callable: c,
			Arity:    cb.arity,
			Names:    append([]string(nil), cb.names...),
			Params:   params,
			Returns:  returns,
		}
		count += len(params) + len(returns)
	}

	for _, tb := range b.types {
		for _, err := range tb.errs {
			result = multierror.Append(result, err)
		}

		if tb.name == "" {
			result = multierror.Append(result, NewErrorf("type metadata declared without a type name"))

			continue
		}

		if _, dup := types[tb.name]; dup {
			result = multierror.Append(result, NewErrorf("type %s declared twice", tb.name))

			continue
		}

		object := append([]Declaration(nil), tb.object...)
		fields := append([]FieldMeta(nil), tb.fields...)

		for i := range object {
			result = finalizeDeclaration(&object[i], fmt.Sprintf("type %s object rule", tb.name), result)
		}

		for i := range fields {
			if fields[i].Field == "" {
				result = multierror.Append(result, NewErrorf("type %s: field declaration without a field name", tb.name))
			}

			result = finalizeDeclaration(&fields[i].Declaration, fmt.Sprintf("type %s field %s", tb.name, fields[i].Field), result)
		}

		types[tb.name] = TypeMeta{Name: tb.name, Object: object, Fields: fields}
		count += len(object) + len(fields)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &Registry{callables: callables, types: types, count: count}, nil
}

// finalizeDeclaration normalizes groups and rejects declarations that can
// never do anything
func finalizeDeclaration(decl *Declaration, where string, result *multierror.Error) *multierror.Error {
	decl.Groups = NormalizeGroups(decl.Groups)

	if decl.Groups.Contains("") {
		result = multierror.Append(result, NewErrorf("%s: empty group name", where))
	}

	if decl.Constraint == nil && !decl.Cascade {
		result = multierror.Append(result, NewErrorf("%s: declaration needs a constraint or a cascade marker", where))
	}

	return result
}
