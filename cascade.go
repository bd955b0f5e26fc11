// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package callcheck

import (
	"fmt"
	"reflect"

	"github.com/DataDog/callcheck/constraint"
)

// visitState tracks one cascade target through a single validation call
type visitState int

const (
	visitInProgress visitState = iota + 1
	visitCompleted
)

// visitKey identifies one (object identity, group set) pair in the visited
// ledger. Identity is the pointer of the pointer, map or slice the cascade
// reached the object through; plain values cannot form cycles and are not
// tracked. The slice length disambiguates sub-slices sharing a backing array.
type visitKey struct {
	ptr    uintptr
	typ    string
	length int
	groups string
}

// record appends one violation found at the given path inside the current
// target
func (v *Validator) record(run *validationRun, tgt target, failed constraint.Constraint, value interface{}, err error, path Path) {
	run.violations = append(run.violations, Violation{
		Callable:   run.callable,
		Kind:       run.kind,
		Index:      tgt.index,
		Name:       tgt.name,
		Value:      value,
		Constraint: failed,
		Message:    err.Error(),
		Path:       path,
		Root:       run.root,
	})
}

// cascadeValue descends into one cascade-marked value, walking pointers,
// interfaces and collections down to struct values carrying declared type
// metadata. Nil values are a no-op. Re-entry into an already visited
// (object, group set) pair is suppressed so cyclic graphs terminate.
func (v *Validator) cascadeValue(run *validationRun, tgt target, rv reflect.Value, path Path) {
	switch rv.Kind() {
	case reflect.Invalid:
		return
	case reflect.Interface:
		if rv.IsNil() {
			return
		}

		v.cascadeValue(run, tgt, rv.Elem(), path)
	case reflect.Ptr:
		if rv.IsNil() {
			return
		}

		key := visitKey{ptr: rv.Pointer(), typ: rv.Type().String(), groups: run.groups.Key()}
		if run.visited[key] != 0 {
			return
		}

		run.visited[key] = visitInProgress
		v.cascadeValue(run, tgt, rv.Elem(), path)
		run.visited[key] = visitCompleted
	case reflect.Slice:
		if rv.IsNil() {
			return
		}

		key := visitKey{ptr: rv.Pointer(), typ: rv.Type().String(), length: rv.Len(), groups: run.groups.Key()}
		if run.visited[key] != 0 {
			return
		}

		run.visited[key] = visitInProgress

		for i := 0; i < rv.Len(); i++ {
			v.cascadeValue(run, tgt, rv.Index(i), path.Index(i))
		}

		run.visited[key] = visitCompleted
	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			v.cascadeValue(run, tgt, rv.Index(i), path.Index(i))
		}
	case reflect.Map:
		if rv.IsNil() {
			return
		}

		key := visitKey{ptr: rv.Pointer(), typ: rv.Type().String(), groups: run.groups.Key()}
		if run.visited[key] != 0 {
			return
		}

		run.visited[key] = visitInProgress

		iter := rv.MapRange()
		for iter.Next() {
			v.cascadeValue(run, tgt, iter.Value(), path.Key(fmt.Sprintf("%v", iter.Key().Interface())))
		}

		run.visited[key] = visitCompleted
	case reflect.Struct:
		v.cascadeStruct(run, tgt, rv, path)
	default:
		return
	}
}

// cascadeStruct applies a struct's own declared type metadata, whole-object
// declarations first, then per-field declarations and nested cascades
func (v *Validator) cascadeStruct(run *validationRun, tgt target, rv reflect.Value, path Path) {
	typeMeta, ok := v.registry.TypeMeta(rv.Type().Name())
	if !ok {
		return
	}

	run.depth++
	if run.depth > run.maxDepth {
		run.maxDepth = run.depth
	}

	defer func() {
		run.depth--
	}()

	for _, declaration := range typeMeta.Object {
		if !declaration.Applies(run.groups) || declaration.Constraint == nil {
			continue
		}

		if err := declaration.Constraint.ApplyRule(rv); err != nil {
			v.record(run, tgt, declaration.Constraint, interfaceOf(rv), err, path)
		}
	}

	for _, fieldMeta := range typeMeta.Fields {
		declaration := fieldMeta.Declaration
		if !declaration.Applies(run.groups) {
			continue
		}

		field := rv.FieldByName(fieldMeta.Field)
		if !field.IsValid() || !field.CanInterface() {
			v.log.Debugw("declared field not found on cascaded type", "callID", run.callID, "type", rv.Type().Name(), "field", fieldMeta.Field)

			continue
		}

		fieldPath := path.Child(fieldMeta.Field)

		if declaration.Constraint != nil {
			if err := declaration.Constraint.ApplyRule(field); err != nil {
				v.record(run, tgt, declaration.Constraint, interfaceOf(field), err, fieldPath)
			}
		}

		if declaration.Cascade {
			v.cascadeValue(run, tgt, field, fieldPath)
		}
	}
}

// interfaceOf unwraps a reflect value, returning nil when the value cannot
// be interfaced
func interfaceOf(rv reflect.Value) interface{} {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil
	}

	return rv.Interface()
}
