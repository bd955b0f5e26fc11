// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package metadata

import (
	"errors"
	"fmt"
	"sort"
)

// Registry is the immutable declaration set a validator works against. It is
// built once by a Builder or the mapping loader, never mutated afterwards, and
// safe for unbounded concurrent reads. Hot reload swaps whole registries
// instead of mutating one. Lookup results share the registry's backing slices
// and must be treated as read-only.
type Registry struct {
	callables map[Callable]CallableMeta
	types     map[string]TypeMeta
	count     int
}

// CallableMeta returns everything declared about a callable, failing with a
// metadata error for a callable the registry never saw
func (r *Registry) CallableMeta(c Callable) (CallableMeta, error) {
	meta, ok := r.callables[c]
	if !ok {
		return CallableMeta{}, NewUnknownCallableError(c)
	}

	return meta, nil
}

// Known returns true when the callable has declarations registered
func (r *Registry) Known(c Callable) bool {
	_, ok := r.callables[c]

	return ok
}

// TypeMeta returns the cascade metadata of a type, if any was declared
func (r *Registry) TypeMeta(name string) (TypeMeta, bool) {
	meta, ok := r.types[name]

	return meta, ok
}

// Callables returns every declared callable, sorted for stable iteration
func (r *Registry) Callables() []Callable {
	list := make([]Callable, 0, len(r.callables))

	for c := range r.callables {
		list = append(list, c)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Subject != list[j].Subject {
			return list[i].Subject < list[j].Subject
		}

		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}

		return list[i].Kind < list[j].Kind
	})

	return list
}

// Types returns every declared cascade type name, sorted
func (r *Registry) Types() []string {
	list := make([]string, 0, len(r.types))

	for name := range r.types {
		list = append(list, name)
	}

	sort.Strings(list)

	return list
}

// DeclarationCount returns the total number of declarations held
func (r *Registry) DeclarationCount() int {
	return r.count
}

// ParameterName resolves a parameter display name from the declared names,
// falling back to the synthetic positional name. The registry is the default
// NameProvider of a validator built on it.
func (r *Registry) ParameterName(c Callable, index int) (string, error) {
	meta, ok := r.callables[c]
	if !ok {
		return "", NewNameResolutionError(c, index, errors.New("unknown callable"))
	}

	if index < 0 || index >= meta.Arity {
		return "", NewNameResolutionError(c, index, fmt.Errorf("index out of range for arity %d", meta.Arity))
	}

	if index < len(meta.Names) && meta.Names[index] != "" {
		return meta.Names[index], nil
	}

	return SyntheticName(index), nil
}
