// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

// Package mapping loads constraint declarations from YAML mapping documents.
// A document declares callables, their parameter names and the constraints
// bound to parameters, return values and cascaded types; loading one yields
// the same immutable registry the programmatic builder produces.
package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	goyaml "sigs.k8s.io/yaml"

	"github.com/DataDog/callcheck/constraint"
	"github.com/DataDog/callcheck/metadata"
)

// Document is the top level schema of a mapping file
type Document struct {
	Version   string            `json:"version,omitempty"`
	Callables []CallableMapping `json:"callables,omitempty"`
	Types     []TypeMapping     `json:"types,omitempty"`
}

// CallableMapping declares one method or constructor, its arity and the
// constraints bound to its parameters and return value
type CallableMapping struct {
	Subject        string             `json:"subject"`
	Name           string             `json:"name"`
	Kind           string             `json:"kind,omitempty"`
	Arity          int                `json:"arity"`
	ParameterNames []string           `json:"parameterNames,omitempty"`
	Parameters     []ParameterMapping `json:"parameters,omitempty"`
	Return         *ReturnMapping     `json:"return,omitempty"`
}

// ParameterMapping binds constraints to one parameter index
type ParameterMapping struct {
	Index       int                 `json:"index"`
	Constraints []ConstraintMapping `json:"constraints,omitempty"`
	Groups      []string            `json:"groups,omitempty"`
	Cascade     bool                `json:"cascade,omitempty"`
}

// ReturnMapping binds constraints to the return value
type ReturnMapping struct {
	Constraints []ConstraintMapping `json:"constraints,omitempty"`
	Groups      []string            `json:"groups,omitempty"`
	Cascade     bool                `json:"cascade,omitempty"`
}

// TypeMapping declares the cascade metadata of one type, whole object
// constraints and per field ones
type TypeMapping struct {
	Name   string              `json:"name"`
	Object []ConstraintMapping `json:"object,omitempty"`
	Fields []FieldMapping      `json:"fields,omitempty"`
}

// FieldMapping binds constraints to one field of a cascaded type
type FieldMapping struct {
	Name        string              `json:"name"`
	Constraints []ConstraintMapping `json:"constraints,omitempty"`
	Groups      []string            `json:"groups,omitempty"`
	Cascade     bool                `json:"cascade,omitempty"`
}

// ConstraintMapping names one constraint rule and its configuration, e.g.
// {rule: minimum, with: 1}
type ConstraintMapping struct {
	Rule string      `json:"rule"`
	With interface{} `json:"with,omitempty"`
}

// Load reads a mapping document and builds the registry it declares. Every
// problem found in the document is aggregated into the returned error.
func Load(path string) (*metadata.Registry, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}

	return doc.Build()
}

// ReadDocument reads and parses a mapping document without building it
func ReadDocument(path string) (*Document, error) {
	fullPath, err := filepath.Abs(path)
	if err != nil {
		return nil, metadata.NewErrorf("resolving mapping document path %s: %w", path, err)
	}

	raw, err := os.ReadFile(filepath.Clean(fullPath))
	if err != nil {
		return nil, metadata.NewErrorf("reading mapping document %s: %w", path, err)
	}

	return ParseDocument(raw)
}

// ParseDocument strictly parses mapping document bytes, unknown fields are
// rejected. A document declaring nothing is an error, it is most likely a
// partially written file.
func ParseDocument(raw []byte) (*Document, error) {
	var doc Document

	if err := goyaml.UnmarshalStrict(raw, &doc); err != nil {
		return nil, metadata.NewErrorf("parsing mapping document: %w", err)
	}

	if len(doc.Callables) == 0 && len(doc.Types) == 0 {
		return nil, metadata.NewErrorf("parsing mapping document: no callables or types declared")
	}

	return &doc, nil
}

// Build turns a parsed document into an immutable registry, aggregating
// every declaration problem into one error
func (d *Document) Build() (*metadata.Registry, error) {
	builder := metadata.NewBuilder()

	var result *multierror.Error

	for _, callable := range d.Callables {
		result = callable.apply(builder, result)
	}

	for _, typeMapping := range d.Types {
		result = typeMapping.apply(builder, result)
	}

	registry, err := builder.Build()
	if err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return registry, nil
}

func (m CallableMapping) apply(builder *metadata.Builder, result *multierror.Error) *multierror.Error {
	var callable *metadata.CallableBuilder

	switch strings.ToLower(m.Kind) {
	case "", string(metadata.KindMethod):
		callable = builder.Method(m.Subject, m.Name, m.Arity)
	case string(metadata.KindConstructor):
		callable = builder.Constructor(m.Subject, m.Name, m.Arity)
	default:
		return multierror.Append(result, metadata.NewErrorf("callable %s.%s: unknown kind %q, expected method or constructor", m.Subject, m.Name, m.Kind))
	}

	if len(m.ParameterNames) > 0 {
		callable.Names(m.ParameterNames...)
	}

	for _, parameter := range m.Parameters {
		constraints, errs := resolveConstraints(fmt.Sprintf("callable %s.%s parameter %d", m.Subject, m.Name, parameter.Index), parameter.Constraints)
		result = multierror.Append(result, errs.WrappedErrors()...)

		// skip declarations with unresolvable rules, they are already reported
		if errs.ErrorOrNil() != nil {
			continue
		}

		callable.Parameter(parameter.Index, constraints...)

		if len(parameter.Groups) > 0 {
			callable.Groups(parameter.Groups...)
		}

		if parameter.Cascade {
			callable.Cascade()
		}
	}

	if m.Return != nil {
		constraints, errs := resolveConstraints(fmt.Sprintf("callable %s.%s return value", m.Subject, m.Name), m.Return.Constraints)
		result = multierror.Append(result, errs.WrappedErrors()...)

		if errs.ErrorOrNil() == nil {
			callable.Return(constraints...)

			if len(m.Return.Groups) > 0 {
				callable.Groups(m.Return.Groups...)
			}

			if m.Return.Cascade {
				callable.Cascade()
			}
		}
	}

	return result
}

func (m TypeMapping) apply(builder *metadata.Builder, result *multierror.Error) *multierror.Error {
	typeBuilder := builder.Type(m.Name)

	if len(m.Object) > 0 {
		constraints, errs := resolveConstraints(fmt.Sprintf("type %s object", m.Name), m.Object)
		result = multierror.Append(result, errs.WrappedErrors()...)

		if errs.ErrorOrNil() == nil {
			typeBuilder.Object(constraints...)
		}
	}

	for _, field := range m.Fields {
		constraints, errs := resolveConstraints(fmt.Sprintf("type %s field %s", m.Name, field.Name), field.Constraints)
		result = multierror.Append(result, errs.WrappedErrors()...)

		if errs.ErrorOrNil() != nil {
			continue
		}

		typeBuilder.Field(field.Name, constraints...)

		if len(field.Groups) > 0 {
			typeBuilder.Groups(field.Groups...)
		}

		if field.Cascade {
			typeBuilder.Cascade()
		}
	}

	return result
}

// resolveConstraints looks every named rule up and builds it with its
// configuration
func resolveConstraints(where string, mappings []ConstraintMapping) ([]constraint.Constraint, *multierror.Error) {
	var result *multierror.Error

	constraints := make([]constraint.Constraint, 0, len(mappings))

	for _, m := range mappings {
		factory, ok := constraint.Lookup(m.Rule)
		if !ok {
			result = multierror.Append(result, metadata.NewErrorf("%s: unknown constraint rule %q, known rules are %s", where, m.Rule, strings.Join(constraint.FactoryNames(), ", ")))

			continue
		}

		built, err := factory(m.With)
		if err != nil {
			result = multierror.Append(result, metadata.NewErrorf("%s: building constraint %q: %w", where, m.Rule, err))

			continue
		}

		constraints = append(constraints, built)
	}

	return constraints, result
}
