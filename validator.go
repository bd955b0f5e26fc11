// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

// Package callcheck validates method and constructor call boundaries against
// declared constraints. Callers hand it concrete argument or return values
// together with the callable identity; it looks the applicable declarations up
// in an immutable registry and materializes every failed predicate as a
// violation. Violations are data, never errors: an error return means the call
// itself was invalid, not that a constraint failed.
package callcheck

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/DataDog/callcheck/metadata"
	"github.com/DataDog/callcheck/o11y/metrics"
	metricsnoop "github.com/DataDog/callcheck/o11y/metrics/noop"
	"github.com/DataDog/callcheck/o11y/tags"
)

const instrumentationName = "github.com/DataDog/callcheck"

// Interface is the validation entry point surface. Triggers deciding when to
// validate a call, such as interceptors, wrappers or generated code, should
// depend on it rather than on the concrete validator.
type Interface interface {
	// ValidateParameter validates one method argument against the
	// declarations bound to its index
	ValidateParameter(subject interface{}, callable metadata.Callable, value interface{}, index int, groups ...string) (ViolationSet, error)
	// ValidateAllParameters validates every method argument, the values
	// slice must match the callable arity
	ValidateAllParameters(subject interface{}, callable metadata.Callable, values []interface{}, groups ...string) (ViolationSet, error)
	// ValidateReturnValue validates the value a method returned
	ValidateReturnValue(subject interface{}, callable metadata.Callable, value interface{}, groups ...string) (ViolationSet, error)
	// ValidateConstructorParameter validates one constructor argument
	// against the declarations bound to its index
	ValidateConstructorParameter(callable metadata.Callable, value interface{}, index int, groups ...string) (ViolationSet, error)
	// ValidateAllConstructorParameters validates every constructor
	// argument, the values slice must match the callable arity
	ValidateAllConstructorParameters(callable metadata.Callable, values []interface{}, groups ...string) (ViolationSet, error)
}

// Validator evaluates declared constraints against concrete call values. It
// holds no mutable state across calls and is safe for concurrent use.
type Validator struct {
	registry *metadata.Registry
	names    metadata.NameProvider
	log      *zap.SugaredLogger
	sink     metrics.Sink
	tracer   trace.Tracer
}

var _ Interface = (*Validator)(nil)

// NewValidator builds a validator over an immutable declaration registry
func NewValidator(registry *metadata.Registry, options ...Option) (*Validator, error) {
	if registry == nil {
		return nil, NewUsageErrorf("a declaration registry is required")
	}

	v := &Validator{
		registry: registry,
		names:    registry,
		log:      zap.NewNop().Sugar(),
		tracer:   tracenoop.NewTracerProvider().Tracer(instrumentationName),
	}

	for _, option := range options {
		option(v)
	}

	if v.sink == nil {
		v.sink = metricsnoop.New(v.log)
	}

	return v, nil
}

// ValidateParameter validates one method argument against the declarations
// bound to its index
func (v *Validator) ValidateParameter(subject interface{}, callable metadata.Callable, value interface{}, index int, groups ...string) (ViolationSet, error) {
	return v.instrument("ValidateParameter", callable, MethodParameter, groups, func(run *validationRun) error {
		if err := v.methodTarget(run, subject, callable); err != nil {
			return err
		}

		return v.parameter(run, value, index)
	})
}

// ValidateAllParameters validates every method argument. The values slice
// must hold exactly one value per parameter, in declaration order.
func (v *Validator) ValidateAllParameters(subject interface{}, callable metadata.Callable, values []interface{}, groups ...string) (ViolationSet, error) {
	return v.instrument("ValidateAllParameters", callable, MethodParameter, groups, func(run *validationRun) error {
		if err := v.methodTarget(run, subject, callable); err != nil {
			return err
		}

		if len(values) != run.meta.Arity {
			return NewValueCountError(callable, len(values), run.meta.Arity)
		}

		for index, value := range values {
			if err := v.parameter(run, value, index); err != nil {
				return err
			}
		}

		return nil
	})
}

// ValidateReturnValue validates the value a method returned
func (v *Validator) ValidateReturnValue(subject interface{}, callable metadata.Callable, value interface{}, groups ...string) (ViolationSet, error) {
	return v.instrument("ValidateReturnValue", callable, ReturnValue, groups, func(run *validationRun) error {
		if err := v.methodTarget(run, subject, callable); err != nil {
			return err
		}

		tgt := target{path: NewPath(returnSegment)}

		for _, declaration := range run.meta.Returns {
			if !declaration.Applies(run.groups) {
				continue
			}

			v.evalDeclaration(run, tgt, declaration, value)
		}

		return nil
	})
}

// ValidateConstructorParameter validates one constructor argument against the
// declarations bound to its index
func (v *Validator) ValidateConstructorParameter(callable metadata.Callable, value interface{}, index int, groups ...string) (ViolationSet, error) {
	return v.instrument("ValidateConstructorParameter", callable, ConstructorParameter, groups, func(run *validationRun) error {
		if err := v.constructorTarget(run, callable); err != nil {
			return err
		}

		return v.parameter(run, value, index)
	})
}

// ValidateAllConstructorParameters validates every constructor argument. The
// values slice must hold exactly one value per parameter, in declaration
// order.
func (v *Validator) ValidateAllConstructorParameters(callable metadata.Callable, values []interface{}, groups ...string) (ViolationSet, error) {
	return v.instrument("ValidateAllConstructorParameters", callable, ConstructorParameter, groups, func(run *validationRun) error {
		if err := v.constructorTarget(run, callable); err != nil {
			return err
		}

		if len(values) != run.meta.Arity {
			return NewValueCountError(callable, len(values), run.meta.Arity)
		}

		for index, value := range values {
			if err := v.parameter(run, value, index); err != nil {
				return err
			}
		}

		return nil
	})
}

// target carries the index, resolved name and base path of the value being
// validated so cascaded violations keep pointing at the call boundary they
// entered through
type target struct {
	index *int
	name  *string
	path  Path
}

// validationRun is the state of one top-level validation call. It dies with
// the call, nothing in it is shared or persisted.
type validationRun struct {
	callID     string
	callable   metadata.Callable
	meta       metadata.CallableMeta
	kind       ViolationKind
	root       interface{}
	groups     metadata.Groups
	visited    map[visitKey]visitState
	depth      int
	maxDepth   int
	fellBack   bool
	violations ViolationSet
}

// instrument wraps one validation operation with its call ID, span, metrics
// and logs, then hands the run to the operation body
func (v *Validator) instrument(operation string, callable metadata.Callable, kind ViolationKind, groups []string, fn func(*validationRun) error) (ViolationSet, error) {
	run := &validationRun{
		callID:   uuid.New().String(),
		callable: callable,
		kind:     kind,
		groups:   metadata.NormalizeGroups(groups),
		visited:  map[visitKey]visitState{},
	}

	metricTags := tags.CallableTags(callable.Subject, callable.Name, string(kind))

	_, span := v.tracer.Start(context.Background(), "callcheck."+operation, trace.WithAttributes(
		attribute.String("callcheck.call_id", run.callID),
		attribute.String("callcheck.callable", callable.String()),
		attribute.String("callcheck.kind", string(kind)),
		attribute.String("callcheck.groups", run.groups.Key()),
	))
	defer span.End()

	start := time.Now()
	err := fn(run)

	if mErr := v.sink.MetricValidationDuration(time.Since(start), metricTags); mErr != nil {
		v.log.Errorw("error sending a metric", "error", mErr)
	}

	if mErr := v.sink.MetricValidationPerformed(err == nil, string(kind), metricTags); mErr != nil {
		v.log.Errorw("error sending a metric", "error", mErr)
	}

	if err != nil {
		span.RecordError(err)
		v.log.Debugw("validation call failed", "callID", run.callID, "callable", callable.String(), "error", err)

		return nil, err
	}

	if mErr := v.sink.MetricViolationsFound(len(run.violations), string(kind), metricTags); mErr != nil {
		v.log.Errorw("error sending a metric", "error", mErr)
	}

	if run.maxDepth > 0 {
		if mErr := v.sink.MetricCascadeDepth(float64(run.maxDepth), metricTags); mErr != nil {
			v.log.Errorw("error sending a metric", "error", mErr)
		}
	}

	if run.fellBack {
		if mErr := v.sink.MetricNameResolutionFallback(metricTags); mErr != nil {
			v.log.Errorw("error sending a metric", "error", mErr)
		}
	}

	span.SetAttributes(attribute.Int("callcheck.violations", len(run.violations)))
	v.log.Debugw("validation call completed", "callID", run.callID, "callable", callable.String(), "groups", run.groups.Key(), "violations", len(run.violations))

	if run.violations == nil {
		run.violations = ViolationSet{}
	}

	return run.violations, nil
}

// methodTarget checks the subject and callable of a method operation and
// loads its metadata into the run
func (v *Validator) methodTarget(run *validationRun, subject interface{}, callable metadata.Callable) error {
	if callable.Kind != metadata.KindMethod {
		return NewKindMismatchError(callable, metadata.KindMethod)
	}

	if isNil(subject) {
		return NewNilSubjectError(callable)
	}

	meta, err := v.registry.CallableMeta(callable)
	if err != nil {
		return err
	}

	run.meta = meta
	run.root = subject

	return nil
}

// constructorTarget checks the callable of a constructor operation and loads
// its metadata into the run, constructors have no subject instance
func (v *Validator) constructorTarget(run *validationRun, callable metadata.Callable) error {
	if callable.Kind != metadata.KindConstructor {
		return NewKindMismatchError(callable, metadata.KindConstructor)
	}

	meta, err := v.registry.CallableMeta(callable)
	if err != nil {
		return err
	}

	run.meta = meta

	return nil
}

// parameter validates one parameter value against the declarations bound to
// its index
func (v *Validator) parameter(run *validationRun, value interface{}, index int) error {
	if index < 0 || index >= run.meta.Arity {
		return NewIndexOutOfRangeError(run.callable, index, run.meta.Arity)
	}

	name, err := v.parameterName(run, index)
	if err != nil {
		return err
	}

	idx := index
	tgt := target{
		index: &idx,
		name:  &name,
		path:  NewPath(name),
	}

	for _, declaration := range run.meta.ParamDeclarations(index) {
		if !declaration.Applies(run.groups) {
			continue
		}

		v.evalDeclaration(run, tgt, declaration, value)
	}

	return nil
}

// parameterName resolves the display name of one parameter, flagging the run
// when the synthetic fallback was used
func (v *Validator) parameterName(run *validationRun, index int) (string, error) {
	name, err := v.names.ParameterName(run.callable, index)
	if err != nil {
		return "", err
	}

	if name == metadata.SyntheticName(index) {
		run.fellBack = true
	}

	return name, nil
}

// evalDeclaration applies one declaration to one value, recording a violation
// on predicate failure and descending when the declaration carries a cascade
// marker
func (v *Validator) evalDeclaration(run *validationRun, tgt target, declaration metadata.Declaration, value interface{}) {
	rv := reflect.ValueOf(value)

	if declaration.Constraint != nil {
		if err := declaration.Constraint.ApplyRule(rv); err != nil {
			v.record(run, tgt, declaration.Constraint, value, err, tgt.path)
		}
	}

	if declaration.Cascade {
		v.cascadeValue(run, tgt, rv, tgt.path)
	}
}

// isNil reports whether an interface value is nil or wraps a nil pointer,
// map, slice, channel or function
func isNil(value interface{}) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
