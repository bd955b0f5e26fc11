// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package noop

import (
	"time"

	"github.com/DataDog/callcheck/o11y/metrics/types"
	"go.uber.org/zap"
)

// Sink describes a no-op sink
type Sink struct {
	log *zap.SugaredLogger
}

// New ...
func New(log *zap.SugaredLogger) Sink {
	return Sink{
		log,
	}
}

// Close returns nil
func (n Sink) Close() error {
	return nil
}

// GetSinkName returns the name of the sink
func (n Sink) GetSinkName() string {
	return string(types.SinkDriverNoop)
}

// MetricValidationPerformed is emitted every time a top-level validation call
// completes, the `succeed` bool argument is false when the call was aborted by
// a usage error
func (n Sink) MetricValidationPerformed(succeed bool, kind string, tags []string) error {
	n.log.Debugf("NOOP: MetricValidationPerformed %v %s\n", succeed, kind)

	return nil
}

// MetricValidationDuration indicates the duration of a top-level validation call
func (n Sink) MetricValidationDuration(duration time.Duration, tags []string) error {
	n.log.Debugf("NOOP: MetricValidationDuration %v\n", duration)

	return nil
}

// MetricViolationsFound counts constraint violations found during a validation
// call, tagged with the validated target kind
func (n Sink) MetricViolationsFound(count int, kind string, tags []string) error {
	n.log.Debugf("NOOP: MetricViolationsFound %d %s\n", count, kind)

	return nil
}

// MetricCascadeDepth indicates the deepest cascade level reached by a validation call
func (n Sink) MetricCascadeDepth(depth float64, tags []string) error {
	n.log.Debugf("NOOP: MetricCascadeDepth %f\n", depth)

	return nil
}

// MetricNameResolutionFallback is emitted when a parameter name can not be resolved
// and the engine falls back to its positional name
func (n Sink) MetricNameResolutionFallback(tags []string) error {
	n.log.Debugf("NOOP: MetricNameResolutionFallback %s\n", tags)

	return nil
}

// MetricRegistryBuilt is emitted every time a declaration registry is built
func (n Sink) MetricRegistryBuilt(tags []string) error {
	n.log.Debugf("NOOP: MetricRegistryBuilt %s\n", tags)

	return nil
}

// MetricRegistryDeclarationsGauge indicates the number of constraint declarations
// held by the active registry
func (n Sink) MetricRegistryDeclarationsGauge(gauge float64) error {
	n.log.Debugf("NOOP: MetricRegistryDeclarationsGauge %f\n", gauge)

	return nil
}

// MetricRegistryReloaded is emitted every time a watched declaration file is reloaded
func (n Sink) MetricRegistryReloaded(succeed bool, tags []string) error {
	n.log.Debugf("NOOP: MetricRegistryReloaded %v %s\n", succeed, tags)

	return nil
}

// MetricReportSent is emitted every time a violation report is handed to a reporter
func (n Sink) MetricReportSent(succeed bool, reporter string, tags []string) error {
	n.log.Debugf("NOOP: MetricReportSent %v %s\n", succeed, reporter)

	return nil
}

// MetricRestart is emitted once, every time checkctl or an embedding process starts up
func (n Sink) MetricRestart() error {
	n.log.Debugf("NOOP: MetricRestart")

	return nil
}
