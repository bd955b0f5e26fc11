// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package datadog

import (
	"fmt"
	"os"
	"time"

	"github.com/DataDog/callcheck/o11y/metrics/types"
	"github.com/DataDog/datadog-go/statsd"
)

const (
	metricPrefixEngine   = "callcheck.engine."
	metricPrefixCheckctl = "callcheck.checkctl."
)

// Sink describes a Datadog sink (statsd)
type Sink struct {
	client *statsd.Client
	prefix string
}

// New instantiate a new datadog statsd provider
func New(app types.SinkApp) (Sink, error) {
	url := os.Getenv("STATSD_URL")

	instance, err := statsd.New(url, statsd.WithTags([]string{"app:" + string(app)}))
	if err != nil {
		return Sink{}, err
	}

	prefix, err := GetPrefixFromApp(app)
	if err != nil {
		return Sink{}, err
	}

	return Sink{
		client: instance,
		prefix: prefix,
	}, nil
}

// GetPrefixFromApp returns the datadog metrics prefix given the App
func GetPrefixFromApp(app types.SinkApp) (string, error) {
	switch app {
	case types.SinkAppEngine:
		return metricPrefixEngine, nil
	case types.SinkAppCheckctl:
		return metricPrefixCheckctl, nil
	default:
		return "", fmt.Errorf("unknown sink app")
	}
}

// Close closes the statsd client
func (d Sink) Close() error {
	return d.client.Close()
}

// GetSinkName returns the name of the sink
func (d Sink) GetSinkName() string {
	return string(types.SinkDriverDatadog)
}

// MetricValidationPerformed increments the validation.performed metric every time
// a top-level validation call completes, whatever its outcome
func (d Sink) MetricValidationPerformed(succeed bool, kind string, tags []string) error {
	status := boolToStatus(succeed)
	t := []string{"status:" + status, "kind:" + kind}
	t = append(t, tags...)

	return d.metricWithStatus(d.prefix+"validation.performed", t)
}

// MetricValidationDuration sends a timing metric for a top-level validation call
func (d Sink) MetricValidationDuration(duration time.Duration, tags []string) error {
	return d.timing(d.prefix+"validation.duration", duration, tags)
}

// MetricViolationsFound counts constraint violations found during a validation call,
// tagged with the validated target kind
func (d Sink) MetricViolationsFound(count int, kind string, tags []string) error {
	t := []string{"kind:" + kind}
	t = append(t, tags...)

	return d.client.Count(d.prefix+"violations.found", int64(count), t, 1)
}

// MetricCascadeDepth sends the deepest cascade level reached by a validation call
func (d Sink) MetricCascadeDepth(depth float64, tags []string) error {
	return d.client.Gauge(d.prefix+"cascade.depth", depth, tags, 1)
}

// MetricNameResolutionFallback increments when a parameter name can not be resolved
// and the engine falls back to its positional name
func (d Sink) MetricNameResolutionFallback(tags []string) error {
	return d.metricWithStatus(d.prefix+"names.fallback", tags)
}

// MetricRegistryBuilt increments every time a declaration registry is built
func (d Sink) MetricRegistryBuilt(tags []string) error {
	return d.metricWithStatus(d.prefix+"registry.built", tags)
}

// MetricRegistryDeclarationsGauge sends the registry.declarations metric containing
// the number of constraint declarations held by the active registry
func (d Sink) MetricRegistryDeclarationsGauge(gauge float64) error {
	return d.client.Gauge(d.prefix+"registry.declarations", gauge, []string{}, 1)
}

// MetricRegistryReloaded increments every time a watched declaration file is reloaded
func (d Sink) MetricRegistryReloaded(succeed bool, tags []string) error {
	t := []string{"status:" + boolToStatus(succeed)}
	t = append(t, tags...)

	return d.metricWithStatus(d.prefix+"registry.reloaded", t)
}

// MetricReportSent increments every time a violation report is handed to a reporter
func (d Sink) MetricReportSent(succeed bool, reporter string, tags []string) error {
	t := []string{"status:" + boolToStatus(succeed), "reporter:" + reporter}
	t = append(t, tags...)

	return d.metricWithStatus(d.prefix+"report.sent", t)
}

// MetricRestart sends an increment of the restart metric
func (d Sink) MetricRestart() error {
	return d.metricWithStatus(d.prefix+"restart", []string{})
}

func boolToStatus(succeed bool) string {
	var status string
	if succeed {
		status = "succeed"
	} else {
		status = "failed"
	}

	return status
}

func (d Sink) metricWithStatus(name string, tags []string) error {
	return d.client.Incr(name, tags, 1)
}

func (d Sink) timing(name string, duration time.Duration, tags []string) error {
	return d.client.Timing(name, duration, tags, 1)
}
