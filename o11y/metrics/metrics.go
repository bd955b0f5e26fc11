// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package metrics

import (
	"fmt"
	"time"

	"github.com/DataDog/callcheck/o11y/metrics/datadog"
	"github.com/DataDog/callcheck/o11y/metrics/noop"
	"github.com/DataDog/callcheck/o11y/metrics/types"
	"go.uber.org/zap"
)

// Sink describes a metric sink
type Sink interface {
	Close() error
	GetSinkName() string
	MetricValidationPerformed(succeed bool, kind string, tags []string) error
	MetricValidationDuration(duration time.Duration, tags []string) error
	MetricViolationsFound(count int, kind string, tags []string) error
	MetricCascadeDepth(depth float64, tags []string) error
	MetricNameResolutionFallback(tags []string) error
	MetricRegistryBuilt(tags []string) error
	MetricRegistryDeclarationsGauge(gauge float64) error
	MetricRegistryReloaded(succeed bool, tags []string) error
	MetricReportSent(succeed bool, reporter string, tags []string) error
	MetricRestart() error
}

// GetSink returns an initiated metrics sink
func GetSink(log *zap.SugaredLogger, driver types.SinkDriver, app types.SinkApp) (Sink, error) {
	switch driver {
	case types.SinkDriverDatadog:
		return datadog.New(app)
	case types.SinkDriverNoop:
		return noop.New(log), nil
	default:
		return nil, fmt.Errorf("unsupported metrics sink: %s", driver)
	}
}
