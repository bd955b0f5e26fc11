// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package metrics

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// SinkMock is a mock of the metrics Sink interface
type SinkMock struct {
	mock.Mock
}

//nolint:golint
func (m *SinkMock) Close() error {
	args := m.Called()

	return args.Error(0)
}

//nolint:golint
func (m *SinkMock) GetSinkName() string {
	args := m.Called()

	return args.String(0)
}

//nolint:golint
func (m *SinkMock) MetricValidationPerformed(succeed bool, kind string, tags []string) error {
	args := m.Called(succeed, kind, tags)

	return args.Error(0)
}

//nolint:golint
func (m *SinkMock) MetricValidationDuration(duration time.Duration, tags []string) error {
	args := m.Called(duration, tags)

	return args.Error(0)
}

//nolint:golint
func (m *SinkMock) MetricViolationsFound(count int, kind string, tags []string) error {
	args := m.Called(count, kind, tags)

	return args.Error(0)
}

//nolint:golint
func (m *SinkMock) MetricCascadeDepth(depth float64, tags []string) error {
	args := m.Called(depth, tags)

	return args.Error(0)
}

//nolint:golint
func (m *SinkMock) MetricNameResolutionFallback(tags []string) error {
	args := m.Called(tags)

	return args.Error(0)
}

//nolint:golint
func (m *SinkMock) MetricRegistryBuilt(tags []string) error {
	args := m.Called(tags)

	return args.Error(0)
}

//nolint:golint
func (m *SinkMock) MetricRegistryDeclarationsGauge(gauge float64) error {
	args := m.Called(gauge)

	return args.Error(0)
}

//nolint:golint
func (m *SinkMock) MetricRegistryReloaded(succeed bool, tags []string) error {
	args := m.Called(succeed, tags)

	return args.Error(0)
}

//nolint:golint
func (m *SinkMock) MetricReportSent(succeed bool, reporter string, tags []string) error {
	args := m.Called(succeed, reporter, tags)

	return args.Error(0)
}

//nolint:golint
func (m *SinkMock) MetricRestart() error {
	args := m.Called()

	return args.Error(0)
}
