// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package noop

import (
	"go.uber.org/zap"

	"github.com/DataDog/callcheck/report/types"
)

type ReporterNoopConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// Reporter describes a NOOP reporter
type Reporter struct {
	log *zap.SugaredLogger
}

// New NOOP Reporter
func New(log *zap.SugaredLogger) Reporter {
	return Reporter{
		log,
	}
}

// GetReporterName returns the driver's name
func (n Reporter) GetReporterName() string {
	return string(types.ReporterDriverNoop)
}

// Notify logs the report instead of sending it anywhere
func (n Reporter) Notify(report types.Report) error {
	if len(report.Violations) == 0 {
		return nil
	}

	n.log.Debugf("NOOP: %s\n%s", report.Header(), report.Body())

	return nil
}
