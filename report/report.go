// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

// Package report delivers violation reports to external systems. Reporters
// are observability, a reporter failure is logged by the caller and never
// turns into a validation error.
package report

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DataDog/callcheck"
	"github.com/DataDog/callcheck/metadata"
	"github.com/DataDog/callcheck/report/datadog"
	http "github.com/DataDog/callcheck/report/http"
	"github.com/DataDog/callcheck/report/noop"
	"github.com/DataDog/callcheck/report/slack"
	"github.com/DataDog/callcheck/report/types"
)

// Report is the value handed to reporters, one per validated call
type Report = types.Report

type ReportersConfig struct {
	Common  types.ReportersCommonConfig   `json:"common" yaml:"common"`
	Noop    noop.ReporterNoopConfig       `json:"noop" yaml:"noop"`
	Datadog datadog.ReporterDatadogConfig `json:"datadog" yaml:"datadog"`
	HTTP    http.ReporterHTTPConfig       `json:"http" yaml:"http"`
	Slack   slack.ReporterSlackConfig     `json:"slack" yaml:"slack"`
}

type Reporter interface {
	GetReporterName() string
	Notify(types.Report) error
}

// NewReport builds a report from the outcome of one validated call
func NewReport(callable metadata.Callable, kind callcheck.ViolationKind, groups []string, violations callcheck.ViolationSet) Report {
	summaries := make([]types.ViolationSummary, 0, len(violations))

	for _, violation := range violations {
		summaries = append(summaries, types.ViolationSummary{
			Path:    violation.Path.String(),
			Rule:    violation.Rule(),
			Message: violation.Message,
		})
	}

	return Report{
		ID:         uuid.New().String(),
		Callable:   callable,
		Kind:       string(kind),
		Groups:     groups,
		Violations: summaries,
		OccurredAt: time.Now(),
	}
}

// GetReporters returns the initiated Reporter instances the config enables
func GetReporters(config ReportersConfig, logger *zap.SugaredLogger) (reporters []Reporter, err error) {
	err = nil

	if config.Noop.Enabled {
		rep := noop.New(logger)
		reporters = append(reporters, rep)
	}

	if config.Slack.Enabled {
		rep, slackErr := slack.New(config.Common, config.Slack, logger)
		if slackErr != nil {
			err = slackErr
		} else {
			reporters = append(reporters, rep)
		}
	}

	if config.Datadog.Enabled {
		rep, ddogErr := datadog.New(config.Common, config.Datadog, logger, nil)
		if ddogErr != nil {
			err = ddogErr
		} else {
			reporters = append(reporters, rep)
		}
	}

	if config.HTTP.Enabled {
		rep, httpErr := http.New(config.Common, config.HTTP, logger)
		if httpErr != nil {
			err = httpErr
		} else {
			reporters = append(reporters, rep)
		}
	}

	return reporters, err
}
