// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package datadog

import (
	"os"
	"strings"

	"github.com/DataDog/datadog-go/statsd"
	"go.uber.org/zap"

	"github.com/DataDog/callcheck/o11y/tags"
	"github.com/DataDog/callcheck/report/types"
)

type ReporterDatadogConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// Client is the statsd surface the reporter sends events through
type Client interface {
	Event(e *statsd.Event) error
}

// Reporter describes a Datadog reporter
type Reporter struct {
	client Client
	common types.ReportersCommonConfig
	logger *zap.SugaredLogger
}

// New Datadog Reporter. A nil client connects to the agent at STATSD_URL.
func New(commonConfig types.ReportersCommonConfig, datadogConfig ReporterDatadogConfig, logger *zap.SugaredLogger, client Client) (*Reporter, error) {
	if client == nil {
		url := os.Getenv("STATSD_URL")

		instance, err := statsd.New(url, statsd.WithTags([]string{"app:callcheck"}))
		if err != nil {
			return nil, err
		}

		client = instance

		logger.Info("reporter: datadog reporter connected to statsd")
	}

	return &Reporter{
		client: client,
		common: commonConfig,
		logger: logger,
	}, nil
}

// GetReporterName returns the driver's name
func (n *Reporter) GetReporterName() string {
	return string(types.ReporterDriverDatadog)
}

func (n *Reporter) buildEventTags(report types.Report) []string {
	eventTags := tags.CallableTags(report.Callable.Subject, report.Callable.Name, report.Kind)

	eventTags = append(eventTags, tags.FormatTag("call_id", report.ID))

	if n.common.Source != "" {
		eventTags = append(eventTags, tags.FormatTag("source", n.common.Source))
	}

	return eventTags
}

// Notify sends one statsd event for the report
func (n *Reporter) Notify(report types.Report) error {
	if len(report.Violations) == 0 {
		return nil
	}

	eventTags := n.buildEventTags(report)

	n.logger.Debugw("reporter: sending violation event to datadog", "callID", report.ID, "callable", report.Callable.String(), "datadogTags", strings.Join(eventTags, ", "))

	event := statsd.Event{
		Title:     report.Header(),
		Text:      report.Body(),
		AlertType: statsd.Warning,
		Tags:      eventTags,
	}

	return n.client.Event(&event)
}
