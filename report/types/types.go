// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/DataDog/callcheck/metadata"
)

// ReportersCommonConfig is the configuration shared by every reporter driver
type ReportersCommonConfig struct {
	Source string `json:"source" yaml:"source"`
}

// ReporterDriver names one reporter implementation
type ReporterDriver string

const (
	// ReporterDriverNoop is a log-only driver mainly used for testing
	ReporterDriverNoop ReporterDriver = "noop"

	// ReporterDriverDatadog is the Datadog driver, sending one statsd event per report
	ReporterDriverDatadog ReporterDriver = "datadog"

	// ReporterDriverHTTP is the HTTP driver, posting reports as JSON:API documents
	ReporterDriverHTTP ReporterDriver = "http"

	// ReporterDriverSlack is the Slack driver
	ReporterDriverSlack ReporterDriver = "slack"
)

// ViolationSummary is the rendered form of one violation carried by a report
type ViolationSummary struct {
	Path    string `json:"path"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Report is the value handed to reporters after a validated call, one report
// per call. ID correlates the report with the engine's call logs and spans.
type Report struct {
	ID         string
	Callable   metadata.Callable
	Kind       string
	Groups     []string
	Violations []ViolationSummary
	OccurredAt time.Time
}

// Header returns the one-line summary of the report
func (r Report) Header() string {
	return fmt.Sprintf("Call %s violated %d constraint(s)", r.Callable, len(r.Violations))
}

// Body returns the rendered violations, one line per violation
func (r Report) Body() string {
	lines := make([]string, 0, len(r.Violations))

	for _, violation := range r.Violations {
		lines = append(lines, fmt.Sprintf("- %s: %s", violation.Path, violation.Message))
	}

	return strings.Join(lines, "\n")
}
