// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package datadog

import (
	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/DataDog/callcheck/o11y"
	"github.com/DataDog/callcheck/o11y/tracer/types"
)

// Sink describes a datadog tracer sink
type Sink struct{}

// New initiated datadog tracer sink
func New(log *zap.SugaredLogger, cfg types.SinkConfig) (Sink, error) {
	var err error

	tracer.Start(
		tracer.WithSampler(tracer.NewRateSampler(cfg.SampleRate)),
		tracer.WithLogger(o11y.ZapDDLogger{ZapLogger: log}),
	)

	return Sink{}, err
}

// Stop stops the tracer, flushing any pending spans
func (d Sink) Stop() {
	tracer.Stop()
}

// GetSinkName returns the name of the sink
func (d Sink) GetSinkName() string {
	return string(types.SinkDriverDatadog)
}
