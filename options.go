// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package callcheck

import (
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/DataDog/callcheck/metadata"
	"github.com/DataDog/callcheck/o11y/metrics"
)

// Option customizes a validator at construction time
type Option func(*Validator)

// WithLogger sets the logger validation calls log through, a nop logger is
// used otherwise
func WithLogger(log *zap.SugaredLogger) Option {
	return func(v *Validator) {
		if log != nil {
			v.log = log
		}
	}
}

// WithMetricsSink sets the sink validation metrics are sent to, the noop
// sink is used otherwise
func WithMetricsSink(sink metrics.Sink) Option {
	return func(v *Validator) {
		if sink != nil {
			v.sink = sink
		}
	}
}

// WithNameProvider overrides how parameter display names are resolved. The
// registry itself is the default provider, returning declared names and
// falling back to synthetic arg<N> names.
func WithNameProvider(provider metadata.NameProvider) Option {
	return func(v *Validator) {
		if provider != nil {
			v.names = provider
		}
	}
}

// WithTracing opens a span on the global tracer provider around every
// validation call when enabled
func WithTracing(enabled bool) Option {
	return func(v *Validator) {
		if enabled {
			v.tracer = otel.Tracer(instrumentationName)
		}
	}
}
