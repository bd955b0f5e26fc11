// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/DataDog/callcheck"
	"github.com/DataDog/callcheck/config"
	"github.com/DataDog/callcheck/mapping"
	"github.com/DataDog/callcheck/metadata"
	"github.com/DataDog/callcheck/o11y/metrics"
	metricstypes "github.com/DataDog/callcheck/o11y/metrics/types"
	"github.com/DataDog/callcheck/o11y/profiler"
	profilertypes "github.com/DataDog/callcheck/o11y/profiler/types"
	"github.com/DataDog/callcheck/o11y/tags"
	"github.com/DataDog/callcheck/o11y/tracer"
	tracertypes "github.com/DataDog/callcheck/o11y/tracer/types"
	"github.com/DataDog/callcheck/report"
)

var fixturesCmd = &cobra.Command{
	Use:   "fixtures <mapping-file> <fixtures-file>",
	Short: "replay recorded calls against a mapping document",
	Long: `runs every recorded call of the fixtures file through the validation engine
and prints the violations found, exiting with a non zero status when any call violates its constraints.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New(logger, rootCmd.PersistentFlags(), cfgFile)
		if err != nil {
			return err
		}

		return runFixtures(cfg, args[0], args[1])
	},
}

// fixturesDocument is the top level schema of a fixtures file
type fixturesDocument struct {
	Fixtures []recordedCall `yaml:"fixtures"`
}

// recordedCall is one call to replay, parameters are positional and must
// match the declared arity of the callable
type recordedCall struct {
	Callable   string         `yaml:"callable"`
	Kind       string         `yaml:"kind"`
	Groups     []string       `yaml:"groups"`
	Parameters []interface{}  `yaml:"parameters"`
	Return     *returnFixture `yaml:"return"`
}

// returnFixture wraps the returned value so a recorded nil return stays
// distinguishable from no return at all
type returnFixture struct {
	Value interface{} `yaml:"value"`
}

// recordedSubject stands in for the live instance a recorded method call was
// made on, replayed calls only carry values
type recordedSubject struct{}

func runFixtures(cfg config.Config, mappingPath, fixturesPath string) error {
	registry, err := mapping.Load(mappingPath)
	if err != nil {
		return fmt.Errorf("building registry from mapping document %s: %w", mappingPath, err)
	}

	document, err := readFixtures(fixturesPath)
	if err != nil {
		return err
	}

	sink, err := metrics.GetSink(logger, metricstypes.SinkDriver(cfg.Engine.MetricsSink), metricstypes.SinkAppCheckctl)
	if err != nil {
		return fmt.Errorf("error while creating metric sink: %w", err)
	}

	if sink.MetricRestart() != nil {
		logger.Errorw("error sending MetricRestart", "sink", sink.GetSinkName())
	}

	// handle metrics sink client close on exit
	defer func() {
		if err := sink.Close(); err != nil {
			logger.Errorw("error closing metrics sink client", "sink", sink.GetSinkName(), "error", err)
		}
	}()

	tracerSink, err := tracer.GetSink(logger, tracertypes.SinkConfig{SinkDriver: cfg.Engine.TracerSink, SampleRate: cfg.Engine.TracerSampleRate})
	if err != nil {
		return fmt.Errorf("error while creating tracer sink: %w", err)
	}

	defer tracerSink.Stop()

	profilerSink, err := profiler.GetSink(logger, profilertypes.SinkConfig{SinkDriver: cfg.Engine.ProfilerSink})
	if err != nil {
		return fmt.Errorf("error while creating profiler sink: %w", err)
	}

	defer profilerSink.Stop()

	reporters, err := report.GetReporters(cfg.Reporters, logger)
	if err != nil {
		return fmt.Errorf("error while creating reporters: %w", err)
	}

	validator, err := callcheck.NewValidator(registry,
		callcheck.WithLogger(logger),
		callcheck.WithMetricsSink(sink),
		callcheck.WithTracing(cfg.Engine.TracerSink == string(tracertypes.SinkDriverDatadog)),
	)
	if err != nil {
		return err
	}

	total := 0

	for index, fixture := range document.Fixtures {
		violations, err := replayCall(validator, fixture, cfg.Engine.Groups)
		if err != nil {
			return fmt.Errorf("fixture %d (%s): %w", index, fixture.Callable, err)
		}

		if violations.Empty() {
			fmt.Printf("✅ %s passed\n", fixture.Callable)

			continue
		}

		total += len(violations)

		fmt.Printf("❌ %s violated %d constraint(s)\n", fixture.Callable, len(violations))

		for _, violation := range violations {
			fmt.Printf("\t⚠️  %s: %s\n", violation.Path, violation.Message)
		}

		notifyReporters(reporters, sink, violations, fixtureGroups(fixture, cfg.Engine.Groups))
	}

	if total > 0 {
		return fmt.Errorf("%d violation(s) found across %d fixture(s)", total, len(document.Fixtures))
	}

	fmt.Printf("✅ %d fixture(s) passed\n", len(document.Fixtures))

	return nil
}

func replayCall(validator callcheck.Interface, fixture recordedCall, defaultGroups []string) (callcheck.ViolationSet, error) {
	callable, err := parseCallable(fixture)
	if err != nil {
		return nil, err
	}

	groups := fixtureGroups(fixture, defaultGroups)

	var violations callcheck.ViolationSet

	switch callable.Kind {
	case metadata.KindConstructor:
		violations, err = validator.ValidateAllConstructorParameters(callable, fixture.Parameters, groups...)
	default:
		violations, err = validator.ValidateAllParameters(recordedSubject{}, callable, fixture.Parameters, groups...)
	}

	if err != nil {
		return nil, err
	}

	if fixture.Return != nil {
		returned, err := validator.ValidateReturnValue(recordedSubject{}, callable, fixture.Return.Value, groups...)
		if err != nil {
			return nil, err
		}

		violations = append(violations, returned...)
	}

	return violations, nil
}

// parseCallable resolves the subject.name identity and kind of a recorded
// call, the kind defaults to method
func parseCallable(fixture recordedCall) (metadata.Callable, error) {
	parts := strings.SplitN(fixture.Callable, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return metadata.Callable{}, fmt.Errorf("invalid callable %q, expected a subject.name identity", fixture.Callable)
	}

	switch fixture.Kind {
	case "", string(metadata.KindMethod):
		return metadata.NewMethod(parts[0], parts[1]), nil
	case string(metadata.KindConstructor):
		return metadata.NewConstructor(parts[0], parts[1]), nil
	default:
		return metadata.Callable{}, fmt.Errorf("unknown callable kind %q, expected method or constructor", fixture.Kind)
	}
}

func fixtureGroups(fixture recordedCall, defaultGroups []string) []string {
	if len(fixture.Groups) > 0 {
		return fixture.Groups
	}

	return defaultGroups
}

func notifyReporters(reporters []report.Reporter, sink metrics.Sink, violations callcheck.ViolationSet, groups []string) {
	if len(reporters) == 0 || violations.Empty() {
		return
	}

	first := violations[0]
	built := report.NewReport(first.Callable, first.Kind, groups, violations)

	for _, reporter := range reporters {
		err := reporter.Notify(built)

		if mErr := sink.MetricReportSent(err == nil, reporter.GetReporterName(), tags.CallableTags(first.Callable.Subject, first.Callable.Name, string(first.Kind))); mErr != nil {
			logger.Errorw("error sending a metric", "error", mErr)
		}

		if err != nil {
			logger.Errorw("error notifying a reporter", "reporter", reporter.GetReporterName(), "error", err)
		}
	}
}

func readFixtures(path string) (fixturesDocument, error) {
	var document fixturesDocument

	fullPath, err := filepath.Abs(path)
	if err != nil {
		return document, fmt.Errorf("resolving fixtures file path %s: %w", path, err)
	}

	data, err := os.ReadFile(filepath.Clean(fullPath))
	if err != nil {
		return document, fmt.Errorf("reading fixtures file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&document); err != nil {
		return document, fmt.Errorf("parsing fixtures file %s: %w", path, err)
	}

	if len(document.Fixtures) == 0 {
		return document, fmt.Errorf("parsing fixtures file %s: no fixtures declared", path)
	}

	return document, nil
}
