// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

// Package config loads the checkctl configuration from command line flags and
// an optional configuration file. A flag set on the command line wins over the
// file value, the file value wins over the flag default.
package config

import (
	"fmt"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/DataDog/callcheck/report"
)

// Config is the checkctl configuration shared by every command
type Config struct {
	Engine    EngineConfig           `json:"engine" yaml:"engine"`
	Reporters report.ReportersConfig `json:"reporters" yaml:"reporters"`
}

// EngineConfig tunes the validation engine and the observability sinks
// fixture replays are instrumented with
type EngineConfig struct {
	MetricsSink      string   `json:"metricsSink" yaml:"metricsSink"`
	TracerSink       string   `json:"tracerSink" yaml:"tracerSink"`
	TracerSampleRate float64  `json:"tracerSampleRate" yaml:"tracerSampleRate"`
	ProfilerSink     string   `json:"profilerSink" yaml:"profilerSink"`
	Groups           []string `json:"groups" yaml:"groups"`
}

// BindFlags declares every configuration flag on the given flag set, checkctl
// binds them once on the root command so all commands share them
func BindFlags(flags *pflag.FlagSet) {
	flags.String("metrics-sink", "noop", "Metrics sink (datadog, or noop)")

	flags.String("tracer-sink", "noop", "Tracer sink (datadog, or noop)")

	flags.Float64("tracer-sample-rate", 1, "Sample rate of the datadog tracer sink, between 0 and 1")

	flags.String("profiler-sink", "noop", "Profiler sink (datadog, or noop)")

	flags.StringSlice("groups", []string{}, "Validation groups fixtures are checked against when they declare none (defaulted to the default group)")

	flags.String("reporters-common-source", "", "Source tag added to every violation report (defaulted to empty string)")

	flags.Bool("reporters-noop-enabled", false, "Enabler toggle for the NOOP reporter (defaulted to false)")

	flags.Bool("reporters-datadog-enabled", false, "Enabler toggle for the Datadog reporter (defaulted to false)")

	flags.Bool("reporters-http-enabled", false, "Enabler toggle for the HTTP reporter (defaulted to false)")

	flags.String("reporters-http-url", "", "URL to send violation reports to with the HTTP reporter (defaulted to empty string)")

	flags.StringArray("reporters-http-headers", []string{}, "Additional headers to add to the request when sending a report (defaulted to empty list)")

	flags.String("reporters-http-headers-filepath", "", "Filepath to additional headers to add to the request when sending a report (defaulted to empty string)")

	flags.String("reporters-http-auth-url", "", "WARNING/ALPHA: URL to perform an HTTP request to dynamically retrieve an auth token before sending a report")

	flags.StringSlice("reporters-http-auth-headers", []string{}, "WARNING/ALPHA: HTTP headers to provide to the auth request")

	flags.String("reporters-http-auth-token-path", "", "WARNING/ALPHA: JSON path the bearer token is extracted from in the auth response (using GJSON)")

	flags.Bool("reporters-slack-enabled", false, "Enabler toggle for the Slack reporter (defaulted to false)")

	flags.String("reporters-slack-tokenfilepath", "", "File path of the API token for the Slack reporter (defaulted to empty string)")

	flags.String("reporters-slack-channelid", "", "Slack channel ID violation reports are posted to (defaulted to empty string)")
}

// New binds the configuration flags declared by BindFlags to their
// configuration keys, loads the configuration file and returns the merged
// configuration. An explicit configPath must exist, the $HOME/.checkctl.yaml
// fallback is optional.
func New(logger *zap.SugaredLogger, flags *pflag.FlagSet, configPath string) (Config, error) {
	var cfg Config

	v := viper.New()

	if err := v.BindPFlag("engine.metricsSink", flags.Lookup("metrics-sink")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("engine.tracerSink", flags.Lookup("tracer-sink")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("engine.tracerSampleRate", flags.Lookup("tracer-sample-rate")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("engine.profilerSink", flags.Lookup("profiler-sink")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("engine.groups", flags.Lookup("groups")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.common.source", flags.Lookup("reporters-common-source")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.noop.enabled", flags.Lookup("reporters-noop-enabled")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.datadog.enabled", flags.Lookup("reporters-datadog-enabled")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.http.enabled", flags.Lookup("reporters-http-enabled")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.http.url", flags.Lookup("reporters-http-url")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.http.headers", flags.Lookup("reporters-http-headers")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.http.headersFilepath", flags.Lookup("reporters-http-headers-filepath")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.http.authURL", flags.Lookup("reporters-http-auth-url")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.http.authHeaders", flags.Lookup("reporters-http-auth-headers")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.http.authTokenPath", flags.Lookup("reporters-http-auth-token-path")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.slack.enabled", flags.Lookup("reporters-slack-enabled")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.slack.tokenFilepath", flags.Lookup("reporters-slack-tokenfilepath")); err != nil {
		return cfg, err
	}

	if err := v.BindPFlag("reporters.slack.channelID", flags.Lookup("reporters-slack-channelid")); err != nil {
		return cfg, err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)

		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("error loading configuration file: %w", err)
		}
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return cfg, fmt.Errorf("unable to find the home directory: %w", err)
		}

		v.AddConfigPath(home)
		v.SetConfigName(".checkctl")

		// the home configuration file is optional
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return cfg, fmt.Errorf("error loading configuration file: %w", err)
			}
		}
	}

	if used := v.ConfigFileUsed(); used != "" {
		logger.Infow("loading configuration file", "config", used)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshaling configuration: %w", err)
	}

	if cfg.Reporters.Slack.Enabled && cfg.Reporters.Slack.TokenFilepath == "" {
		return cfg, fmt.Errorf("cannot enable the slack reporter without a token filepath")
	}

	if cfg.Reporters.HTTP.Enabled && cfg.Reporters.HTTP.URL == "" {
		return cfg, fmt.Errorf("cannot enable the http reporter without a url")
	}

	return cfg, nil
}
