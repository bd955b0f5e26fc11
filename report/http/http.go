// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DataDog/jsonapi"
	"github.com/avast/retry-go"
	"go.uber.org/zap"

	"github.com/DataDog/callcheck/report/types"
)

const contentTypeJSONAPI = "application/vnd.api+json"

type ReporterHTTPConfig struct {
	Enabled         bool     `json:"enabled" yaml:"enabled"`
	URL             string   `json:"url" yaml:"url"`
	Headers         []string `json:"headers" yaml:"headers"`
	HeadersFilepath string   `json:"headersFilepath" yaml:"headersFilepath"`
	AuthURL         string   `json:"authURL" yaml:"authURL"`
	AuthHeaders     []string `json:"authHeaders" yaml:"authHeaders"`
	AuthTokenPath   string   `json:"authTokenPath" yaml:"authTokenPath"`
}

// Reporter describes an HTTP reporter
type Reporter struct {
	common            types.ReportersCommonConfig
	client            *http.Client
	url               string
	headers           map[string][]string
	logger            *zap.SugaredLogger
	authTokenProvider BearerAuthTokenProvider
}

// ReportEvent is the JSON:API resource posted for one report
type ReportEvent struct {
	ID                string                   `jsonapi:"primary,violation-reports"`
	NotificationTitle string                   `jsonapi:"attribute" json:"notification-title"`
	EventMessage      string                   `jsonapi:"attribute" json:"message"`
	Subject           string                   `jsonapi:"attribute" json:"subject"`
	Callable          string                   `jsonapi:"attribute" json:"callable"`
	CallableKind      string                   `jsonapi:"attribute" json:"callable-kind"`
	ViolationKind     string                   `jsonapi:"attribute" json:"violation-kind"`
	Source            string                   `jsonapi:"attribute" json:"source"`
	Groups            []string                 `jsonapi:"attribute" json:"groups,omitempty"`
	Violations        []types.ViolationSummary `jsonapi:"attribute" json:"violations"`
	Timestamp         int64                    `jsonapi:"attribute" json:"timestamp"`
}

// New HTTP Reporter
func New(commonConfig types.ReportersCommonConfig, httpConfig ReporterHTTPConfig, logger *zap.SugaredLogger) (*Reporter, error) {
	if httpConfig.URL == "" {
		return nil, fmt.Errorf("http reporter: missing URL")
	}

	client := &http.Client{
		Timeout: 1 * time.Minute,
	}

	headers, err := parseHeaders(httpConfig.Headers)
	if err != nil {
		return nil, err
	}

	if httpConfig.HeadersFilepath != "" {
		raw, err := os.ReadFile(filepath.Clean(httpConfig.HeadersFilepath))
		if err != nil {
			return nil, fmt.Errorf("http reporter: unable to read headers file %s: %w", httpConfig.HeadersFilepath, err)
		}

		fileHeaders, err := parseHeaders(strings.Split(strings.TrimSpace(string(raw)), "\n"))
		if err != nil {
			return nil, err
		}

		for headerKey, headerValues := range fileHeaders {
			headers[headerKey] = append(headers[headerKey], headerValues...)
		}
	}

	var authTokenProvider BearerAuthTokenProvider

	if httpConfig.AuthURL != "" {
		authHeaders, err := parseFlatHeaders(httpConfig.AuthHeaders)
		if err != nil {
			return nil, err
		}

		authTokenProvider = NewBearerAuthTokenProvider(logger, client, httpConfig.AuthURL, authHeaders, httpConfig.AuthTokenPath)
	}

	return &Reporter{
		common:            commonConfig,
		client:            client,
		url:               httpConfig.URL,
		headers:           headers,
		logger:            logger,
		authTokenProvider: authTokenProvider,
	}, nil
}

// parseHeaders parses key:value lines, empty lines are skipped
func parseHeaders(rawHeaders []string) (map[string][]string, error) {
	headers := make(map[string][]string)

	for _, header := range rawHeaders {
		if header == "" {
			continue
		}

		splittedHeader := strings.SplitN(header, ":", 2)
		if len(splittedHeader) != 2 {
			return nil, fmt.Errorf("http reporter: invalid header, must be of format key:value: %s", header)
		}

		headers[splittedHeader[0]] = append(headers[splittedHeader[0]], strings.TrimSpace(splittedHeader[1]))
	}

	return headers, nil
}

func parseFlatHeaders(rawHeaders []string) (map[string]string, error) {
	parsed, err := parseHeaders(rawHeaders)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(parsed))

	for headerKey, headerValues := range parsed {
		headers[headerKey] = headerValues[len(headerValues)-1]
	}

	return headers, nil
}

// GetReporterName returns the driver's name
func (n *Reporter) GetReporterName() string {
	return string(types.ReporterDriverHTTP)
}

func eventFromReport(report types.Report, source string) ReportEvent {
	return ReportEvent{
		ID:                report.ID,
		NotificationTitle: report.Header(),
		EventMessage:      report.Body(),
		Subject:           report.Callable.Subject,
		Callable:          report.Callable.Name,
		CallableKind:      string(report.Callable.Kind),
		ViolationKind:     report.Kind,
		Source:            source,
		Groups:            report.Groups,
		Violations:        report.Violations,
		Timestamp:         report.OccurredAt.UnixMilli(),
	}
}

// Notify posts the report as a JSON:API document, retrying transient failures
func (n *Reporter) Notify(report types.Report) error {
	if len(report.Violations) == 0 {
		return nil
	}

	event := eventFromReport(report, n.common.Source)

	body, err := jsonapi.Marshal(&event)
	if err != nil {
		return fmt.Errorf("http reporter: unable to marshal report: %w", err)
	}

	headers := http.Header{}

	for headerKey, headerValues := range n.headers {
		for _, headerValue := range headerValues {
			headers.Add(headerKey, headerValue)
		}
	}

	headers.Set("Content-Type", contentTypeJSONAPI)

	if n.authTokenProvider != nil {
		token, err := n.authTokenProvider.AuthToken(context.Background())
		if err != nil {
			return fmt.Errorf("http reporter: unable to retrieve auth token: %w", err)
		}

		headers.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	n.logger.Debugw("reporter: sending violation report", "callID", report.ID, "callable", report.Callable.String(), "url", n.url)

	return retry.Do(func() error {
		req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("http reporter: unable to build request: %w", err)
		}

		req.Header = headers.Clone()

		res, err := n.client.Do(req)
		if err != nil {
			return fmt.Errorf("http reporter: unable to send report: %w", err)
		}

		if err := res.Body.Close(); err != nil {
			n.logger.Warnw("an error occurred while closing response body", "error", err)
		}

		if res.StatusCode >= 300 || res.StatusCode < 200 {
			return fmt.Errorf("http reporter: received %d status code from sent report", res.StatusCode)
		}

		return nil
	}, retry.Attempts(3))
}
