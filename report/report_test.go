// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package report_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/DataDog/callcheck"
	"github.com/DataDog/callcheck/constraint"
	"github.com/DataDog/callcheck/metadata"
	"github.com/DataDog/callcheck/report"
	httpreporter "github.com/DataDog/callcheck/report/http"
	"github.com/DataDog/callcheck/report/noop"
	"github.com/DataDog/callcheck/report/slack"
	"github.com/DataDog/callcheck/report/types"
)

var _ = Describe("Report", func() {
	var logger *zap.SugaredLogger

	BeforeEach(func() {
		logger = zaptest.NewLogger(GinkgoT()).Sugar()
	})

	Describe("NewReport", func() {
		It("summarizes the violations of one call", func() {
			// Arrange
			callable := metadata.NewMethod("orderService", "placeOrder")
			index := 0
			name := "arg0"

			violations := callcheck.ViolationSet{
				{
					Callable:   callable,
					Kind:       callcheck.MethodParameter,
					Index:      &index,
					Name:       &name,
					Constraint: constraint.NotNil(true),
					Message:    "callcheck:constraint:NotNil: field must not be nil",
					Path:       callcheck.NewPath("arg0"),
				},
			}

			// Act
			built := report.NewReport(callable, callcheck.MethodParameter, []string{"default"}, violations)

			// Assert
			Expect(built.ID).ToNot(BeEmpty())
			Expect(built.Callable).To(Equal(callable))
			Expect(built.Kind).To(Equal("method-parameter"))
			Expect(built.Groups).To(Equal([]string{"default"}))
			Expect(built.OccurredAt).ToNot(BeZero())
			Expect(built.Violations).To(HaveLen(1))
			Expect(built.Violations[0].Path).To(Equal("arg0"))
			Expect(built.Violations[0].Rule).To(Equal("callcheck:constraint:NotNil"))
			Expect(built.Header()).To(Equal("Call orderService.placeOrder violated 1 constraint(s)"))
			Expect(built.Body()).To(Equal("- arg0: callcheck:constraint:NotNil: field must not be nil"))
		})

		It("gives every report its own identifier", func() {
			// Arrange
			callable := metadata.NewMethod("orderService", "placeOrder")

			// Act
			first := report.NewReport(callable, callcheck.MethodParameter, nil, nil)
			second := report.NewReport(callable, callcheck.MethodParameter, nil, nil)

			// Assert
			Expect(first.ID).ToNot(Equal(second.ID))
		})
	})

	Describe("GetReporters", func() {
		It("returns no reporter when nothing is enabled", func() {
			// Act
			reporters, err := report.GetReporters(report.ReportersConfig{}, logger)

			// Assert
			Expect(err).ToNot(HaveOccurred())
			Expect(reporters).To(BeEmpty())
		})

		It("returns the enabled noop reporter", func() {
			// Arrange
			config := report.ReportersConfig{
				Noop: noop.ReporterNoopConfig{Enabled: true},
			}

			// Act
			reporters, err := report.GetReporters(config, logger)

			// Assert
			Expect(err).ToNot(HaveOccurred())
			Expect(reporters).To(HaveLen(1))
			Expect(reporters[0].GetReporterName()).To(Equal("noop"))
		})

		It("returns the enabled http reporter", func() {
			// Arrange
			config := report.ReportersConfig{
				Common: types.ReportersCommonConfig{Source: "checkout"},
				HTTP: httpreporter.ReporterHTTPConfig{
					Enabled: true,
					URL:     "http://localhost:8080/reports",
				},
			}

			// Act
			reporters, err := report.GetReporters(config, logger)

			// Assert
			Expect(err).ToNot(HaveOccurred())
			Expect(reporters).To(HaveLen(1))
			Expect(reporters[0].GetReporterName()).To(Equal("http"))
		})

		It("keeps the healthy reporters when one fails to build", func() {
			// Arrange
			config := report.ReportersConfig{
				Noop: noop.ReporterNoopConfig{Enabled: true},
				HTTP: httpreporter.ReporterHTTPConfig{
					Enabled: true,
					URL:     "http://localhost:8080/reports",
					Headers: []string{"not-a-header"},
				},
			}

			// Act
			reporters, err := report.GetReporters(config, logger)

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid header"))
			Expect(reporters).To(HaveLen(1))
			Expect(reporters[0].GetReporterName()).To(Equal("noop"))
		})

		It("surfaces a slack reporter with an unreadable token file", func() {
			// Arrange
			config := report.ReportersConfig{
				Slack: slack.ReporterSlackConfig{
					Enabled:       true,
					TokenFilepath: filepath.Join(GinkgoT().TempDir(), "missing-token"),
					ChannelID:     "violations",
				},
			}

			// Act
			reporters, err := report.GetReporters(config, logger)

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unable to read token file"))
			Expect(reporters).To(BeEmpty())
		})

		It("reads http headers from a file", func() {
			// Arrange
			headersPath := filepath.Join(GinkgoT().TempDir(), "headers")
			Expect(os.WriteFile(headersPath, []byte("X-Report-Origin:checkout"), 0o600)).To(Succeed())

			config := report.ReportersConfig{
				HTTP: httpreporter.ReporterHTTPConfig{
					Enabled:         true,
					URL:             "http://localhost:8080/reports",
					HeadersFilepath: headersPath,
				},
			}

			// Act
			reporters, err := report.GetReporters(config, logger)

			// Assert
			Expect(err).ToNot(HaveOccurred())
			Expect(reporters).To(HaveLen(1))
		})
	})
})
