// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/DataDog/jsonapi"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/DataDog/callcheck/metadata"
	"github.com/DataDog/callcheck/report/types"
)

var _ = Describe("HTTP Reporter", func() {
	var (
		logger *zap.SugaredLogger
		report types.Report
	)

	BeforeEach(func() {
		logger = zaptest.NewLogger(GinkgoT()).Sugar()

		report = types.Report{
			ID:       uuid.New().String(),
			Callable: metadata.NewMethod("orderService", "placeOrder"),
			Kind:     "method-parameter",
			Groups:   []string{"default"},
			Violations: []types.ViolationSummary{
				{Path: "arg0", Rule: "callcheck:constraint:NotNil", Message: "callcheck:constraint:NotNil: field must not be nil"},
			},
			OccurredAt: time.Now(),
		}
	})

	Describe("New", func() {
		It("requires a URL", func() {
			// Act
			_, err := New(types.ReportersCommonConfig{}, ReporterHTTPConfig{Enabled: true}, logger)

			// Assert
			Expect(err).To(HaveOccurred())
		})

		It("rejects malformed headers", func() {
			// Act
			_, err := New(types.ReportersCommonConfig{}, ReporterHTTPConfig{URL: "http://localhost", Headers: []string{"no-separator"}}, logger)

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid header"))
		})
	})

	Describe("Notify", func() {
		It("posts the report as a JSON:API document", func() {
			// Arrange
			svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.Header.Get("Content-Type")).To(Equal(contentTypeJSONAPI))
				Expect(r.Header.Get("X-Report-Origin")).To(Equal("checkout"))

				body, err := io.ReadAll(r.Body)
				Expect(err).ShouldNot(HaveOccurred())

				var event ReportEvent

				Expect(jsonapi.Unmarshal(body, &event)).To(Succeed())
				Expect(event.ID).To(Equal(report.ID))
				Expect(event.Subject).To(Equal("orderService"))
				Expect(event.Callable).To(Equal("placeOrder"))
				Expect(event.CallableKind).To(Equal("method"))
				Expect(event.ViolationKind).To(Equal("method-parameter"))
				Expect(event.Source).To(Equal("checkout"))
				Expect(event.Violations).To(Equal(report.Violations))
				Expect(event.NotificationTitle).To(Equal(report.Header()))
			}))
			defer svr.Close()

			reporter, err := New(
				types.ReportersCommonConfig{Source: "checkout"},
				ReporterHTTPConfig{URL: svr.URL, Headers: []string{"X-Report-Origin:checkout"}},
				logger,
			)
			Expect(err).ToNot(HaveOccurred())

			// Act
			err = reporter.Notify(report)

			// Assert
			Expect(err).ToNot(HaveOccurred())
		})

		It("sets the Authorization header when an auth provider is defined", func() {
			// Arrange
			svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer token"))
			}))
			defer svr.Close()

			authTokenProviderMock := &BearerAuthTokenProviderMock{}
			authTokenProviderMock.On("AuthToken", mock.Anything).Return("token", nil)

			reporter := &Reporter{
				client:            &http.Client{},
				url:               svr.URL,
				logger:            logger,
				authTokenProvider: authTokenProviderMock,
			}

			// Act
			err := reporter.Notify(report)

			// Assert
			Expect(err).ToNot(HaveOccurred())
		})

		It("fails when the auth token cannot be retrieved", func() {
			// Arrange
			authTokenProviderMock := &BearerAuthTokenProviderMock{}
			authTokenProviderMock.On("AuthToken", mock.Anything).Return("", io.ErrUnexpectedEOF)

			reporter := &Reporter{
				client: &http.Client{},
				url:    "http://localhost",
				logger: logger,

				authTokenProvider: authTokenProviderMock,
			}

			// Act
			err := reporter.Notify(report)

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unable to retrieve auth token"))
		})

		It("skips reports without violations", func() {
			// Arrange
			svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Fail("no request expected for an empty report")
			}))
			defer svr.Close()

			reporter, err := New(types.ReportersCommonConfig{}, ReporterHTTPConfig{URL: svr.URL}, logger)
			Expect(err).ToNot(HaveOccurred())

			report.Violations = nil

			// Act
			err = reporter.Notify(report)

			// Assert
			Expect(err).ToNot(HaveOccurred())
		})

		It("retries on server errors before giving up", func() {
			// Arrange
			var requests int32

			svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&requests, 1)
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer svr.Close()

			reporter, err := New(types.ReportersCommonConfig{}, ReporterHTTPConfig{URL: svr.URL}, logger)
			Expect(err).ToNot(HaveOccurred())

			// Act
			err = reporter.Notify(report)

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("received 500 status code"))
			Expect(atomic.LoadInt32(&requests)).To(Equal(int32(3)))
		})
	})

	Describe("GetReporterName", func() {
		It("returns the driver's name", func() {
			Expect((&Reporter{}).GetReporterName()).To(Equal(string(types.ReporterDriverHTTP)))
		})
	})
})
