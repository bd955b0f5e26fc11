// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.
package cmd

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap/zaptest"

	"github.com/DataDog/callcheck/config"
	"github.com/DataDog/callcheck/metadata"
)

var _ = Describe("Fixtures Command", func() {
	var cfg config.Config

	BeforeEach(func() {
		logger = zaptest.NewLogger(GinkgoT()).Sugar()

		cfg = config.Config{
			Engine: config.EngineConfig{
				MetricsSink:  "noop",
				TracerSink:   "noop",
				ProfilerSink: "noop",
			},
		}
	})

	Describe("parsing recorded callables", func() {
		It("parses a method identity", func() {
			// Act
			callable, err := parseCallable(recordedCall{Callable: "orderService.placeOrder"})

			// Assert
			Expect(err).ToNot(HaveOccurred())
			Expect(callable).To(Equal(metadata.NewMethod("orderService", "placeOrder")))
		})

		It("parses a constructor identity", func() {
			// Act
			callable, err := parseCallable(recordedCall{Callable: "order.NewOrder", Kind: "constructor"})

			// Assert
			Expect(err).ToNot(HaveOccurred())
			Expect(callable).To(Equal(metadata.NewConstructor("order", "NewOrder")))
		})

		It("rejects an identity without a subject", func() {
			// Act
			_, err := parseCallable(recordedCall{Callable: "placeOrder"})

			// Assert
			Expect(err).To(MatchError(`invalid callable "placeOrder", expected a subject.name identity`))
		})

		It("rejects an unknown kind", func() {
			// Act
			_, err := parseCallable(recordedCall{Callable: "orderService.placeOrder", Kind: "function"})

			// Assert
			Expect(err).To(MatchError(`unknown callable kind "function", expected method or constructor`))
		})
	})

	Describe("reading fixtures files", func() {
		It("reads recorded calls", func() {
			// Act
			document, err := readFixtures("testdata/order-fixtures.yaml")

			// Assert
			Expect(err).ToNot(HaveOccurred())
			Expect(document.Fixtures).To(HaveLen(2))
			Expect(document.Fixtures[0].Callable).To(Equal("orderService.placeOrder"))
			Expect(document.Fixtures[0].Parameters).To(HaveLen(3))
			Expect(document.Fixtures[0].Return).ToNot(BeNil())
			Expect(document.Fixtures[1].Kind).To(Equal("constructor"))
		})

		It("rejects unknown fields", func() {
			// Act
			_, err := readFixtures("testdata/unknown-field-fixtures.yaml")

			// Assert
			Expect(err).To(MatchError(ContainSubstring("parsing fixtures file")))
		})

		It("rejects a file declaring no fixtures", func() {
			// Act
			_, err := readFixtures("testdata/empty-fixtures.yaml")

			// Assert
			Expect(err).To(MatchError("parsing fixtures file testdata/empty-fixtures.yaml: no fixtures declared"))
		})
	})

	Describe("replaying fixtures", func() {
		Context("when every recorded call satisfies its constraints", func() {
			It("succeeds", func() {
				// Act & Assert
				Expect(runFixtures(cfg, "testdata/order-mapping.yaml", "testdata/order-fixtures.yaml")).To(Succeed())
			})
		})

		Context("when recorded calls violate constraints", func() {
			It("fails with the violation count", func() {
				// Act
				err := runFixtures(cfg, "testdata/order-mapping.yaml", "testdata/violating-fixtures.yaml")

				// Assert
				Expect(err).To(MatchError("3 violation(s) found across 1 fixture(s)"))
			})
		})

		Context("when the mapping document does not build", func() {
			It("fails before replaying anything", func() {
				// Act
				err := runFixtures(cfg, "testdata/broken-mapping.yaml", "testdata/order-fixtures.yaml")

				// Assert
				Expect(err).To(MatchError(ContainSubstring("building registry from mapping document")))
			})
		})
	})
})
