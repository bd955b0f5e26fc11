// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package profiler_test

import (
	"github.com/DataDog/callcheck/o11y/profiler"
	"github.com/DataDog/callcheck/o11y/profiler/types"
	"go.uber.org/zap/zaptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("GetSink", func() {
	Context("with the noop driver", func() {
		It("should return a sink named noop", func() {
			// Arrange
			log := zaptest.NewLogger(GinkgoT()).Sugar()

			// Act
			sink, err := profiler.GetSink(log, types.SinkConfig{SinkDriver: "noop"})

			// Assert
			Expect(err).ShouldNot(HaveOccurred())
			Expect(sink.GetSinkName()).To(Equal("noop"))
		})
	})

	Context("with an unsupported driver", func() {
		It("should return an error", func() {
			// Arrange
			log := zaptest.NewLogger(GinkgoT()).Sugar()

			// Act
			_, err := profiler.GetSink(log, types.SinkConfig{SinkDriver: "pprof"})

			// Assert
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unsupported profiler"))
		})
	})
})
