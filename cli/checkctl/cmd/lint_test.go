// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.
package cmd

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Lint Command", func() {
	Context("with a valid mapping document", func() {
		It("accepts the document", func() {
			// Act & Assert
			Expect(lint("testdata/order-mapping.yaml")).To(Succeed())
		})
	})

	Context("with a broken mapping document", func() {
		It("counts every problem and fails", func() {
			// Act
			err := lint("testdata/broken-mapping.yaml")

			// Assert
			Expect(err).To(MatchError("2 problem(s) found"))
		})
	})

	Context("with a missing file", func() {
		It("fails with the read error", func() {
			// Act
			err := lint("testdata/missing.yaml")

			// Assert
			Expect(err).To(MatchError(ContainSubstring("reading mapping document")))
		})
	})
})
