// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package callcheck_test

import (
	. "github.com/DataDog/callcheck"
	"github.com/DataDog/callcheck/constraint"
	"github.com/DataDog/callcheck/metadata"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// sampleViolation builds a parameter violation for the given index
func sampleViolation(index int, message string) Violation {
	name := metadata.SyntheticName(index)

	return Violation{
		Callable:   metadata.NewMethod("orderService", "placeOrder"),
		Kind:       MethodParameter,
		Index:      &index,
		Name:       &name,
		Constraint: constraint.NotNil(true),
		Message:    message,
		Path:       NewPath(name),
	}
}

var _ = Describe("Path", func() {
	It("renders segments joined by the descent separator", func() {
		Expect(NewPath("return", "Customer", "Email").String()).To(Equal("return>Customer>Email"))
	})

	It("extends without mutating the parent", func() {
		// Arrange
		parent := NewPath("arg0")

		// Act
		left := parent.Child("Customer")
		right := parent.Child("Items")

		// Assert
		Expect(parent.String()).To(Equal("arg0"))
		Expect(left.String()).To(Equal("arg0>Customer"))
		Expect(right.String()).To(Equal("arg0>Items"))
	})

	It("renders collection segments in brackets", func() {
		Expect(NewPath("arg0").Index(3).String()).To(Equal("arg0>[3]"))
		Expect(NewPath("return").Key("emea").String()).To(Equal("return>[emea]"))
	})

	It("compares segment by segment", func() {
		Expect(NewPath("a", "b").Equal(NewPath("a", "b"))).To(BeTrue())
		Expect(NewPath("a", "b").Equal(NewPath("a"))).To(BeFalse())
		Expect(NewPath("a", "b").Equal(NewPath("a", "c"))).To(BeFalse())
	})
})

var _ = Describe("Violation", func() {
	It("renders the callable, path and message", func() {
		// Arrange
		violation := sampleViolation(0, "callcheck:constraint:NotNil: field must not be nil")

		// Assert
		Expect(violation.String()).To(Equal("orderService.placeOrder: arg0: callcheck:constraint:NotNil: field must not be nil"))
	})

	It("exposes the rule name of the failed constraint", func() {
		Expect(sampleViolation(0, "x").Rule()).To(Equal("callcheck:constraint:NotNil"))
		Expect(Violation{}.Rule()).To(BeEmpty())
	})

	It("compares by value, not by pointer identity", func() {
		Expect(sampleViolation(1, "x").Equal(sampleViolation(1, "x"))).To(BeTrue())
		Expect(sampleViolation(1, "x").Equal(sampleViolation(2, "x"))).To(BeFalse())
	})
})

var _ = Describe("ViolationSet", func() {
	It("compares regardless of order", func() {
		// Arrange
		one := ViolationSet{sampleViolation(0, "a"), sampleViolation(2, "b")}
		two := ViolationSet{sampleViolation(2, "b"), sampleViolation(0, "a")}

		// Assert
		Expect(one.Equal(two)).To(BeTrue())
		Expect(two.Equal(one)).To(BeTrue())
	})

	It("matches duplicates one to one", func() {
		// Arrange
		one := ViolationSet{sampleViolation(0, "a"), sampleViolation(0, "a"), sampleViolation(1, "b")}
		two := ViolationSet{sampleViolation(0, "a"), sampleViolation(1, "b"), sampleViolation(1, "b")}

		// Assert
		Expect(one.Equal(two)).To(BeFalse())
	})

	It("rejects sets of different sizes", func() {
		Expect(ViolationSet{sampleViolation(0, "a")}.Equal(ViolationSet{})).To(BeFalse())
	})

	It("renders one violation per line", func() {
		// Arrange
		set := ViolationSet{sampleViolation(0, "first"), sampleViolation(1, "second")}

		// Assert
		Expect(set.String()).To(Equal("orderService.placeOrder: arg0: first\norderService.placeOrder: arg1: second"))
		Expect(set.Empty()).To(BeFalse())
		Expect(ViolationSet{}.Empty()).To(BeTrue())
	})
})

var _ = Describe("ViolationError", func() {
	It("round-trips the set it was built from", func() {
		// Arrange
		set := ViolationSet{sampleViolation(0, "a"), sampleViolation(2, "b")}

		// Act
		reportErr := NewViolationError("invalid arguments", set)

		// Assert
		Expect(reportErr.Violations().Equal(set)).To(BeTrue())
		Expect(reportErr.Error()).To(Equal("invalid arguments: 2 violation(s)"))
	})

	It("normalizes a nil set to an empty one", func() {
		// Act
		reportErr := NewViolationError("nothing to report", nil)

		// Assert
		Expect(reportErr.Violations()).NotTo(BeNil())
		Expect(reportErr.Violations()).To(BeEmpty())
		Expect(reportErr.Error()).To(Equal("nothing to report: 0 violation(s)"))
	})

	It("hands out a view the caller cannot corrupt", func() {
		// Arrange
		set := ViolationSet{sampleViolation(0, "original")}
		reportErr := NewViolationError("invalid arguments", set)

		// Act
		view := reportErr.Violations()
		view[0].Message = "tampered"

		// Assert
		Expect(reportErr.Violations()[0].Message).To(Equal("original"))
	})

	It("is insulated from later changes to the source set", func() {
		// Arrange
		set := ViolationSet{sampleViolation(0, "original")}
		reportErr := NewViolationError("invalid arguments", set)

		// Act
		set[0].Message = "changed afterwards"

		// Assert
		Expect(reportErr.Violations()[0].Message).To(Equal("original"))
	})
})
