// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package constraint_test

import (
	"math/rand"
	. "reflect"

	. "github.com/DataDog/callcheck/constraint"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Value Constraint Cases", func() {

	Context("Maximum test", func() {
		var maxInt int
		var max Maximum

		BeforeEach(func() {
			maxInt = rand.Intn(1000)
			max = Maximum(maxInt)
		})

		It("accepts large negative values", func() {
			Expect(max.ApplyRule(ValueOf(-1001))).To(BeNil())
		})
		It("rejects small string values", func() {
			Expect(max.ApplyRule(ValueOf("0"))).ToNot(BeNil())
		})
		It("rejects large string values", func() {
			Expect(max.ApplyRule(ValueOf("1001"))).ToNot(BeNil())
		})
		It("rejects superior values", func() {
			Expect(max.ApplyRule(ValueOf(maxInt + 1))).ToNot(BeNil())
		})
		It("accepts exact value", func() {
			Expect(max.ApplyRule(ValueOf(maxInt))).To(BeNil())
		})
		It("accepts inferior value", func() {
			Expect(max.ApplyRule(ValueOf(maxInt - 1))).To(BeNil())
		})
		It("accepts int64 values", func() {
			Expect(max.ApplyRule(ValueOf(int64(-1)))).To(BeNil())
		})
		It("rejects superior uint values", func() {
			Expect(max.ApplyRule(ValueOf(uint(maxInt + 1)))).ToNot(BeNil())
		})
	})

	Context("Minimum test", func() {
		var minInt int
		var min Minimum

		BeforeEach(func() {
			minInt = rand.Intn(1000)
			min = Minimum(minInt)
		})

		It("rejects large negative values", func() {
			Expect(min.ApplyRule(ValueOf(-1001))).ToNot(BeNil())
		})
		It("rejects small string values", func() {
			Expect(min.ApplyRule(ValueOf("0"))).ToNot(BeNil())
		})
		It("accepts superior value", func() {
			Expect(min.ApplyRule(ValueOf(minInt + 1))).To(BeNil())
		})
		It("accepts exact value", func() {
			Expect(min.ApplyRule(ValueOf(minInt))).To(BeNil())
		})
		It("rejects inferior value", func() {
			Expect(min.ApplyRule(ValueOf(minInt - 1))).ToNot(BeNil())
		})
	})

	Context("MinLength test", func() {
		minLen := MinLength(3)

		It("accepts a long enough string", func() {
			Expect(minLen.ApplyRule(ValueOf("abc"))).To(BeNil())
		})
		It("rejects a short string", func() {
			Expect(minLen.ApplyRule(ValueOf("ab"))).ToNot(BeNil())
		})
		It("accepts a long enough slice", func() {
			Expect(minLen.ApplyRule(ValueOf([]int{1, 2, 3}))).To(BeNil())
		})
		It("rejects a short map", func() {
			Expect(minLen.ApplyRule(ValueOf(map[string]int{"a": 1}))).ToNot(BeNil())
		})
		It("rejects an int value", func() {
			Expect(minLen.ApplyRule(ValueOf(12345))).ToNot(BeNil())
		})
	})

	Context("MaxLength test", func() {
		maxLen := MaxLength(3)

		It("accepts a short string", func() {
			Expect(maxLen.ApplyRule(ValueOf("ab"))).To(BeNil())
		})
		It("accepts the exact length", func() {
			Expect(maxLen.ApplyRule(ValueOf("abc"))).To(BeNil())
		})
		It("rejects a long string", func() {
			Expect(maxLen.ApplyRule(ValueOf("abcd"))).ToNot(BeNil())
		})
		It("rejects a long slice", func() {
			Expect(maxLen.ApplyRule(ValueOf([]string{"a", "b", "c", "d"}))).ToNot(BeNil())
		})
	})

	Context("Enum test", func() {
		arrStr := []interface{}{"a", "b", "c", "4"}
		arrInt := []interface{}{1, 2, 3}
		validStrEnum := Enum(arrStr)
		validIntEnum := Enum(arrInt)
		emptyEnum := Enum(nil)

		It("accepts a valid string value", func() {
			Expect(validStrEnum.ApplyRule(ValueOf(arrStr[0]))).To(BeNil())
		})
		It("rejects an invalid string value", func() {
			Expect(validStrEnum.ApplyRule(ValueOf("notavalue"))).ToNot(BeNil())
		})
		It("rejects an invalid int value", func() {
			Expect(validStrEnum.ApplyRule(ValueOf(4))).ToNot(BeNil())
		})
		It("rejects a combined str value", func() {
			Expect(validStrEnum.ApplyRule(ValueOf("ab"))).ToNot(BeNil())
		})
		It("accepts a valid int value", func() {
			Expect(validIntEnum.ApplyRule(ValueOf(arrInt[0]))).To(BeNil())
		})
		It("rejects an invalid int value", func() {
			Expect(validIntEnum.ApplyRule(ValueOf(4))).ToNot(BeNil())
		})
		It("int enum rejects a fitting string value", func() {
			Expect(validIntEnum.ApplyRule(ValueOf("1"))).ToNot(BeNil())
		})
		It("errors out if enum is empty", func() {
			Expect(emptyEnum.ApplyRule(ValueOf("any"))).ToNot(BeNil())
		})
	})

	Context("Required test", func() {
		const trueRequired Required = Required(true)
		const falseRequired Required = Required(false)

		It("true errors given nil", func() {
			Expect(trueRequired.ApplyRule(ValueOf(nil))).ToNot(BeNil())
		})
		It("true errors given empty string", func() {
			Expect(trueRequired.ApplyRule(ValueOf(""))).ToNot(BeNil())
		})
		It("true errors out given 0", func() {
			Expect(trueRequired.ApplyRule(ValueOf(0))).ToNot(BeNil())
		})
		It("true accepts regular values", func() {
			Expect(trueRequired.ApplyRule(ValueOf("a"))).To(BeNil())
			Expect(trueRequired.ApplyRule(ValueOf(1))).To(BeNil())
		})
		It("true accepts a non-nil pointer to a zero value", func() {
			zero := 0
			Expect(trueRequired.ApplyRule(ValueOf(&zero))).To(BeNil())
		})
		It("false doesn't error given nil", func() {
			Expect(falseRequired.ApplyRule(ValueOf(nil))).To(BeNil())
		})
		It("false accepts regular values", func() {
			Expect(falseRequired.ApplyRule(ValueOf("a"))).To(BeNil())
			Expect(falseRequired.ApplyRule(ValueOf(1))).To(BeNil())
		})
	})

	Context("NotNil test", func() {
		const notNil NotNil = NotNil(true)
		const disabled NotNil = NotNil(false)

		It("rejects nil", func() {
			Expect(notNil.ApplyRule(ValueOf(nil))).ToNot(BeNil())
		})
		It("rejects a nil pointer", func() {
			Expect(notNil.ApplyRule(ValueOf((*int)(nil)))).ToNot(BeNil())
		})
		It("rejects a nil slice", func() {
			Expect(notNil.ApplyRule(ValueOf([]string(nil)))).ToNot(BeNil())
		})
		It("accepts a non-nil pointer to a zero value", func() {
			zero := 0
			Expect(notNil.ApplyRule(ValueOf(&zero))).To(BeNil())
		})
		It("accepts zero values of non-nilable kinds", func() {
			Expect(notNil.ApplyRule(ValueOf(0))).To(BeNil())
			Expect(notNil.ApplyRule(ValueOf(""))).To(BeNil())
		})
		It("disabled accepts nil", func() {
			Expect(disabled.ApplyRule(ValueOf(nil))).To(BeNil())
		})
	})

	Context("Pattern test", func() {
		pattern := MustPattern("^[a-z]+$")

		It("accepts a matching string", func() {
			Expect(pattern.ApplyRule(ValueOf("abc"))).To(BeNil())
		})
		It("rejects a non-matching string", func() {
			Expect(pattern.ApplyRule(ValueOf("ABC"))).ToNot(BeNil())
		})
		It("rejects a non-string value", func() {
			Expect(pattern.ApplyRule(ValueOf(3))).ToNot(BeNil())
		})
		It("matches through a pointer", func() {
			s := "abc"
			Expect(pattern.ApplyRule(ValueOf(&s))).To(BeNil())
		})
		It("NewPattern rejects an invalid expression", func() {
			_, err := NewPattern("[")
			Expect(err).ToNot(BeNil())
		})
		It("keeps its source expression", func() {
			Expect(pattern.Expr()).To(Equal("^[a-z]+$"))
		})
	})

	Context("Rule test", func() {
		bounds := Rule("gte=1,lte=10")

		It("accepts a value inside the bounds", func() {
			Expect(bounds.ApplyRule(ValueOf(5))).To(BeNil())
		})
		It("rejects a value above the bounds with a plain english message", func() {
			err := bounds.ApplyRule(ValueOf(11))
			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring("10 or less"))
		})
		It("rejects a value below the bounds", func() {
			Expect(bounds.ApplyRule(ValueOf(0))).ToNot(BeNil())
		})
		It("reports a malformed expression instead of panicking", func() {
			err := Rule("notatag").ApplyRule(ValueOf(5))
			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring("invalid rule expression"))
		})
	})
})
