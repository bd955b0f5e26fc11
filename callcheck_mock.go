// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package callcheck

import (
	"github.com/stretchr/testify/mock"

	"github.com/DataDog/callcheck/metadata"
)

// ValidatorMock is a mock of the Interface validation surface
type ValidatorMock struct {
	mock.Mock
}

//nolint:golint
func (v *ValidatorMock) ValidateParameter(subject interface{}, callable metadata.Callable, value interface{}, index int, groups ...string) (ViolationSet, error) {
	args := v.Called(subject, callable, value, index, groups)

	violations, _ := args.Get(0).(ViolationSet)

	return violations, args.Error(1)
}

//nolint:golint
func (v *ValidatorMock) ValidateAllParameters(subject interface{}, callable metadata.Callable, values []interface{}, groups ...string) (ViolationSet, error) {
	args := v.Called(subject, callable, values, groups)

	violations, _ := args.Get(0).(ViolationSet)

	return violations, args.Error(1)
}

//nolint:golint
func (v *ValidatorMock) ValidateReturnValue(subject interface{}, callable metadata.Callable, value interface{}, groups ...string) (ViolationSet, error) {
	args := v.Called(subject, callable, value, groups)

	violations, _ := args.Get(0).(ViolationSet)

	return violations, args.Error(1)
}

//nolint:golint
func (v *ValidatorMock) ValidateConstructorParameter(callable metadata.Callable, value interface{}, index int, groups ...string) (ViolationSet, error) {
	args := v.Called(callable, value, index, groups)

	violations, _ := args.Get(0).(ViolationSet)

	return violations, args.Error(1)
}

//nolint:golint
func (v *ValidatorMock) ValidateAllConstructorParameters(callable metadata.Callable, values []interface{}, groups ...string) (ViolationSet, error) {
	args := v.Called(callable, values, groups)

	violations, _ := args.Get(0).(ViolationSet)

	return violations, args.Error(1)
}

var _ Interface = (*ValidatorMock)(nil)
