// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package datadog

import (
	"github.com/DataDog/datadog-go/statsd"
	"github.com/stretchr/testify/mock"
)

// ClientMock is a mock implementation of the statsd client surface
//
//nolint:golint
type ClientMock struct {
	mock.Mock
}

//nolint:golint
func (m *ClientMock) Event(e *statsd.Event) error {
	args := m.Called(e)

	return args.Error(0)
}

var _ Client = (*ClientMock)(nil)
