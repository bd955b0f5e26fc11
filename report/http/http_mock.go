// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package http

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"
)

// RoundTripperMock is a mock implementation of the net/http RoundTripper interface
type RoundTripperMock struct {
	mock.Mock
}

//nolint:golint
func (m *RoundTripperMock) RoundTrip(req *http.Request) (*http.Response, error) {
	args := m.Called(req)

	res, _ := args.Get(0).(*http.Response)

	return res, args.Error(1)
}

var _ http.RoundTripper = (*RoundTripperMock)(nil)

// BearerAuthTokenProviderMock is a mock implementation of the BearerAuthTokenProvider interface
type BearerAuthTokenProviderMock struct {
	mock.Mock
}

//nolint:golint
func (m *BearerAuthTokenProviderMock) AuthToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}

var _ BearerAuthTokenProvider = (*BearerAuthTokenProviderMock)(nil)
