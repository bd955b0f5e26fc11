// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package slack

import (
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/mock"
)

// SlackNotifierMock is a mock implementation of the slack client surface
//
//nolint:golint
type SlackNotifierMock struct {
	mock.Mock
}

//nolint:golint
func (m *SlackNotifierMock) PostMessage(channelID string, options ...slack.MsgOption) (string, string, error) {
	args := m.Called(channelID, options)

	return args.String(0), args.String(1), args.Error(2)
}

var _ slackNotifier = (*SlackNotifierMock)(nil)
