// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package slack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/DataDog/callcheck/report/types"
)

type ReporterSlackConfig struct {
	Enabled       bool   `json:"enabled" yaml:"enabled"`
	TokenFilepath string `json:"tokenFilepath" yaml:"tokenFilepath"`
	ChannelID     string `json:"channelID" yaml:"channelID"`
}

// slackNotifier is the slack API surface the reporter posts through
type slackNotifier interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

// Reporter describes a Slack reporter
type Reporter struct {
	client slackNotifier
	common types.ReportersCommonConfig
	config ReporterSlackConfig
	logger *zap.SugaredLogger
}

// New Slack Reporter, reading the API token from the configured file
func New(commonConfig types.ReportersCommonConfig, slackConfig ReporterSlackConfig, logger *zap.SugaredLogger) (*Reporter, error) {
	if slackConfig.ChannelID == "" {
		return nil, fmt.Errorf("slack reporter: missing channel ID")
	}

	rawToken, err := os.ReadFile(filepath.Clean(slackConfig.TokenFilepath))
	if err != nil {
		return nil, fmt.Errorf("slack reporter: unable to read token file %s: %w", slackConfig.TokenFilepath, err)
	}

	token := strings.TrimSpace(string(rawToken))
	if token == "" {
		return nil, fmt.Errorf("slack reporter: token file %s is empty", slackConfig.TokenFilepath)
	}

	token = strings.Fields(token)[0]

	client := slack.New(token)

	if _, err := client.AuthTest(); err != nil {
		return nil, fmt.Errorf("slack reporter: auth test failed: %w", err)
	}

	return &Reporter{
		client: client,
		common: commonConfig,
		config: slackConfig,
		logger: logger,
	}, nil
}

// GetReporterName returns the driver's name
func (n *Reporter) GetReporterName() string {
	return string(types.ReporterDriverSlack)
}

func (n *Reporter) buildBlocks(report types.Report) []slack.Block {
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", "*Subject:*\n"+report.Callable.Subject, false, false),
		slack.NewTextBlockObject("mrkdwn", "*Callable:*\n"+report.Callable.Name, false, false),
		slack.NewTextBlockObject("mrkdwn", "*Kind:*\n"+report.Kind, false, false),
		slack.NewTextBlockObject("mrkdwn", "*Violations:*\n"+fmt.Sprint(len(report.Violations)), false, false),
		slack.NewTextBlockObject("mrkdwn", "*Call ID:*\n"+report.ID, false, false),
	}

	if n.common.Source != "" {
		fields = append(fields, slack.NewTextBlockObject("mrkdwn", "*Source:*\n"+n.common.Source, false, false))
	}

	return []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", report.Header(), false, false)),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(nil, fields, nil),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", report.Body(), false, false), nil, nil),
	}
}

// Notify posts the report to the configured channel
func (n *Reporter) Notify(report types.Report) error {
	if len(report.Violations) == 0 {
		return nil
	}

	n.logger.Debugw("reporter: sending violation report to slack", "callID", report.ID, "callable", report.Callable.String(), "channel", n.config.ChannelID)

	_, _, err := n.client.PostMessage(n.config.ChannelID,
		slack.MsgOptionText(report.Header(), false),
		slack.MsgOptionUsername("Callcheck Violations Bot"),
		slack.MsgOptionBlocks(n.buildBlocks(report)...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("slack reporter: %w", err)
	}

	return nil
}
