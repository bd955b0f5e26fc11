// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package tags

import "fmt"

// FormatTag formats a tag with key:value format for metrics and observability
func FormatTag(key, value string) string {
	return fmt.Sprintf("%s:%s", key, value)
}

// CallableTags builds the standard tag set attached to every metric, span
// and report emitted for a validated call
func CallableTags(subject, callable, kind string) []string {
	return []string{
		FormatTag("subject", subject),
		FormatTag("callable", callable),
		FormatTag("kind", kind),
	}
}
