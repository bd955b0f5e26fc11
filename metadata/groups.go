// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package metadata

import (
	"sort"
	"strings"
)

// DefaultGroup is the implicit group of declarations and calls that name none
const DefaultGroup = "default"

// Groups is a canonical set of group tokens: sorted, deduplicated, never empty
// once normalized
type Groups []string

// NormalizeGroups canonicalizes a declared or requested group list. An empty
// list means the default group; duplicates are dropped and order is sorted so
// equal sets always compare and render equal.
func NormalizeGroups(groups []string) Groups {
	if len(groups) == 0 {
		return Groups{DefaultGroup}
	}

	seen := make(map[string]struct{}, len(groups))
	normalized := make(Groups, 0, len(groups))

	for _, group := range groups {
		if _, ok := seen[group]; ok {
			continue
		}

		seen[group] = struct{}{}
		normalized = append(normalized, group)
	}

	sort.Strings(normalized)

	return normalized
}

// Intersects returns true when the two sets share at least one group
func (g Groups) Intersects(other Groups) bool {
	for _, mine := range g {
		for _, theirs := range other {
			if mine == theirs {
				return true
			}
		}
	}

	return false
}

// Contains returns true when the set holds the given group
func (g Groups) Contains(group string) bool {
	for _, mine := range g {
		if mine == group {
			return true
		}
	}

	return false
}

// Key renders the canonical form of the set, usable as a map key
func (g Groups) Key() string {
	return strings.Join(g, ",")
}
