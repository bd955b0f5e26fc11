// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package metadata

import (
	"errors"
	"fmt"
)

// NameProvider resolves the display name of one parameter of a callable.
// Implementations must be deterministic: violations for the same call must
// always carry the same parameter names.
type NameProvider interface {
	ParameterName(c Callable, index int) (string, error)
}

// SyntheticName returns the positional fallback name of a parameter: "arg0",
// "arg1", ...
func SyntheticName(index int) string {
	return fmt.Sprintf("arg%d", index)
}

// SyntheticNameProvider names every parameter by position. It never fails for
// a non-negative index and needs no declarations.
type SyntheticNameProvider struct{}

func (SyntheticNameProvider) ParameterName(c Callable, index int) (string, error) {
	if index < 0 {
		return "", NewNameResolutionError(c, index, errors.New("negative parameter index"))
	}

	return SyntheticName(index), nil
}
