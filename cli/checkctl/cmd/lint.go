// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package cmd

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/DataDog/callcheck/mapping"
)

var lintCmd = &cobra.Command{
	Use:   "lint <mapping-file>",
	Short: "lint a mapping document",
	Long:  `loads the given mapping document and prints every problem preventing it from building a declaration registry.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return lint(args[0])
	},
}

func lint(path string) error {
	registry, err := mapping.Load(path)
	if err != nil {
		var merr *multierror.Error

		if errors.As(err, &merr) {
			fmt.Printf("the mapping document %s has problems...\n", path)

			for _, problem := range merr.WrappedErrors() {
				fmt.Printf("\t⚠️  %v\n", problem)
			}

			return fmt.Errorf("%d problem(s) found", len(merr.WrappedErrors()))
		}

		return err
	}

	fmt.Printf("the mapping document %s is valid...\n", path)
	fmt.Printf("\tℹ️  declares %d callable(s) and %d cascaded type(s), %d declaration(s) in total\n",
		len(registry.Callables()), len(registry.Types()), registry.DeclarationCount())

	return nil
}
