// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026 Datadog, Inc.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DataDog/callcheck/config"
	"github.com/DataDog/callcheck/log"
)

// Version will be set with the -ldflags option at compile time
var Version string = "v0"
var cfgFile string

var logger *zap.SugaredLogger

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "checkctl",
	Short: "Callcheck CLI to aid with constraint mapping documents.",
	Long: `
Callcheck CLI that will aid with dealing with constraint mapping documents.
This tool can do things like, help you create new mapping documents given straightforward inputs,
lint your mapping documents for declaration problems, explaining a mapping document
in english for better understanding, and replaying recorded calls against it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogger)

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(fixturesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.checkctl.yaml)")

	config.BindFlags(rootCmd.PersistentFlags())
}

// initLogger prepares the logger commands report diagnostics through, user
// facing output goes to stdout directly
func initLogger() {
	var err error

	logger, err = log.NewZapLogger()
	if err != nil {
		fmt.Printf("error while creating logger: %v\n", err)
		os.Exit(2)
	}
}
