/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for attrorder.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/attrorder/cmd/lint"
	"bennypowers.dev/attrorder/cmd/mcpserver"
	"bennypowers.dev/attrorder/cmd/version"
	"bennypowers.dev/attrorder/internal/logger"
)

// EnvPrefix prefixes environment overrides, e.g. ATTRORDER_FIX=true.
const EnvPrefix = "ATTRORDER"

var rootCmd = &cobra.Command{
	Use:   "attrorder",
	Short: "Lint and fix the order of attributes in Glimmer templates",
	Long: `attrorder checks that the arguments, attributes, modifiers and ...attributes
of every element in a Glimmer template, and the named arguments of every
mustache, are grouped in a configured order and alphabetized.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(viper.GetBool("verbose"))
	},
}

// Execute runs the root command. Interrupts cancel in-flight work.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(func() {
		viper.SetEnvPrefix(EnvPrefix)
		viper.AutomaticEnv()
	})

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(lint.Cmd)
	rootCmd.AddCommand(mcpserver.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
