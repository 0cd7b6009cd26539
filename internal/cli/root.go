// Package cli defines Cobra command definitions for the runlet CLI.
// This file contains the root command and version flag.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	debug   bool
	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "runlet",
	Short: "Boilerplate harness for one-off administrative tasks",
	Long: `Runlet wraps ad-hoc workloads in a consistent envelope: a file-backed
session log, console status output, a progress indicator, and start/end
timestamp and duration reporting. Drop your own logic into the workload
step and every run gets the same transcript.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Echo DEBUG log lines to the console as well as the log file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(cleanCmd)
}
