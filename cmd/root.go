// Package cmd wires the command-line interface around the sync engine.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const toolVersion = "1.0.0"

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:     "py-env-sync",
	Version: toolVersion,
	Short:   "Python Environment Synchronization Tool",
	Long: `py-env-sync reconciles two Python package inventories — a reference
conda environment and a target venv — against the packages actually imported
by a codebase.

It scans the codebase for import statements, filters out standard-library and
local modules, maps import names to distribution names (sklearn → scikit-learn),
and compares the required packages across both environments to report:
  • Version mismatches   — present in both, different versions
  • Missing in target    — tracked by conda but absent from the venv
  • Not in reference     — imported by code but unknown to conda

From the diff it generates a requirements file pinned to the reference
versions and a prioritized bash script that brings the venv in sync.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetOutput(os.Stderr)
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: .py-env-sync.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
