package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/StinkyLord/py-env-sync/internal/imports"
	"github.com/StinkyLord/py-env-sync/internal/naming"
)

var importsCmd = &cobra.Command{
	Use:   "imports [paths...]",
	Short: "Print the external package names imported by the codebase",
	Long: `Scan the given paths (or the configured scan paths) for Python import
statements, drop standard-library and local modules, and print the resulting
distribution package names one per line.

Examples:
  py-env-sync imports scripts src
  py-env-sync imports --local-packages tcr src/tcr`,
	RunE: runImports,
}

var flagImportsLocal []string

func init() {
	importsCmd.Flags().StringSliceVar(&flagImportsLocal, "local-packages", nil, "Local package names to exclude")

	rootCmd.AddCommand(importsCmd)
}

func runImports(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		paths = cfg.ScanPaths
	}

	scan := imports.ScanPaths(paths)
	for _, w := range scan.Warnings {
		logrus.Warn(w.String())
	}

	local := make(map[string]bool, len(flagImportsLocal))
	for _, name := range flagImportsLocal {
		local[name] = true
	}
	external := imports.Filter(scan.Identifiers, local, nil)

	normalizer := naming.NewNormalizer(nil)
	for _, name := range normalizer.NormalizeAll(external) {
		fmt.Fprintln(os.Stdout, name)
	}
	return nil
}
