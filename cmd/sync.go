package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/StinkyLord/py-env-sync/internal/config"
	"github.com/StinkyLord/py-env-sync/internal/imports"
	"github.com/StinkyLord/py-env-sync/internal/inventory"
	"github.com/StinkyLord/py-env-sync/internal/model"
	"github.com/StinkyLord/py-env-sync/internal/naming"
	"github.com/StinkyLord/py-env-sync/internal/output"
	"github.com/StinkyLord/py-env-sync/internal/plan"
	"github.com/StinkyLord/py-env-sync/internal/reconcile"
)

var (
	flagCondaEnv           string
	flagVenvPath           string
	flagScanPaths          []string
	flagLocalPackages      []string
	flagOutputRequirements string
	flagOutputSyncScript   string
	flagNoGenerateFiles    bool
	flagPackageManager     string
	flagVersionEquality    string
	flagReportFormat       string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Compare the venv against the conda environment and generate sync artifacts",
	Long: `Scan the codebase for imported packages, query both environments, and
report version mismatches, packages missing from the venv, and packages not
tracked by conda.

Examples:
  py-env-sync sync --conda-env ml-ref --venv-path .venv
  py-env-sync sync --conda-env ml-ref --venv-path .venv --scan-paths scripts,src/tcr
  py-env-sync sync --conda-env ml-ref --venv-path .venv --report-format json --no-generate-files`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&flagCondaEnv, "conda-env", "", "Name of the conda environment (reference)")
	syncCmd.Flags().StringVar(&flagVenvPath, "venv-path", "", "Path to the Python venv directory (target)")
	syncCmd.Flags().StringSliceVar(&flagScanPaths, "scan-paths", nil, "Paths to scan for imports (default: scripts,src)")
	syncCmd.Flags().StringSliceVar(&flagLocalPackages, "local-packages", nil, "Local package names to exclude")
	syncCmd.Flags().StringVar(&flagOutputRequirements, "output-requirements", "requirements_from_conda.txt", "Output path for the pinned requirements file ('-' for stdout)")
	syncCmd.Flags().StringVar(&flagOutputSyncScript, "output-sync-script", "sync_venv.sh", "Output path for the sync script ('-' for stdout)")
	syncCmd.Flags().BoolVar(&flagNoGenerateFiles, "no-generate-files", false, "Skip generating the requirements file and sync script")
	syncCmd.Flags().StringVar(&flagPackageManager, "package-manager", "auto", "Package manager for venv queries and installs: auto, uv, pip")
	syncCmd.Flags().StringVar(&flagVersionEquality, "version-equality", "exact", "Version comparison strategy: exact, lenient")
	syncCmd.Flags().StringVar(&flagReportFormat, "report-format", "text", "Report format: text, json")

	_ = syncCmd.MarkFlagRequired("conda-env")
	_ = syncCmd.MarkFlagRequired("venv-path")

	rootCmd.AddCommand(syncCmd)
}

// loadConfig binds the shared flags into a fresh viper instance and resolves
// the configuration (flags > env > config file > defaults).
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	bind := func(key, flag string) {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			_ = v.BindPFlag(key, f)
		}
	}
	bind("scan_paths", "scan-paths")
	bind("local_packages", "local-packages")
	bind("package_manager", "package-manager")
	bind("version_equality", "version-equality")

	return config.Load(v, flagConfig)
}

// mappingOverrides merges config-file mappings with an optional overrides
// file; the file wins on conflicts.
func mappingOverrides(cfg *config.Config) (map[string]string, error) {
	overrides := map[string]string{}
	for k, v := range cfg.Mappings {
		overrides[k] = v
	}
	if cfg.MappingsFile != "" {
		fromFile, err := naming.LoadOverrides(cfg.MappingsFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fromFile {
			overrides[k] = v
		}
	}
	return overrides, nil
}

// scanRequired runs the extract and filter steps of the pipeline and
// returns the external identifier set.
func scanRequired(cfg *config.Config) map[string]bool {
	logrus.Infof("scanning %d path(s) for imports", len(cfg.ScanPaths))
	scan := imports.ScanPaths(cfg.ScanPaths)
	for _, w := range scan.Warnings {
		logrus.Warn(w.String())
	}
	logrus.Infof("found %d import(s) across %d file(s)", len(scan.Identifiers), scan.FilesScanned)

	local := make(map[string]bool, len(cfg.LocalPackages))
	for _, name := range cfg.LocalPackages {
		local[name] = true
	}
	return imports.Filter(scan.Identifiers, local, cfg.ExtraStdlib)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	overrides, err := mappingOverrides(cfg)
	if err != nil {
		return err
	}

	external := scanRequired(cfg)
	normalizer := naming.NewNormalizer(overrides)
	required := normalizer.NormalizeAll(external)
	logrus.Infof("%d external package(s) required", len(required))

	// Both inventories are required; a query failure aborts the run.
	reference, err := inventory.QueryConda(flagCondaEnv)
	if err != nil {
		return err
	}
	logrus.Infof("%d package(s) in conda environment", reference.Len())

	manager := inventory.DetectPackageManager(cfg.PackageManager)
	target, err := inventory.QueryVenv(flagVenvPath, manager)
	if err != nil {
		return err
	}
	logrus.Infof("%d package(s) in venv", target.Len())

	equal := reconcile.ExactVersions
	if cfg.VersionEquality == "lenient" {
		equal = reconcile.LenientVersions
	}
	rec := reconcile.Reconcile(required, reference, target, equal)

	switch flagReportFormat {
	case "text":
		if err := output.WriteReport(os.Stdout, rec, reference, target); err != nil {
			return err
		}
	case "json":
		if err := output.WriteReportJSON(os.Stdout, rec, reference, target); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported report format %q (supported: text, json)", flagReportFormat)
	}

	if flagNoGenerateFiles {
		return nil
	}
	return generateFiles(rec, required, reference, manager, cfg)
}

// generateFiles writes the pinned requirements file and the sync script.
func generateFiles(rec *model.Reconciliation, required []string, reference *inventory.Inventory, manager string, cfg *config.Config) error {
	lines, unpinned := plan.Manifest(required, reference)
	for _, name := range unpinned {
		logrus.Warnf("%s not found in reference, adding without version pin", name)
	}
	if err := output.WriteRequirements(lines, flagOutputRequirements); err != nil {
		return fmt.Errorf("write requirements file: %w", err)
	}

	tokens := plan.DefaultTierTokens()
	if len(cfg.CriticalTokens) > 0 {
		tokens.Critical = cfg.CriticalTokens
	}
	if len(cfg.SecondaryTokens) > 0 {
		tokens.Secondary = cfg.SecondaryTokens
	}
	p := plan.Build(rec, reference, tokens)
	if err := output.WriteSyncScript(p, flagOutputSyncScript, flagVenvPath, manager); err != nil {
		return fmt.Errorf("write sync script: %w", err)
	}

	if flagOutputRequirements != "-" {
		fmt.Fprintf(os.Stderr, "Requirements written to: %s\n", flagOutputRequirements)
	}
	if flagOutputSyncScript != "-" {
		fmt.Fprintf(os.Stderr, "Sync script written to:  %s\n", flagOutputSyncScript)
		fmt.Fprintf(os.Stderr, "Run with: bash %s\n", flagOutputSyncScript)
	}
	return nil
}
