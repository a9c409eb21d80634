package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/StinkyLord/py-env-sync/internal/inventory"
	"github.com/StinkyLord/py-env-sync/internal/model"
)

// WriteSyncScript renders the remediation plan as an executable bash script.
// The script installs tier by tier using the given package manager ("uv" or
// "pip"). If outputPath is "-", it writes to stdout without chmod.
func WriteSyncScript(p *model.Plan, outputPath, venvPath, manager string) error {
	script, err := renderSyncScript(p, venvPath, manager)
	if err != nil {
		return err
	}

	if outputPath == "-" {
		_, err := os.Stdout.WriteString(script)
		return err
	}
	if err := os.WriteFile(outputPath, []byte(script), 0644); err != nil {
		return err
	}
	return os.Chmod(outputPath, 0755)
}

func renderSyncScript(p *model.Plan, venvPath, manager string) (string, error) {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	b.WriteString("# Auto-generated script to synchronize the venv with the reference environment\n")
	b.WriteString("# Generated by py-env-sync\n")
	fmt.Fprintf(&b, "# Package manager: %s\n\n", manager)
	b.WriteString("set -e\n\n")

	if p.Len() == 0 {
		b.WriteString("echo 'No packages to sync!'\n")
		return b.String(), nil
	}

	var installCmd string
	switch manager {
	case inventory.ManagerUv:
		absPath, err := filepath.Abs(venvPath)
		if err != nil {
			return "", fmt.Errorf("resolve venv path %q: %w", venvPath, err)
		}
		fmt.Fprintf(&b, "VENV_PATH=%q\n", absPath)
		b.WriteString("export VIRTUAL_ENV=\"$VENV_PATH\"\n\n")
		installCmd = "uv pip install"
	default:
		fmt.Fprintf(&b, "VENV_PIP=%q\n\n", inventory.VenvPip(venvPath))
		installCmd = `"$VENV_PIP" install`
	}

	b.WriteString("echo 'Starting environment synchronization...'\n")
	fmt.Fprintf(&b, "echo 'Total packages to sync: %d'\n", p.Len())

	for _, tier := range p.Tiers {
		if len(tier.Entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\necho '--- Installing %s (%d packages) ---'\n",
			tier.Name, len(tier.Entries))
		for _, e := range tier.Entries {
			fmt.Fprintf(&b, "echo 'Syncing %s==%s (%s)'\n", e.Package, e.Version, e.Reason)
			fmt.Fprintf(&b, "%s \"%s==%s\"\n", installCmd, e.Package, e.Version)
		}
	}

	b.WriteString("\necho 'Synchronization complete.'\n")
	return b.String(), nil
}
