package inventory

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Package manager names accepted by DetectPackageManager.
const (
	ManagerAuto = "auto"
	ManagerUv   = "uv"
	ManagerPip  = "pip"
)

// DetectPackageManager picks the package manager to use for venv queries and
// install commands. "auto" prefers uv when it is on PATH; an explicit "uv"
// request falls back to pip with a warning when uv is missing.
func DetectPackageManager(prefer string) string {
	if prefer == ManagerPip {
		return ManagerPip
	}
	if _, err := exec.LookPath("uv"); err == nil {
		return ManagerUv
	}
	if prefer == ManagerUv {
		logrus.Warn("uv requested but not found, falling back to pip")
	}
	return ManagerPip
}

// VenvPython returns the interpreter path inside a venv directory.
func VenvPython(venvPath string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvPath, "Scripts", "python.exe")
	}
	return filepath.Join(venvPath, "bin", "python")
}

// VenvPip returns the pip executable path inside a venv directory.
func VenvPip(venvPath string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvPath, "Scripts", "pip.exe")
	}
	return filepath.Join(venvPath, "bin", "pip")
}

// QueryVenv returns the package snapshot of a Python venv, using the given
// package manager ("uv" or "pip", already resolved by DetectPackageManager).
// Like QueryConda, a failure here is fatal to the run.
func QueryVenv(venvPath, manager string) (*Inventory, error) {
	logrus.Infof("querying venv at %q with %s", venvPath, manager)

	python := VenvPython(venvPath)
	if _, err := os.Stat(python); err != nil {
		return nil, fmt.Errorf("no Python executable in venv at %q: %w", venvPath, err)
	}

	var cmd *exec.Cmd
	switch manager {
	case ManagerUv:
		absPath, err := filepath.Abs(venvPath)
		if err != nil {
			return nil, fmt.Errorf("resolve venv path %q: %w", venvPath, err)
		}
		cmd = exec.Command("uv", "pip", "list", "--format=json")
		cmd.Env = append(os.Environ(), "VIRTUAL_ENV="+absPath)
	default:
		cmd = exec.Command(python, "-m", "pip", "list", "--format=json")
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		hint := ""
		if manager == ManagerUv {
			hint = "\nhint: try again with --package-manager pip"
		}
		return nil, fmt.Errorf("query venv packages with %s: %w\n%s%s",
			manager, err, stderr.String(), hint)
	}

	inv, err := decodePipList(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("venv %q: %w", venvPath, err)
	}
	return inv, nil
}
