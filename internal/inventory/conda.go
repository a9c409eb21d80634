package inventory

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// QueryConda returns the package snapshot of a conda environment.
//
// It runs pip inside the environment's own interpreter rather than
// `conda list`, which can be stale and misses pip-installed packages.
// A query failure is fatal to the run: without the reference inventory no
// meaningful diff can be produced.
func QueryConda(envName string) (*Inventory, error) {
	logrus.Infof("querying conda environment %q", envName)

	cmd := exec.Command("conda", "run", "-n", envName,
		"python", "-m", "pip", "list", "--format=json")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf(
			"query conda environment %q: %w\n%s\nhint: make sure the environment has pip installed: conda install -n %s pip",
			envName, err, stderr.String(), envName)
	}

	inv, err := decodePipList(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("conda environment %q: %w", envName, err)
	}
	return inv, nil
}
