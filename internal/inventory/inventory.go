// Package inventory models installed-package snapshots of Python
// environments and resolves package names against them despite the
// case and separator inconsistencies common across package managers.
package inventory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/StinkyLord/py-env-sync/internal/model"
)

// Inventory is an immutable snapshot mapping package name → version for one
// environment. Names are lower-cased at construction, matching what pip
// reports; Find still tolerates other spellings of the queried name.
type Inventory struct {
	packages map[string]string
}

// New builds an inventory from package-manager records, lower-casing names.
func New(records []model.PackageRecord) *Inventory {
	packages := make(map[string]string, len(records))
	for _, r := range records {
		packages[strings.ToLower(r.Name)] = r.Version
	}
	return &Inventory{packages: packages}
}

// FromMap builds an inventory from an already-materialized name → version
// mapping. Keys are lower-cased like in New.
func FromMap(m map[string]string) *Inventory {
	packages := make(map[string]string, len(m))
	for name, version := range m {
		packages[strings.ToLower(name)] = version
	}
	return &Inventory{packages: packages}
}

// Len returns the number of packages in the snapshot.
func (inv *Inventory) Len() int { return len(inv.packages) }

// Find resolves a package name against the inventory. The transformations
// are tried in a fixed order and the first hit wins, so resolution is
// deterministic even if an inventory contains multiple spellings of the same
// logical package:
//
//  1. exact key
//  2. lower-cased
//  3. hyphens replaced with underscores
//  4. lower-cased underscore variant
//  5. underscores replaced with hyphens
//  6. lower-cased hyphen variant
func (inv *Inventory) Find(name string) (model.Match, bool) {
	underscore := strings.ReplaceAll(name, "-", "_")
	hyphen := strings.ReplaceAll(name, "_", "-")

	variants := []string{
		name,
		strings.ToLower(name),
		underscore,
		strings.ToLower(underscore),
		hyphen,
		strings.ToLower(hyphen),
	}

	for _, key := range variants {
		if version, ok := inv.packages[key]; ok {
			return model.Match{Key: key, Version: version}, true
		}
	}
	return model.Match{}, false
}

// decodePipList parses `pip list --format=json` output into an inventory.
func decodePipList(data []byte) (*Inventory, error) {
	var records []model.PackageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse pip list output: %w", err)
	}
	return New(records), nil
}
