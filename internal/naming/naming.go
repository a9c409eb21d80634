// Package naming maps Python import identifiers to the distribution names
// their packages are published under. Most packages import under their
// distribution name; the table covers the well-known exceptions.
package naming

import (
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-yaml"
)

// defaultTable is the built-in identifier → distribution-name mapping.
// Identifiers absent from the table map to themselves.
var defaultTable = map[string]string{
	"sklearn":   "scikit-learn",
	"cv2":       "opencv-python",
	"PIL":       "Pillow",
	"yaml":      "pyyaml",
	"bs4":       "beautifulsoup4",
	"dotenv":    "python-dotenv",
	"lightning": "pytorch-lightning",
}

// Normalizer resolves import identifiers to distribution package names.
// Construct it once per run; Normalize is a pure function of its table.
type Normalizer struct {
	table map[string]string
}

// NewNormalizer builds a Normalizer from the built-in table extended with
// overrides. Overrides win over built-in entries.
func NewNormalizer(overrides map[string]string) *Normalizer {
	table := make(map[string]string, len(defaultTable)+len(overrides))
	for k, v := range defaultTable {
		table[k] = v
	}
	for k, v := range overrides {
		table[k] = v
	}
	return &Normalizer{table: table}
}

// Normalize returns the distribution name for an import identifier, falling
// back to the identifier itself when no mapping exists.
func (n *Normalizer) Normalize(identifier string) string {
	if name, ok := n.table[identifier]; ok {
		return name
	}
	return identifier
}

// NormalizeAll maps a set of identifiers to a sorted, deduplicated list of
// distribution names.
func (n *Normalizer) NormalizeAll(identifiers map[string]bool) []string {
	seen := make(map[string]bool, len(identifiers))
	for id := range identifiers {
		seen[n.Normalize(id)] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table returns a copy of the active mapping, for reporting and tests.
func (n *Normalizer) Table() map[string]string {
	table := make(map[string]string, len(n.table))
	for k, v := range n.table {
		table[k] = v
	}
	return table
}

// overridesFile is the on-disk format for mapping extensions:
//
//	mappings:
//	  fitz: PyMuPDF
//	  attr: attrs
type overridesFile struct {
	Mappings map[string]string `yaml:"mappings"`
}

// LoadOverrides reads a YAML mapping-override file.
func LoadOverrides(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping overrides %q: %w", path, err)
	}
	var f overridesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse mapping overrides %q: %w", path, err)
	}
	return f.Mappings, nil
}
