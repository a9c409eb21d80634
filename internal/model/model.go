// Package model defines the internal data structures used by the sync engine.
package model

// PackageRecord is a single {name, version} entry as reported by a package
// manager (`pip list --format=json` and friends).
type PackageRecord struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Match is a successful inventory lookup: the key actually present in the
// inventory (which may be a case/separator variant of the queried name) plus
// its version.
type Match struct {
	Key     string
	Version string
}

// VersionPair holds the two versions of a package whose reference and target
// environments disagree. Both strings are kept verbatim as reported.
type VersionPair struct {
	Reference string `json:"reference"`
	Target    string `json:"target"`
}

// Reconciliation classifies every required package into at most one of three
// result sets:
//   - Mismatches: present in both environments with differing versions
//   - MissingInTarget: present in the reference environment only
//   - NotInReference: not tracked by the reference environment at all
//
// A required package absent from all three is fully synced. The slices are
// sorted lexicographically so downstream output is deterministic.
type Reconciliation struct {
	Mismatches      map[string]VersionPair `json:"mismatches"`
	MissingInTarget []string               `json:"missing_in_target"`
	NotInReference  []string               `json:"not_in_reference"`
}

// InSync reports whether the two environments need no work at all.
func (r *Reconciliation) InSync() bool {
	return len(r.Mismatches) == 0 && len(r.MissingInTarget) == 0 && len(r.NotInReference) == 0
}

// Plan entry reasons.
const (
	ReasonMissing  = "missing"
	ReasonMismatch = "mismatch"
)

// PlanEntry is one install action: pin Package to Version (the reference
// environment's version) because of Reason.
type PlanEntry struct {
	Package string `json:"package"`
	Version string `json:"version"`
	Reason  string `json:"reason"`
}

// Tier is a named priority group of plan entries.
type Tier struct {
	Name    string      `json:"name"`
	Entries []PlanEntry `json:"entries"`
}

// Plan is the ordered remediation plan: tiers run critical-first, and the
// entries inside a tier keep their upstream lexicographic order.
type Plan struct {
	Tiers []Tier `json:"tiers"`
}

// Len returns the total number of install actions across all tiers.
func (p *Plan) Len() int {
	n := 0
	for _, t := range p.Tiers {
		n += len(t.Entries)
	}
	return n
}
