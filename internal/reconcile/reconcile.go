// Package reconcile computes the diff between the packages a codebase
// requires and two environment inventories.
package reconcile

import (
	"sort"
	"strconv"
	"strings"

	"github.com/StinkyLord/py-env-sync/internal/inventory"
	"github.com/StinkyLord/py-env-sync/internal/model"
)

// VersionEquality decides whether two version strings denote the same
// version. It is a strategy because version grammars vary across ecosystems
// and the engine makes no guarantee about them.
type VersionEquality func(reference, target string) bool

// ExactVersions treats versions as opaque strings: "1.2" and "1.2.0" are a
// mismatch. This is the default and matches what the inventories report.
func ExactVersions(reference, target string) bool {
	return reference == target
}

// LenientVersions compares dot-separated segments numerically where
// possible, so "1.2" equals "1.2.0" but "1.2" still differs from "1.2.1".
// Non-numeric segments (rc1, post0, ...) fall back to string comparison.
func LenientVersions(reference, target string) bool {
	a := strings.Split(reference, ".")
	b := strings.Split(target, ".")
	for len(a) < len(b) {
		a = append(a, "0")
	}
	for len(b) < len(a) {
		b = append(b, "0")
	}
	for i := range a {
		na, errA := strconv.Atoi(a[i])
		nb, errB := strconv.Atoi(b[i])
		if errA == nil && errB == nil {
			if na != nb {
				return false
			}
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Reconcile classifies every required package name against the reference and
// target inventories. Each name lands in at most one result set:
//
//   - not found in reference  → NotInReference (needs human judgment: a
//     missing mapping entry, a pip-only package, or a stdlib-filter gap)
//   - found in reference only → MissingInTarget
//   - found in both, versions unequal → Mismatches, keyed by the required
//     name, carrying both raw version strings
//   - found in both, versions equal → fully synced, no entry anywhere
//
// Neither inventory is mutated. Output ordering is lexicographic regardless
// of the order of required.
func Reconcile(required []string, reference, target *inventory.Inventory, equal VersionEquality) *model.Reconciliation {
	if equal == nil {
		equal = ExactVersions
	}

	names := make([]string, len(required))
	copy(names, required)
	sort.Strings(names)

	result := &model.Reconciliation{
		Mismatches:      map[string]model.VersionPair{},
		MissingInTarget: []string{},
		NotInReference:  []string{},
	}

	for _, name := range names {
		ref, ok := reference.Find(name)
		if !ok {
			result.NotInReference = append(result.NotInReference, name)
			continue
		}

		tgt, ok := target.Find(name)
		if !ok {
			result.MissingInTarget = append(result.MissingInTarget, name)
			continue
		}

		if !equal(ref.Version, tgt.Version) {
			result.Mismatches[name] = model.VersionPair{
				Reference: ref.Version,
				Target:    tgt.Version,
			}
		}
	}

	return result
}
