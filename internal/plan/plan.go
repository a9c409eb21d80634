// Package plan derives remediation artifacts from a reconciliation result:
// a pinned requirements manifest and a tiered install plan.
package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/StinkyLord/py-env-sync/internal/inventory"
	"github.com/StinkyLord/py-env-sync/internal/model"
)

// Tier names, in install order.
const (
	TierCritical  = "critical dependencies"
	TierSecondary = "secondary dependencies"
	TierRemaining = "remaining packages"
)

// TierTokens configures the priority heuristic: a package whose name
// contains a critical token installs first, then secondary, then the rest.
// This is a best-effort install ordering, not dependency resolution.
type TierTokens struct {
	Critical  []string
	Secondary []string
}

// DefaultTierTokens returns the built-in token lists.
func DefaultTierTokens() TierTokens {
	return TierTokens{
		Critical:  []string{"numpy", "torch", "pytorch"},
		Secondary: []string{"pytorch-lightning", "lightning", "transformers"},
	}
}

// Manifest pins every required package to its reference-inventory version,
// in lexicographic order. Packages not found in the reference are emitted as
// bare names and returned in unpinned so the caller can warn about them.
func Manifest(required []string, reference *inventory.Inventory) (lines []string, unpinned []string) {
	names := make([]string, len(required))
	copy(names, required)
	sort.Strings(names)

	for _, name := range names {
		if m, ok := reference.Find(name); ok {
			lines = append(lines, fmt.Sprintf("%s==%s", name, m.Version))
		} else {
			lines = append(lines, name)
			unpinned = append(unpinned, name)
		}
	}
	return lines, unpinned
}

// Build assembles the tiered remediation plan. The working list is the
// missing packages (reason "missing") followed by the mismatched ones
// (reason "mismatch"), each pinned to the reference version and sorted
// lexicographically within its source list. The list is then partitioned
// into tiers: critical tokens are tested first, then secondary, so a package
// matching both lands in critical exactly once.
func Build(rec *model.Reconciliation, reference *inventory.Inventory, tokens TierTokens) *model.Plan {
	var entries []model.PlanEntry

	missing := make([]string, len(rec.MissingInTarget))
	copy(missing, rec.MissingInTarget)
	sort.Strings(missing)
	for _, name := range missing {
		m, ok := reference.Find(name)
		if !ok {
			// Cannot pin a version for it; nothing to install.
			continue
		}
		entries = append(entries, model.PlanEntry{
			Package: name,
			Version: m.Version,
			Reason:  model.ReasonMissing,
		})
	}

	mismatched := make([]string, 0, len(rec.Mismatches))
	for name := range rec.Mismatches {
		mismatched = append(mismatched, name)
	}
	sort.Strings(mismatched)
	for _, name := range mismatched {
		entries = append(entries, model.PlanEntry{
			Package: name,
			Version: rec.Mismatches[name].Reference,
			Reason:  model.ReasonMismatch,
		})
	}

	tiers := []model.Tier{
		{Name: TierCritical},
		{Name: TierSecondary},
		{Name: TierRemaining},
	}
	for _, e := range entries {
		switch {
		case containsAny(e.Package, tokens.Critical):
			tiers[0].Entries = append(tiers[0].Entries, e)
		case containsAny(e.Package, tokens.Secondary):
			tiers[1].Entries = append(tiers[1].Entries, e)
		default:
			tiers[2].Entries = append(tiers[2].Entries, e)
		}
	}

	return &model.Plan{Tiers: tiers}
}

// containsAny reports whether name contains any of the tokens,
// case-insensitively.
func containsAny(name string, tokens []string) bool {
	lower := strings.ToLower(name)
	for _, tok := range tokens {
		if strings.Contains(lower, strings.ToLower(tok)) {
			return true
		}
	}
	return false
}
