// Package output renders the reconciliation results: the human-readable
// report, the pinned requirements manifest, and the bash sync script.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/StinkyLord/py-env-sync/internal/inventory"
	"github.com/StinkyLord/py-env-sync/internal/model"
)

const reportRule = "================================================================================"
const reportThinRule = "--------------------------------------------------------------------------------"

// WriteReport renders the sectioned text comparison report.
func WriteReport(w io.Writer, rec *model.Reconciliation, reference, target *inventory.Inventory) error {
	var b strings.Builder

	b.WriteString("\n" + reportRule + "\n")
	b.WriteString("ENVIRONMENT SYNCHRONIZATION REPORT\n")
	b.WriteString(reportRule + "\n")

	if len(rec.Mismatches) > 0 {
		fmt.Fprintf(&b, "\nVERSION MISMATCHES (%d packages):\n", len(rec.Mismatches))
		b.WriteString(reportThinRule + "\n")
		fmt.Fprintf(&b, "%-30s %-20s %-20s\n", "Package", "Reference", "Target")
		b.WriteString(reportThinRule + "\n")
		names := make([]string, 0, len(rec.Mismatches))
		for name := range rec.Mismatches {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			pair := rec.Mismatches[name]
			fmt.Fprintf(&b, "%-30s %-20s %-20s\n", name, pair.Reference, pair.Target)
		}
	} else {
		b.WriteString("\nNo version mismatches found.\n")
	}

	if len(rec.MissingInTarget) > 0 {
		fmt.Fprintf(&b, "\nMISSING IN TARGET (%d packages):\n", len(rec.MissingInTarget))
		b.WriteString(reportThinRule + "\n")
		for _, name := range rec.MissingInTarget {
			version := "unknown"
			if m, ok := reference.Find(name); ok {
				version = m.Version
			}
			fmt.Fprintf(&b, "  - %-30s (reference version: %s)\n", name, version)
		}
	}

	if len(rec.NotInReference) > 0 {
		fmt.Fprintf(&b, "\nNOT IN REFERENCE (%d packages):\n", len(rec.NotInReference))
		b.WriteString(reportThinRule + "\n")
		b.WriteString("These packages are imported in the code but not found in the reference\n")
		b.WriteString("environment. They might be:\n")
		b.WriteString("  1. Incorrectly mapped import names (extend the mapping table)\n")
		b.WriteString("  2. Packages installed via pip only (not tracked by the reference manager)\n")
		b.WriteString("  3. Optional dependencies that aren't needed\n\n")
		for _, name := range rec.NotInReference {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
	}

	b.WriteString("\n" + reportRule + "\n")
	fmt.Fprintf(&b, "Summary: %d reference packages, %d target packages\n",
		reference.Len(), target.Len())
	b.WriteString(reportRule + "\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// jsonReport is the machine-readable report shape.
type jsonReport struct {
	Summary         jsonSummary                  `json:"summary"`
	Mismatches      map[string]model.VersionPair `json:"mismatches"`
	MissingInTarget []string                     `json:"missing_in_target"`
	NotInReference  []string                     `json:"not_in_reference"`
}

type jsonSummary struct {
	ReferencePackages int  `json:"reference_packages"`
	TargetPackages    int  `json:"target_packages"`
	InSync            bool `json:"in_sync"`
}

// WriteReportJSON renders the report as indented JSON.
func WriteReportJSON(w io.Writer, rec *model.Reconciliation, reference, target *inventory.Inventory) error {
	report := jsonReport{
		Summary: jsonSummary{
			ReferencePackages: reference.Len(),
			TargetPackages:    target.Len(),
			InSync:            rec.InSync(),
		},
		Mismatches:      rec.Mismatches,
		MissingInTarget: rec.MissingInTarget,
		NotInReference:  rec.NotInReference,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
