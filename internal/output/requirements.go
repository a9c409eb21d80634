package output

import (
	"os"
	"strings"
)

// WriteRequirements writes the pinned manifest lines as a requirements file.
// If outputPath is "-", it writes to stdout.
func WriteRequirements(lines []string, outputPath string) error {
	var b strings.Builder
	b.WriteString("# Auto-generated requirements pinned to the reference environment\n")
	b.WriteString("# Generated by py-env-sync\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")

	if outputPath == "-" {
		_, err := os.Stdout.WriteString(b.String())
		return err
	}
	return os.WriteFile(outputPath, []byte(b.String()), 0644)
}
