// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintApplicantProfile outputs a human-readable summary of the
// structured applicant profile.
func (p *Printer) PrintApplicantProfile(profile *types.ApplicantProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:         %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Institution:  %s\n", profile.Institution))
	sb.WriteString(fmt.Sprintf("Major:        %s\n", profile.Major))
	if profile.GradYear > 0 {
		sb.WriteString(fmt.Sprintf("Grad Year:    %d\n", profile.GradYear))
	}

	if len(profile.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
	}

	p.printBox("Applicant Profile", strings.TrimRight(sb.String(), "\n"))
}

// PrintSourceResults outputs per-source discovery counts and failures.
func (p *Printer) PrintSourceResults(results []types.SourceResult) {
	var sb strings.Builder
	for _, res := range results {
		if res.Err != nil {
			sb.WriteString(fmt.Sprintf("%s: FAILED (%v)\n", res.Spec.InstitutionName, res.Err))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %d faculty discovered\n", res.Spec.InstitutionName, len(res.Stubs)))
	}
	p.printBox("Source Enumeration", strings.TrimRight(sb.String(), "\n"))
}

// PrintRunReport outputs the final record tally by status.
func (p *Printer) PrintRunReport(report *types.RunReport) {
	if report == nil {
		return
	}

	counts := report.CountByStatus()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", report.RunID))
	sb.WriteString(fmt.Sprintf("Records:   %d\n", len(report.Records)))
	sb.WriteString(fmt.Sprintf("Complete:  %d\n", counts[types.StatusComplete]))
	sb.WriteString(fmt.Sprintf("Partial:   %d\n", counts[types.StatusPartial]))
	sb.WriteString(fmt.Sprintf("Failed:    %d", counts[types.StatusFailed]))

	p.printBox("Run Summary", sb.String())
}
