// Package report serializes a run's outreach records into the tabular
// output artifact: one CSV row per record, rows in stub discovery order
// within each source, sources in configuration order.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

// columns is the fixed header row of the artifact.
var columns = []string{
	"institution_name",
	"faculty_name",
	"profile_ref",
	"research_summary",
	"email_body",
	"status",
}

// WriteCSV writes the records to w. Records are written in the order the
// report carries them; the pipeline guarantees that order matches stub
// discovery order.
func WriteCSV(w io.Writer, report *types.RunReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range report.Records {
		row := []string{
			rec.InstitutionName,
			rec.FacultyName,
			rec.ProfileRef,
			rec.ResearchSummary,
			rec.EmailBody,
			string(rec.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", rec.FacultyName, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the artifact to path, creating or truncating it.
func WriteFile(path string, report *types.RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating artifact %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteCSV(f, report); err != nil {
		return err
	}
	return f.Close()
}
