package types

// RecordStatus describes how far a faculty record progressed through the
// pipeline.
type RecordStatus string

// Record statuses.
const (
	// StatusComplete means the summary confidence was ok or degraded and
	// synthesis produced a personalized body.
	StatusComplete RecordStatus = "complete"
	// StatusPartial means a generic template body was used.
	StatusPartial RecordStatus = "partial"
	// StatusFailed means the stub never resolved past discovery; the
	// record is still emitted with placeholder fields so the output count
	// matches the number of discovered stubs.
	StatusFailed RecordStatus = "failed"
)

// OutreachRecord is the unit of output: one row per discovered faculty
// stub, never merged or deduplicated across institutions.
type OutreachRecord struct {
	InstitutionName string       `json:"institution_name"`
	FacultyName     string       `json:"faculty_name"`
	ProfileRef      string       `json:"profile_ref"`
	ResearchSummary string       `json:"research_summary"`
	EmailBody       string       `json:"email_body"`
	Status          RecordStatus `json:"status"`
}

// SourceResult holds the outcome of enumerating one source: the stubs
// discovered in page order, or the directory-level error that produced
// zero stubs. A failed source never aborts its siblings.
type SourceResult struct {
	Spec  SourceSpec    `json:"spec"`
	Stubs []FacultyStub `json:"stubs"`
	Err   error         `json:"-"`
}

// RunReport is the assembled output of one pipeline run. Records are
// ordered by stub discovery order within each source, sources in
// configuration order.
type RunReport struct {
	RunID        string            `json:"run_id"`
	Applicant    *ApplicantProfile `json:"applicant,omitempty"`
	Records      []OutreachRecord  `json:"records"`
	Sources      []SourceResult    `json:"sources,omitempty"`
	SourceErrors map[string]error  `json:"-"`
}

// CountByStatus tallies records per status for logging.
func (r *RunReport) CountByStatus() map[RecordStatus]int {
	counts := make(map[RecordStatus]int, 3)
	for _, rec := range r.Records {
		counts[rec.Status]++
	}
	return counts
}
