package types

// FacultyStub is the minimal faculty identity produced by a source
// adapter: a name and a profile reference. Stubs are uniquely identified
// by (InstitutionName, ProfileRef) within a run.
type FacultyStub struct {
	InstitutionName string `json:"institution_name"`
	Name            string `json:"name"`
	ProfileRef      string `json:"profile_ref"`
}

// Key returns the identity pair used for dedup and idempotence checks.
func (s FacultyStub) Key() [2]string {
	return [2]string{s.InstitutionName, s.ProfileRef}
}

// FacultyProfile is a stub enriched with the raw text of the faculty
// member's profile page. RawText may be empty when every fetch attempt
// failed; emptiness is a valid terminal state, not an error.
type FacultyProfile struct {
	Stub    FacultyStub `json:"stub"`
	RawText string      `json:"raw_text"`
}

// Confidence qualifies how reliable a derived research summary is.
type Confidence string

// Confidence levels, ordered from best to worst.
const (
	// ConfidenceOK marks a summary derived from substantial profile text.
	ConfidenceOK Confidence = "ok"
	// ConfidenceDegraded marks a summary produced despite thin or garbled
	// input; callers may choose to omit the research-focus line.
	ConfidenceDegraded Confidence = "degraded"
	// ConfidenceUnavailable marks that no summary could be produced.
	ConfidenceUnavailable Confidence = "unavailable"
)

// ResearchFocus is the normalized research-focus statement for one
// faculty member, tagged with a confidence level.
type ResearchFocus struct {
	Stub       FacultyStub `json:"stub"`
	Summary    string      `json:"summary"`
	Confidence Confidence  `json:"confidence"`
}

// Usable reports whether the summary should feed personalization.
func (r ResearchFocus) Usable() bool {
	return r.Confidence != ConfidenceUnavailable && r.Summary != ""
}
