package summarize

import "fmt"

// SummarizationError represents a stub-level summarization failure,
// recovered by marking the research focus unavailable.
type SummarizationError struct {
	Faculty string
	Cause   error
}

func (e *SummarizationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("summarization failed for %s: %v", e.Faculty, e.Cause)
	}
	return fmt.Sprintf("summarization failed for %s: empty response", e.Faculty)
}

func (e *SummarizationError) Unwrap() error {
	return e.Cause
}
