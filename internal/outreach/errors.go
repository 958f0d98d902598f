package outreach

import "fmt"

// SynthesisError represents a stub-level generation failure, recovered by
// falling back to the deterministic template body.
type SynthesisError struct {
	Faculty string
	Cause   error
}

func (e *SynthesisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("synthesis failed for %s: %v", e.Faculty, e.Cause)
	}
	return fmt.Sprintf("synthesis failed for %s: empty response", e.Faculty)
}

func (e *SynthesisError) Unwrap() error {
	return e.Cause
}
