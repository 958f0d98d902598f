package sources

import "fmt"

// SourceFetchError represents a directory-page-level failure. The source
// contributes zero stubs and the error is recorded; other sources are
// unaffected.
type SourceFetchError struct {
	Institution string
	Message     string
	Cause       error
}

func (e *SourceFetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("source %s: %s: %v", e.Institution, e.Message, e.Cause)
	}
	return fmt.Sprintf("source %s: %s", e.Institution, e.Message)
}

func (e *SourceFetchError) Unwrap() error {
	return e.Cause
}
