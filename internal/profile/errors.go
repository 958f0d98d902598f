package profile

import "fmt"

// FetchError represents a stub-level profile retrieval failure. It is
// logged, not propagated: the profile is marked unavailable instead.
type FetchError struct {
	Ref   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("profile fetch failed for %s: %v", e.Ref, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
