package resume

import "fmt"

// ParseError means the resume could not be structured into the expected
// field set. It is the only error in the system that aborts a run.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resume parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// APICallError represents a failure reaching the text-generation service.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call error: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
