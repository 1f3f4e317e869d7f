package generate

import "fmt"

// APICallError represents a failure talking to the generation provider.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents structurally unusable generator output: JSON that
// fails the schema gate or cannot be unmarshalled. Never retried by callers,
// since the same inputs are expected to reproduce it.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
