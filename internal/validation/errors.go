package validation

import "fmt"

// ValidationError names the missing or malformed field that failed a shape
// check. It is never retried: the same inputs reproduce the same invalid
// output, so the caller must abandon the record instead.
//
//nolint:revive // qualified as validation.ValidationError at call sites in tests
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
