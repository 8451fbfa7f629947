// Package validation provides input validation for write payloads. Each
// Validate function checks a typed input and returns every violation found,
// so callers can surface a single aggregated message.
package validation

import (
	"fmt"
	"strings"
)

// FieldError is one violation on a named field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Join collapses all violations into one message, in field order.
func Join(errs []FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, ", ")
}
