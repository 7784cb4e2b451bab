package jobdata

import (
	"fmt"
	"strings"
)

// FieldViolation is a single schema violation at a specific field
type FieldViolation struct {
	Field   string
	Message string
}

// SchemaValidationError reports every field that violated the job data
// schema. The candidate is discarded; callers decide whether to re-prompt.
type SchemaValidationError struct {
	Violations []FieldViolation
}

func (e *SchemaValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("job data failed schema validation:\n")
	for i, v := range e.Violations {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, v.Field, v.Message))
	}
	return sb.String()
}
