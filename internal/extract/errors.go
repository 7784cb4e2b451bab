package extract

import "fmt"

// Kind identifies why JSON extraction from a model reply failed.
type Kind string

// Extraction failure kinds
const (
	// NoJSONFound means the reply contained neither a fenced block nor a '{'
	NoJSONFound Kind = "no_json_found"
	// InvalidFencedJSON means a ```json fence was present but its interior did not parse
	InvalidFencedJSON Kind = "invalid_fenced_json"
	// InvalidDirectJSON means the brace-delimited span did not parse as JSON
	InvalidDirectJSON Kind = "invalid_direct_json"
)

// ExtractionError reports a failure to locate valid JSON in model output
type ExtractionError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed (%s): %s", e.Kind, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
