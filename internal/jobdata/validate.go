package jobdata

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// salarioPattern accepts plain numbers, Brazilian currency formatting and
// ranges ("R$ 5.000,00", "5000 - 7000", "R$ 4.000 a R$ 6.000 / mês").
const salarioPattern = `^(R\$|US\$|\$|€)?\s*\d+([.,]\d+)*(\s*(-|–|até|a)\s*(R\$|US\$|\$|€)?\s*\d+([.,]\d+)*)?(\s*(/|por)\s*(mês|mes|hora|ano))?$`

// jobSchema is the strict schema for extractor output. Unknown extra fields
// are ignored rather than rejected; enum matching is exact (no case-folding).
// requisitos_desejaveis and beneficios may be empty: plenty of legitimate
// postings simply do not list them.
var jobSchema = fmt.Sprintf(`{
  "type": "object",
  "required": [
    "empresa", "cargo", "local", "modalidade", "tipo_vaga",
    "requisitos_obrigatorios", "requisitos_desejaveis",
    "responsabilidades", "beneficios", "idioma_vaga"
  ],
  "properties": {
    "empresa":    {"type": "string", "minLength": 1},
    "cargo":      {"type": "string", "minLength": 1},
    "local":      {"type": "string", "minLength": 1},
    "modalidade": {"enum": ["Presencial", "Híbrido", "Remoto"]},
    "tipo_vaga":  {"enum": ["Estágio", "Júnior", "Pleno", "Sênior"]},
    "requisitos_obrigatorios": {
      "type": "array", "minItems": 1,
      "items": {"type": "string", "minLength": 1}
    },
    "requisitos_desejaveis": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "responsabilidades": {
      "type": "array", "minItems": 1,
      "items": {"type": "string", "minLength": 1}
    },
    "beneficios": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "salario": {
      "type": ["string", "null"],
      "pattern": %q
    },
    "idioma_vaga": {"enum": ["pt", "en"]}
  }
}`, salarioPattern)

// Validate checks a raw extracted JSON document against the job data schema
// and decodes it into a StructuredJobData. Every violated field is reported
// in a single SchemaValidationError. Validating an already-valid document is
// idempotent.
func Validate(raw json.RawMessage) (*StructuredJobData, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(jobSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, &SchemaValidationError{
			Violations: []FieldViolation{{Field: "(root)", Message: err.Error()}},
		}
	}

	if !result.Valid() {
		verr := &SchemaValidationError{
			Violations: make([]FieldViolation, 0, len(result.Errors())),
		}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			verr.Violations = append(verr.Violations, FieldViolation{
				Field:   field,
				Message: desc.Description(),
			})
		}
		return nil, verr
	}

	var data StructuredJobData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &SchemaValidationError{
			Violations: []FieldViolation{{Field: "(root)", Message: err.Error()}},
		}
	}
	return &data, nil
}

// ValidateData re-validates an in-memory instance, returning it unchanged
// when valid. Used to check round-trip idempotence and artifacts loaded from
// storage.
func ValidateData(data *StructuredJobData) (*StructuredJobData, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, &SchemaValidationError{
			Violations: []FieldViolation{{Field: "(root)", Message: err.Error()}},
		}
	}
	if _, err := Validate(raw); err != nil {
		return nil, err
	}
	return data, nil
}
