// Package jobdata defines the structured representation of a parsed job
// posting and validates extractor output against its schema.
package jobdata

// Valid values for the enumerated fields. Matching is exact: accents and
// casing must be preserved by the extraction prompt.
var (
	Modalidades = []string{"Presencial", "Híbrido", "Remoto"}
	TiposVaga   = []string{"Estágio", "Júnior", "Pleno", "Sênior"}
	Idiomas     = []string{"pt", "en"}
)

// StructuredJobData is the validated result of parsing one job posting.
// Instances are created by Validate and never mutated afterwards.
type StructuredJobData struct {
	Empresa    string `json:"empresa"`
	Cargo      string `json:"cargo"`
	Local      string `json:"local"`
	Modalidade string `json:"modalidade"`
	TipoVaga   string `json:"tipo_vaga"`

	RequisitosObrigatorios []string `json:"requisitos_obrigatorios"`
	RequisitosDesejaveis   []string `json:"requisitos_desejaveis"`
	Responsabilidades      []string `json:"responsabilidades"`
	Beneficios             []string `json:"beneficios"`

	// Salario is either null or a currency/number string (see salarioPattern).
	Salario    *string `json:"salario"`
	IdiomaVaga string  `json:"idioma_vaga"`

	// Optional tracking fields filled in by the application layer, not the
	// model. They pass through validation untouched when present.
	NotaInteresse *float64 `json:"nota_interesse,omitempty"`
	NotaAderencia *float64 `json:"nota_aderencia,omitempty"`
	Etapa         string   `json:"etapa,omitempty"`
	Status        string   `json:"status,omitempty"`
	Observacoes   string   `json:"observacoes,omitempty"`
}
