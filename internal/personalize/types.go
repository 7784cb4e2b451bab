// Package personalize generates AI-personalized résumé sections from a base
// template and guards the result against fabricated content. The model
// output is untrusted: anything not present in the template or the user's
// skill bank is rejected, never silently corrected.
package personalize

import (
	"github.com/rmarques/curriculo-agent/internal/ats"
	"github.com/rmarques/curriculo-agent/internal/keywords"
	"github.com/rmarques/curriculo-agent/internal/llm"
)

// Profile identifies the candidate whose résumé is being personalized. It is
// threaded explicitly through every call so multiple profiles can be served
// by one process without shared state.
type Profile struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
}

// SkillGroup is one category of skills with its ordered items.
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Project is one portfolio entry. The title carries its date range and must
// never be altered by personalization.
type Project struct {
	Title       string   `json:"title"`
	Description []string `json:"description"`
}

// Template is the base résumé content: the source of truth every
// personalized section is checked against.
type Template struct {
	Summary  string       `json:"summary"`
	Skills   []SkillGroup `json:"skills"`
	Projects []Project    `json:"projects"`
}

// Sections is the personalized output merged back into template shape.
type Sections struct {
	Summary  string       `json:"summary"`
	Skills   []SkillGroup `json:"skills"`
	Projects []Project    `json:"projects"`
}

// Outcome bundles the personalized sections with their ATS evaluation and
// the aggregated cost of producing them. Usage is only summed once all three
// section calls have succeeded.
type Outcome struct {
	Sections Sections           `json:"sections"`
	Keywords *keywords.Keywords `json:"keywords"`
	ATS      ats.Result         `json:"ats"`
	Usage    llm.Usage          `json:"usage"`
	// Models maps each section to the model that generated it; the ranked
	// fallback chain may settle on different models per section.
	Models map[string]string `json:"models"`
}
