package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmarques/curriculo-agent/internal/keywords"
)

func fullKeywords() *keywords.Keywords {
	return &keywords.Keywords{
		RequiredSkills: []string{"Go", "PostgreSQL", "Docker", "Kubernetes", "Redis"},
		TechnicalTerms: []string{"go", "postgresql", "docker", "kubernetes", "redis", "kafka", "terraform", "grafana", "linux"},
		ActionVerbs:    []string{"desenvolver", "implementar", "monitorar", "otimizar", "documentar"},
		ExactPhrases:   []string{"Clean Architecture", "Spring Boot"},
		Acronyms:       []string{"API", "REST", "SQL", "TDD", "AWS"},
	}
}

func fullResume() string {
	return strings.Join([]string{
		"Desenvolvedor com experiência em Go, PostgreSQL, Docker, Kubernetes e Redis.",
		"Também trabalhei com Kafka, Terraform, Grafana e Linux em produção.",
		"Atuei para desenvolver, implementar, monitorar, otimizar e documentar sistemas.",
		"Projetos seguindo Clean Architecture e serviços em Spring Boot.",
		"APIs REST sobre SQL, práticas de TDD e infraestrutura AWS.",
	}, "\n")
}

func TestScoreFullMatchIsExactly100(t *testing.T) {
	result := Score(fullResume(), fullKeywords())

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 40, result.Breakdown["required_skills"].Points)
	assert.Equal(t, 25, result.Breakdown["technical_terms"].Points)
	assert.Equal(t, 15, result.Breakdown["action_verbs"].Points)
	assert.Equal(t, 10, result.Breakdown["exact_phrases"].Points)
	assert.Equal(t, 10, result.Breakdown["acronyms"].Points)
}

func TestScoreZeroMatchesIsZero(t *testing.T) {
	result := Score("texto completamente alheio ao assunto", fullKeywords())

	assert.Equal(t, 0, result.Score)
	for category, cs := range result.Breakdown {
		assert.Zero(t, cs.Matched, "category %s should have no matches", category)
		assert.Zero(t, cs.Points, "category %s should score zero", category)
	}
}

func TestScoreCategoryCaps(t *testing.T) {
	kw := &keywords.Keywords{
		RequiredSkills: []string{"Go", "Docker", "Redis", "Kafka", "Linux", "Git", "SQL"},
	}
	content := "Go Docker Redis Kafka Linux Git SQL"

	result := Score(content, kw)
	// 7 matches at 8 points would be 56; the category cap holds it at 40.
	assert.Equal(t, 7, result.Breakdown["required_skills"].Matched)
	assert.Equal(t, 40, result.Breakdown["required_skills"].Points)
	assert.Equal(t, 40, result.Score)
}

func TestScorePartialMatches(t *testing.T) {
	tests := []struct {
		name     string
		kw       *keywords.Keywords
		content  string
		expected int
	}{
		{
			name:     "two required skills",
			kw:       &keywords.Keywords{RequiredSkills: []string{"Go", "Rust", "Zig"}},
			content:  "experiência com Go e um pouco de Rust",
			expected: 16,
		},
		{
			name:     "one exact phrase",
			kw:       &keywords.Keywords{ExactPhrases: []string{"Clean Architecture", "Domain Driven Design"}},
			content:  "projetos com clean architecture",
			expected: 5,
		},
		{
			name:     "verbs are case-insensitive",
			kw:       &keywords.Keywords{ActionVerbs: []string{"desenvolver"}},
			content:  "Responsável por DESENVOLVER sistemas",
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(tt.content, tt.kw)
			assert.Equal(t, tt.expected, result.Score)
		})
	}
}

func TestScoreAcronymsAreCaseSensitive(t *testing.T) {
	kw := &keywords.Keywords{Acronyms: []string{"REST", "TDD"}}

	lower := Score("apis rest com tdd", kw)
	assert.Zero(t, lower.Score, "lowercase text must not match acronyms")

	upper := Score("APIs REST com TDD", kw)
	assert.Equal(t, 4, upper.Score)
}
