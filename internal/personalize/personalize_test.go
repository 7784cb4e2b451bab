package personalize

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarques/curriculo-agent/internal/jobdata"
	"github.com/rmarques/curriculo-agent/internal/llm"
)

// scriptedClient answers each section's prompt with a canned reply, keyed by
// a marker string the prompt template is known to contain.
type scriptedClient struct {
	mu      sync.Mutex
	replies map[string]string
	models  []string
}

func (c *scriptedClient) GenerateContent(_ context.Context, model string, prompt string) (*llm.Result, error) {
	c.mu.Lock()
	c.models = append(c.models, model)
	c.mu.Unlock()

	for marker, reply := range c.replies {
		if strings.Contains(prompt, marker) {
			return &llm.Result{
				Text:  reply,
				Model: model,
				Usage: llm.Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
			}, nil
		}
	}
	return &llm.Result{Text: "{}", Model: model}, nil
}

func (c *scriptedClient) Close() error { return nil }

const (
	summaryMarker  = "Resumo atual"
	skillsMarker   = "Banco de competências"
	projectsMarker = "Projetos do currículo base"
)

func sampleJobData() *jobdata.StructuredJobData {
	return &jobdata.StructuredJobData{
		Empresa:                "TechBR",
		Cargo:                  "Desenvolvedor Backend",
		Local:                  "São Paulo/SP",
		Modalidade:             "Remoto",
		TipoVaga:               "Pleno",
		RequisitosObrigatorios: []string{"Go", "Docker"},
		RequisitosDesejaveis:   []string{"Kubernetes"},
		Responsabilidades:      []string{"Desenvolver APIs"},
		Beneficios:             []string{},
		IdiomaVaga:             "pt",
	}
}

func validReplies(tpl *Template) map[string]string {
	return map[string]string{
		summaryMarker: `{"summary": "Desenvolvedor Go com foco em APIs e Docker."}`,
		skillsMarker:  `{"skills": [{"category": "Linguagens", "items": ["Go", "SQL"]}, {"category": "Infraestrutura", "items": ["Docker", "Terraform"]}]}`,
		projectsMarker: `{"projects": [
			{"title": "` + tpl.Projects[0].Title + `", "description": ["Transações em Go e Docker."]},
			{"title": "` + tpl.Projects[1].Title + `", "description": ["Pipelines de dados."]}
		]}`,
	}
}

func TestPersonalizeMergesAllSections(t *testing.T) {
	tpl := baseTemplate()
	client := &scriptedClient{replies: validReplies(tpl)}

	outcome, err := Personalize(context.Background(), client, Request{
		Profile:  Profile{Name: "Rafael Marques", Headline: "Backend Engineer"},
		Template: tpl,
		Bank:     sampleBank(),
		Job:      sampleJobData(),
		Models:   []string{"model-a"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Desenvolvedor Go com foco em APIs e Docker.", outcome.Sections.Summary)
	require.Len(t, outcome.Sections.Skills, 2)
	assert.Equal(t, []string{"Go", "SQL"}, outcome.Sections.Skills[0].Items)
	require.Len(t, outcome.Sections.Projects, 2)
	assert.Equal(t, tpl.Projects[0].Title, outcome.Sections.Projects[0].Title)
}

func TestPersonalizeSumsUsageAcrossSections(t *testing.T) {
	tpl := baseTemplate()
	client := &scriptedClient{replies: validReplies(tpl)}

	outcome, err := Personalize(context.Background(), client, Request{
		Template: tpl,
		Bank:     sampleBank(),
		Job:      sampleJobData(),
		Models:   []string{"model-a"},
	})
	require.NoError(t, err)

	assert.Equal(t, llm.Usage{PromptTokens: 300, CompletionTokens: 150, TotalTokens: 450}, outcome.Usage)
	assert.Len(t, client.models, 3, "one call per section")
}

func TestPersonalizeScoresMergedContent(t *testing.T) {
	tpl := baseTemplate()
	client := &scriptedClient{replies: validReplies(tpl)}

	outcome, err := Personalize(context.Background(), client, Request{
		Template: tpl,
		Bank:     sampleBank(),
		Job:      sampleJobData(),
		Models:   []string{"model-a"},
	})
	require.NoError(t, err)

	require.NotNil(t, outcome.Keywords)
	// The merged sections mention Go and Docker, both required skills.
	assert.Positive(t, outcome.ATS.Score)
	assert.LessOrEqual(t, outcome.ATS.Score, 100)
}

func TestPersonalizeRejectsFabricatedSkill(t *testing.T) {
	tpl := baseTemplate()
	replies := validReplies(tpl)
	replies[skillsMarker] = `{"skills": [{"category": "Linguagens", "items": ["Go", "COBOL"]}]}`
	client := &scriptedClient{replies: replies}

	_, err := Personalize(context.Background(), client, Request{
		Template: tpl,
		Bank:     sampleBank(),
		Job:      sampleJobData(),
		Models:   []string{"model-a"},
	})

	var fabErr *FabricationError
	require.ErrorAs(t, err, &fabErr)
	assert.Contains(t, fabErr.Items, "COBOL")
}

func TestPersonalizeRejectsAlteredProjectTitle(t *testing.T) {
	tpl := baseTemplate()
	replies := validReplies(tpl)
	replies[projectsMarker] = `{"projects": [
		{"title": "Plataforma de Pagamentos (2022-2023)", "description": ["x"]},
		{"title": "` + tpl.Projects[1].Title + `", "description": ["y"]}
	]}`
	client := &scriptedClient{replies: replies}

	_, err := Personalize(context.Background(), client, Request{
		Template: tpl,
		Job:      sampleJobData(),
		Models:   []string{"model-a"},
	})

	var fabErr *FabricationError
	require.ErrorAs(t, err, &fabErr)
	assert.Equal(t, "projects", fabErr.Section)
}

func TestPersonalizePropagatesMalformedSection(t *testing.T) {
	tpl := baseTemplate()
	replies := validReplies(tpl)
	replies[summaryMarker] = "Claro! Aqui está o resumo, sem nenhum JSON."
	client := &scriptedClient{replies: replies}

	_, err := Personalize(context.Background(), client, Request{
		Template: tpl,
		Job:      sampleJobData(),
		Models:   []string{"model-a"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary section")
}

func TestPersonalizeRequiresTemplateAndJob(t *testing.T) {
	client := &scriptedClient{replies: map[string]string{}}

	_, err := Personalize(context.Background(), client, Request{Job: sampleJobData(), Models: []string{"m"}})
	assert.Error(t, err)

	_, err = Personalize(context.Background(), client, Request{Template: baseTemplate(), Models: []string{"m"}})
	assert.Error(t, err)
}
