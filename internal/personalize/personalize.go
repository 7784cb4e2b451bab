package personalize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rmarques/curriculo-agent/internal/ats"
	"github.com/rmarques/curriculo-agent/internal/extract"
	"github.com/rmarques/curriculo-agent/internal/jobdata"
	"github.com/rmarques/curriculo-agent/internal/keywords"
	"github.com/rmarques/curriculo-agent/internal/llm"
	"github.com/rmarques/curriculo-agent/internal/prompts"
	"github.com/rmarques/curriculo-agent/internal/skillbank"
)

// Request carries everything one personalization run needs. Nothing is read
// from globals; the same process can serve different profiles concurrently.
type Request struct {
	Profile  Profile
	Template *Template
	Bank     []skillbank.Entry
	Job      *jobdata.StructuredJobData
	Models   []string
}

// Personalize generates the three résumé sections in parallel, guards each
// against fabrication and scores the merged result against the job's ATS
// keywords. All three sections must succeed; a failure in any one aborts the
// run and no partial usage is reported.
func Personalize(ctx context.Context, client llm.Client, req Request) (*Outcome, error) {
	if req.Template == nil {
		return nil, fmt.Errorf("résumé template is required")
	}
	if req.Job == nil {
		return nil, fmt.Errorf("structured job data is required")
	}

	jobJSON, err := json.MarshalIndent(req.Job, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode job data: %w", err)
	}

	var (
		summaryRes  sectionResult[summaryPayload]
		skillsRes   sectionResult[skillsPayload]
		projectsRes sectionResult[projectsPayload]
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prompt, err := summaryPrompt(req, string(jobJSON))
		if err != nil {
			return err
		}
		summaryRes, err = generateSection[summaryPayload](gCtx, client, req.Models, "summary", prompt)
		return err
	})
	g.Go(func() error {
		prompt, err := skillsPrompt(req, string(jobJSON))
		if err != nil {
			return err
		}
		skillsRes, err = generateSection[skillsPayload](gCtx, client, req.Models, "skills", prompt)
		if err != nil {
			return err
		}
		return GuardSkills(skillsRes.payload.Skills, req.Template, req.Bank)
	})
	g.Go(func() error {
		prompt, err := projectsPrompt(req, string(jobJSON))
		if err != nil {
			return err
		}
		projectsRes, err = generateSection[projectsPayload](gCtx, client, req.Models, "projects", prompt)
		if err != nil {
			return err
		}
		return GuardProjects(projectsRes.payload.Projects, req.Template)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Sections: Sections{
			Summary:  summaryRes.payload.Summary,
			Skills:   skillsRes.payload.Skills,
			Projects: projectsRes.payload.Projects,
		},
		Models: map[string]string{
			"summary":  summaryRes.model,
			"skills":   skillsRes.model,
			"projects": projectsRes.model,
		},
	}
	outcome.Usage.Add(summaryRes.usage)
	outcome.Usage.Add(skillsRes.usage)
	outcome.Usage.Add(projectsRes.usage)

	outcome.Keywords = keywords.Extract(req.Job)
	outcome.ATS = ats.Score(renderSections(&outcome.Sections), outcome.Keywords)
	return outcome, nil
}

type summaryPayload struct {
	Summary string `json:"summary"`
}

type skillsPayload struct {
	Skills []SkillGroup `json:"skills"`
}

type projectsPayload struct {
	Projects []Project `json:"projects"`
}

type sectionResult[T any] struct {
	payload T
	model   string
	usage   llm.Usage
}

// generateSection runs the ranked-fallback call for one section and decodes
// the JSON object embedded in the reply.
func generateSection[T any](ctx context.Context, client llm.Client, models []string, section, prompt string) (sectionResult[T], error) {
	var out sectionResult[T]

	result, err := llm.InvokeWithFallback(ctx, client, models, prompt)
	if err != nil {
		return out, fmt.Errorf("%s section: %w", section, err)
	}

	raw, err := extract.ExtractJSON(result.Text)
	if err != nil {
		return out, fmt.Errorf("%s section: %w", section, err)
	}
	if err := json.Unmarshal(raw, &out.payload); err != nil {
		return out, fmt.Errorf("%s section: unexpected response shape: %w", section, err)
	}

	out.model = result.Model
	out.usage = result.Usage
	return out, nil
}

func summaryPrompt(req Request, jobJSON string) (string, error) {
	template, err := prompts.Get("personalize.json", "personalize-summary")
	if err != nil {
		return "", err
	}
	return prompts.Format(template, map[string]string{
		"CandidateName":     req.Profile.Name,
		"CandidateHeadline": req.Profile.Headline,
		"BaseSummary":       req.Template.Summary,
		"JobData":           jobJSON,
	}), nil
}

func skillsPrompt(req Request, jobJSON string) (string, error) {
	template, err := prompts.Get("personalize.json", "personalize-skills")
	if err != nil {
		return "", err
	}
	return prompts.Format(template, map[string]string{
		"BaseSkills": renderSkillGroups(req.Template.Skills),
		"SkillBank":  renderSkillBank(req.Bank),
		"JobData":    jobJSON,
	}), nil
}

func projectsPrompt(req Request, jobJSON string) (string, error) {
	template, err := prompts.Get("personalize.json", "personalize-projects")
	if err != nil {
		return "", err
	}
	return prompts.Format(template, map[string]string{
		"BaseProjects": renderProjects(req.Template.Projects),
		"JobData":      jobJSON,
	}), nil
}

func renderSkillGroups(groups []SkillGroup) string {
	var b strings.Builder
	for _, group := range groups {
		fmt.Fprintf(&b, "%s: %s\n", group.Category, strings.Join(group.Items, ", "))
	}
	return b.String()
}

func renderSkillBank(bank []skillbank.Entry) string {
	if len(bank) == 0 {
		return "(vazio)"
	}
	var b strings.Builder
	for _, entry := range bank {
		fmt.Fprintf(&b, "- %s (%s) [%s]\n", entry.Skill, entry.Proficiency, entry.Category)
	}
	return b.String()
}

func renderProjects(projects []Project) string {
	var b strings.Builder
	for _, project := range projects {
		fmt.Fprintf(&b, "## %s\n", project.Title)
		for _, line := range project.Description {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	return b.String()
}

// renderSections flattens the personalized sections into plain text for ATS
// keyword matching.
func renderSections(sections *Sections) string {
	var b strings.Builder
	b.WriteString(sections.Summary)
	b.WriteString("\n")
	for _, group := range sections.Skills {
		fmt.Fprintf(&b, "%s: %s\n", group.Category, strings.Join(group.Items, ", "))
	}
	for _, project := range sections.Projects {
		b.WriteString(project.Title)
		b.WriteString("\n")
		for _, line := range project.Description {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
