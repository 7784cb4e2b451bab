package personalize

import (
	"fmt"
	"strings"

	"github.com/rmarques/curriculo-agent/internal/skillbank"
)

// FabricationError reports model output that claims content the candidate
// never provided. Items lists every offending entry so the caller can log
// or display all of them at once.
type FabricationError struct {
	Section string
	Items   []string
}

func (e *FabricationError) Error() string {
	return fmt.Sprintf("fabricated content in %s section: %s", e.Section, strings.Join(e.Items, "; "))
}

// proficiencyExpert marks skills the candidate lists without qualification;
// lower levels may be rendered with the level attached.
const proficiencyExpert = "Expert"

// allowedSkills builds the set of skill strings the model is permitted to
// return: every template item verbatim, plus every bank entry both bare and,
// below expert proficiency, in "Skill (Proficiency)" form.
func allowedSkills(tpl *Template, bank []skillbank.Entry) map[string]bool {
	allowed := make(map[string]bool)
	for _, group := range tpl.Skills {
		for _, item := range group.Items {
			allowed[item] = true
		}
	}
	for _, entry := range bank {
		allowed[entry.Skill] = true
		if entry.Proficiency != "" && entry.Proficiency != proficiencyExpert {
			allowed[fmt.Sprintf("%s (%s)", entry.Skill, entry.Proficiency)] = true
		}
	}
	return allowed
}

// stripParenthetical removes a trailing "(...)" qualifier, so that
// "Docker (Básico)" is recognized when only "Docker" is allowed.
func stripParenthetical(item string) string {
	trimmed := strings.TrimSpace(item)
	if !strings.HasSuffix(trimmed, ")") {
		return trimmed
	}
	open := strings.LastIndex(trimmed, "(")
	if open <= 0 {
		return trimmed
	}
	return strings.TrimSpace(trimmed[:open])
}

func skillAllowed(item string, allowed map[string]bool) bool {
	if allowed[item] {
		return true
	}
	if allowed[stripParenthetical(item)] {
		return true
	}
	// A truncated form of an allowed entry is not a fabrication, just a
	// shortening, e.g. "AWS Solutions" for "AWS Solutions Architect".
	for entry := range allowed {
		if item != "" && strings.HasPrefix(entry, item) {
			return true
		}
	}
	return false
}

// GuardSkills verifies every returned skill item exists in the template or
// the skill bank. Unknown items are collected, never dropped silently.
func GuardSkills(groups []SkillGroup, tpl *Template, bank []skillbank.Entry) error {
	allowed := allowedSkills(tpl, bank)

	var fabricated []string
	for _, group := range groups {
		for _, item := range group.Items {
			if !skillAllowed(item, allowed) {
				fabricated = append(fabricated, item)
			}
		}
	}
	if len(fabricated) > 0 {
		return &FabricationError{Section: "skills", Items: fabricated}
	}
	return nil
}

// GuardProjects verifies the returned projects match the template one to
// one: same count, same order, titles byte-identical. Only descriptions may
// be rewritten.
func GuardProjects(projects []Project, tpl *Template) error {
	if len(projects) != len(tpl.Projects) {
		return &FabricationError{
			Section: "projects",
			Items:   []string{fmt.Sprintf("expected %d projects, got %d", len(tpl.Projects), len(projects))},
		}
	}

	var altered []string
	for i, project := range projects {
		if project.Title != tpl.Projects[i].Title {
			altered = append(altered, fmt.Sprintf("title %d changed from %q to %q", i+1, tpl.Projects[i].Title, project.Title))
		}
	}
	if len(altered) > 0 {
		return &FabricationError{Section: "projects", Items: altered}
	}
	return nil
}

// CheckSections runs every section check. The summary is free-form prose and
// is deliberately not checked; the prompt instructs the model to keep facts
// and there is no structured source to verify it against.
func CheckSections(sections *Sections, tpl *Template, bank []skillbank.Entry) error {
	if err := GuardSkills(sections.Skills, tpl, bank); err != nil {
		return err
	}
	return GuardProjects(sections.Projects, tpl)
}
