// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rmarques/curriculo-agent/internal/ats"
	"github.com/rmarques/curriculo-agent/internal/jobdata"
	"github.com/rmarques/curriculo-agent/internal/keywords"
	"github.com/rmarques/curriculo-agent/internal/personalize"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintJobData outputs a human-readable summary of the validated job data.
func (p *Printer) PrintJobData(job *jobdata.StructuredJobData) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Empresa:     %s\n", job.Empresa))
	sb.WriteString(fmt.Sprintf("Cargo:       %s\n", job.Cargo))
	sb.WriteString(fmt.Sprintf("Local:       %s\n", job.Local))
	sb.WriteString(fmt.Sprintf("Modalidade:  %s / %s\n", job.Modalidade, job.TipoVaga))
	if job.Salario != nil {
		sb.WriteString(fmt.Sprintf("Salário:     %s\n", *job.Salario))
	}
	sb.WriteString("\n")

	writeList(&sb, "Requisitos obrigatórios", job.RequisitosObrigatorios, maxItemsToShow)
	writeList(&sb, "Requisitos desejáveis", job.RequisitosDesejaveis, 3)
	writeList(&sb, "Responsabilidades", job.Responsabilidades, 3)

	p.printBox("VAGA ESTRUTURADA", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs the extracted ATS keywords by category.
func (p *Printer) PrintKeywords(kw *keywords.Keywords) {
	if kw == nil {
		return
	}

	var sb strings.Builder
	writeList(&sb, "Technical terms", kw.TechnicalTerms, maxItemsToShow)
	writeList(&sb, "Required skills", kw.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Action verbs", kw.ActionVerbs, maxItemsToShow)
	writeList(&sb, "Certifications", kw.Certifications, maxItemsToShow)
	writeList(&sb, "Exact phrases", kw.ExactPhrases, maxItemsToShow)
	writeList(&sb, "Acronyms", kw.Acronyms, maxItemsToShow)

	p.printBox("ATS KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScore outputs the ATS score with its per-category breakdown.
func (p *Printer) PrintScore(result ats.Result) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d / 100\n\n", result.Score))

	categories := make([]string, 0, len(result.Breakdown))
	for category := range result.Breakdown {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		cs := result.Breakdown[category]
		sb.WriteString(fmt.Sprintf("%-16s %2d matched  %2d/%2d pts\n", category, cs.Matched, cs.Points, cs.Cap))
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSections outputs the personalized résumé sections.
func (p *Printer) PrintSections(sections *personalize.Sections) {
	if sections == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("Resumo:\n")
	sb.WriteString(fmt.Sprintf("  %s\n\n", sections.Summary))

	for _, group := range sections.Skills {
		sb.WriteString(fmt.Sprintf("%s: %s\n", group.Category, strings.Join(group.Items, ", ")))
	}
	if len(sections.Skills) > 0 {
		sb.WriteString("\n")
	}

	for _, project := range sections.Projects {
		sb.WriteString(fmt.Sprintf("• %s\n", project.Title))
	}

	p.printBox("SEÇÕES PERSONALIZADAS", strings.TrimSuffix(sb.String(), "\n"))
}
