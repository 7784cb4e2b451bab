// Package pipeline provides the high-level orchestration shared by the CLI
// and the HTTP server: raw posting text in, validated structured job data
// out.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rmarques/curriculo-agent/internal/extract"
	"github.com/rmarques/curriculo-agent/internal/ingest"
	"github.com/rmarques/curriculo-agent/internal/jobdata"
	"github.com/rmarques/curriculo-agent/internal/keywords"
	"github.com/rmarques/curriculo-agent/internal/llm"
	"github.com/rmarques/curriculo-agent/internal/prompts"
	"github.com/rmarques/curriculo-agent/internal/sanitize"
)

// ParseResult is the outcome of one job parsing run.
type ParseResult struct {
	Job      *jobdata.StructuredJobData `json:"job"`
	Keywords *keywords.Keywords         `json:"keywords,omitempty"`
	Model    string                     `json:"model"`
	Usage    llm.Usage                  `json:"usage"`
	Elapsed  time.Duration              `json:"elapsed"`
}

// ParseOptions configures a parsing run.
type ParseOptions struct {
	Models []string
	// ExtractKeywords also runs the ATS keyword extractor on the validated
	// data. Cheap and deterministic, but opt-in since not every caller
	// wants it.
	ExtractKeywords bool
	// Timeout bounds the whole model invocation including fallbacks. Zero
	// means no bound beyond ctx.
	Timeout time.Duration
}

// ParseJob runs the full parsing pipeline: HTML reduction, sanitization,
// prompt build, ranked-fallback model call, JSON extraction and schema
// validation. Returns the typed pipeline errors unchanged so callers can
// branch on them.
func ParseJob(ctx context.Context, client llm.Client, posting string, opts ParseOptions) (*ParseResult, error) {
	start := time.Now()

	plain, err := ingest.PlainText(posting)
	if err != nil {
		return nil, err
	}
	text := sanitize.Clean(plain)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("job posting is empty after sanitization")
	}

	template, err := prompts.Get("parsing.json", "extract-job-data")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(template, map[string]string{"JobText": text})

	invoke := func(ctx context.Context) (*llm.Result, error) {
		return llm.InvokeWithFallback(ctx, client, opts.Models, prompt)
	}
	var result *llm.Result
	if opts.Timeout > 0 {
		result, err = llm.WithTimeout(ctx, opts.Timeout, invoke)
	} else {
		result, err = invoke(ctx)
	}
	if err != nil {
		return nil, err
	}

	raw, err := extract.ExtractJSON(result.Text)
	if err != nil {
		return nil, err
	}
	job, err := jobdata.Validate(raw)
	if err != nil {
		return nil, err
	}

	parsed := &ParseResult{
		Job:     job,
		Model:   result.Model,
		Usage:   result.Usage,
		Elapsed: time.Since(start),
	}
	if opts.ExtractKeywords {
		parsed.Keywords = keywords.Extract(job)
	}
	return parsed, nil
}

// MarshalJobData renders validated job data as indented JSON for CLI output
// and prompt embedding.
func MarshalJobData(job *jobdata.StructuredJobData) (string, error) {
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode job data: %w", err)
	}
	return string(data), nil
}
