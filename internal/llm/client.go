// Package llm abstracts the text-generation backend and implements the
// ranked-fallback invocation layer. Any backend exposing generated text plus
// token usage is substitutable behind the Client interface.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Usage carries the token accounting of a single model call.
type Usage struct {
	PromptTokens     int32 `json:"prompt_tokens"`
	CompletionTokens int32 `json:"completion_tokens"`
	TotalTokens      int32 `json:"total_tokens"`
}

// Add merges another usage count into this one.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// Result is the outcome of one successful model invocation. Ephemeral: it
// lives only as long as the call that produced it.
type Result struct {
	Text    string        `json:"text"`
	Model   string        `json:"model"`
	Usage   Usage         `json:"usage"`
	Elapsed time.Duration `json:"elapsed"`
}

// Options are the sampling parameters applied to every generation request.
type Options struct {
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

// DefaultOptions returns low-temperature settings suited to structured
// extraction output.
func DefaultOptions() Options {
	return Options{
		Temperature:     0.2,
		TopP:            0.95,
		MaxOutputTokens: 8192,
	}
}

// Client is an abstraction over LLM providers.
type Client interface {
	// GenerateContent sends prompt to the named model and returns its reply
	// with token usage and timing.
	GenerateContent(ctx context.Context, model string, prompt string) (*Result, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	opts   Options
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey string, opts Options) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, opts: opts}, nil
}

// GenerateContent sends the prompt to the named Gemini model.
func (c *GeminiClient) GenerateContent(ctx context.Context, modelName string, prompt string) (*Result, error) {
	if modelName == "" {
		return nil, fmt.Errorf("model name is required")
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(c.opts.Temperature)
	model.SetTopP(c.opts.TopP)
	model.SetMaxOutputTokens(c.opts.MaxOutputTokens)

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("model %s: failed to generate content: %w", modelName, err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", modelName, err)
	}

	result := &Result{
		Text:    text,
		Model:   modelName,
		Elapsed: time.Since(start),
	}
	if resp.UsageMetadata != nil {
		result.Usage = Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}
	return result, nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse concatenates the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
