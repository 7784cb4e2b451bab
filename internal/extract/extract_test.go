package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONFencedBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]any
	}{
		{
			name:     "fence with surrounding prose",
			input:    "text before\n```json\n{\"empresa\":\"Test\"}\n```\nafter",
			expected: map[string]any{"empresa": "Test"},
		},
		{
			name:     "fence only",
			input:    "```json\n{\"cargo\":\"Dev\"}\n```",
			expected: map[string]any{"cargo": "Dev"},
		},
		{
			name:     "fence with extra whitespace around payload",
			input:    "```json\n\n  {\"a\": 1}  \n\n```",
			expected: map[string]any{"a": float64(1)},
		},
		{
			name:     "only first fence is used",
			input:    "```json\n{\"first\": true}\n```\n```json\n{\"second\": true}\n```",
			expected: map[string]any{"first": true},
		},
		{
			name:     "fence missing closing delimiter",
			input:    "```json\n{\"empresa\":\"Aberta\"}",
			expected: map[string]any{"empresa": "Aberta"},
		},
		{
			name:     "indented fence markers",
			input:    "  ```json\n{\"ok\": true}\n  ```",
			expected: map[string]any{"ok": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := ExtractJSON(tt.input)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractJSONBrokenFenceDoesNotFallThrough(t *testing.T) {
	// The fence interior is broken JSON, but a valid object follows the
	// block. The fence is the author's intended payload, so extraction
	// must fail instead of scanning past it.
	input := "```json\n{\"empresa\": broken\n```\n{\"empresa\":\"Valida\"}"

	_, err := ExtractJSON(input)
	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, InvalidFencedJSON, extErr.Kind)
}

func TestExtractJSONBraceScan(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]any
	}{
		{
			name:     "bare object",
			input:    `{"empresa":"Test"}`,
			expected: map[string]any{"empresa": "Test"},
		},
		{
			name:     "object with prose around it",
			input:    `Here is the data: {"cargo":"Engenheiro"} hope it helps!`,
			expected: map[string]any{"cargo": "Engenheiro"},
		},
		{
			name:     "literal brace inside string value",
			input:    `{"text":"a { b"}`,
			expected: map[string]any{"text": "a { b"},
		},
		{
			name:     "closing brace inside string value",
			input:    `{"text":"a } b","next":1}`,
			expected: map[string]any{"text": "a } b", "next": float64(1)},
		},
		{
			name:     "escaped quote inside string",
			input:    `{"text":"she said \"hi\" {"}`,
			expected: map[string]any{"text": `she said "hi" {`},
		},
		{
			name:     "nested objects",
			input:    `prefix {"outer":{"inner":{"deep":true}}} suffix`,
			expected: map[string]any{"outer": map[string]any{"inner": map[string]any{"deep": true}}},
		},
		{
			name:     "emoji and accents round-trip",
			input:    `{"local":"São Paulo 🇧🇷","beneficio":"café ☕"}`,
			expected: map[string]any{"local": "São Paulo 🇧🇷", "beneficio": "café ☕"},
		},
		{
			name:     "trailing garbage after object ignored",
			input:    `{"a":1}}}`,
			expected: map[string]any{"a": float64(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObject(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractJSONFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
	}{
		{"empty input", "", NoJSONFound},
		{"whitespace only", "   \n\t  ", NoJSONFound},
		{"prose without braces", "no structured data here", NoJSONFound},
		{"unbalanced open brace", `{"empresa":"Test"`, InvalidDirectJSON},
		{"brace but not JSON", "{not json at all}", InvalidDirectJSON},
		{"broken fenced payload", "```json\n{oops\n```", InvalidFencedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractJSON(tt.input)
			var extErr *ExtractionError
			require.ErrorAs(t, err, &extErr)
			assert.Equal(t, tt.kind, extErr.Kind)
		})
	}
}

func TestExtractJSONLargePayloadIsLinear(t *testing.T) {
	// 1000-element array inside the object; a backtracking scan would blow
	// well past the budget here.
	var sb strings.Builder
	sb.WriteString(`{"items":[`)
	for i := 0; i < 1000; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"id":%d,"name":"item with {braces} inside %d"}`, i, i)
	}
	sb.WriteString(`]}`)
	input := "some leading prose\n" + sb.String() + "\ntrailing prose"

	start := time.Now()
	raw, err := ExtractJSON(input)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, elapsed, time.Second, "extraction should be linear in input size")

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Len(t, got["items"], 1000)
}
