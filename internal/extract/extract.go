// Package extract locates and pulls a JSON object out of free-form LLM output.
// Model replies routinely wrap JSON in prose or markdown fences even when told
// not to, so extraction happens before any schema validation.
package extract

import (
	"encoding/json"
	"strings"
)

const fenceMarker = "```"

// ExtractJSON returns the raw JSON payload embedded in text.
//
// A ```json fenced block takes priority: if one is present, its interior is
// the payload and a parse failure is terminal (a present-but-broken fence is
// treated as the author's intended payload, never skipped). Without a fence,
// the first '{' starts a string-aware brace scan that finds the matching
// closing brace in a single linear pass.
func ExtractJSON(text string) (json.RawMessage, error) {
	if interior, found := fencedInterior(text); found {
		interior = strings.TrimSpace(interior)
		if !isValidJSON(interior) {
			return nil, &ExtractionError{
				Kind:    InvalidFencedJSON,
				Message: "fenced block does not contain valid JSON",
			}
		}
		return json.RawMessage(interior), nil
	}

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, &ExtractionError{
			Kind:    NoJSONFound,
			Message: "no JSON object found in response",
		}
	}

	span, ok := braceSpan(text[start:])
	if !ok || !isValidJSON(span) {
		return nil, &ExtractionError{
			Kind:    InvalidDirectJSON,
			Message: "brace-delimited span does not contain valid JSON",
		}
	}
	return json.RawMessage(span), nil
}

// ExtractObject extracts and decodes the embedded JSON into a generic map.
func ExtractObject(text string) (map[string]any, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &ExtractionError{
			Kind:    InvalidDirectJSON,
			Message: "extracted JSON is not an object",
			Cause:   err,
		}
	}
	return obj, nil
}

// fencedInterior returns the interior of the first ```json fenced block.
// A fence missing its closing delimiter yields the remainder of the text,
// so truncated replies are still parsed rather than silently skipped.
func fencedInterior(text string) (string, bool) {
	offset := 0
	for {
		idx := strings.Index(text[offset:], fenceMarker+"json")
		if idx < 0 {
			return "", false
		}
		idx += offset

		// The opening marker must sit on its own line (possibly indented).
		lineStart := strings.LastIndexByte(text[:idx], '\n') + 1
		if strings.TrimSpace(text[lineStart:idx]) != "" {
			offset = idx + len(fenceMarker)
			continue
		}

		bodyStart := idx + len(fenceMarker+"json")
		if nl := strings.IndexByte(text[bodyStart:], '\n'); nl >= 0 {
			bodyStart += nl + 1
		} else {
			// Opening marker at end of input: empty interior.
			return "", true
		}

		if end := strings.Index(text[bodyStart:], fenceMarker); end >= 0 {
			return text[bodyStart : bodyStart+end], true
		}
		return text[bodyStart:], true
	}
}

// braceSpan scans text starting at a '{' and returns the span up to the
// matching '}'. The scan is string-aware: braces inside quoted JSON strings
// are ignored, and the character after an unescaped backslash is skipped.
// Runs in one pass with no backtracking.
func braceSpan(text string) (string, bool) {
	depth := 0
	inString := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++ // skip escaped character
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[:i+1], true
			}
		}
	}
	return "", false
}

func isValidJSON(s string) bool {
	var v any
	return json.Unmarshal([]byte(s), &v) == nil
}
