// Package sanitize neutralizes prompt-injection vectors in raw job posting
// text before it is embedded into any model prompt. Postings are untrusted
// input: anyone can publish one containing markdown structure or
// instruction-like lines aimed at the model.
package sanitize

import "strings"

// MaxPostingLength caps posting size in runes. Anything longer is truncated
// before prompt construction to bound token spend.
const MaxPostingLength = 8000

const redactionToken = "[redacted]"

// instructionPrefixes mark lines that read as instructions to the model
// rather than posting content. Checked case-insensitively after trimming.
var instructionPrefixes = []string{
	"ignore:",
	"ignorar:",
	"system:",
	"sistema:",
	"instruções:",
	"instrucoes:",
	"assistant:",
	"prompt:",
}

// Clean returns a copy of text safe to embed in a prompt: length-capped,
// with code fences and heading markers replaced by a redaction token and
// instruction-like lines redacted entirely.
func Clean(text string) string {
	text = truncate(text, MaxPostingLength)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if isInstructionLine(line) {
			lines[i] = redactionToken
			continue
		}
		lines[i] = redactMarkers(line)
	}
	return strings.Join(lines, "\n")
}

func truncate(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes])
}

func isInstructionLine(line string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	for _, prefix := range instructionPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// redactMarkers strips markdown structure the model could interpret as
// prompt scaffolding: fences anywhere in the line and heading markers at the
// start of it.
func redactMarkers(line string) string {
	line = strings.ReplaceAll(line, "```", redactionToken)

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		rest := strings.TrimLeft(trimmed, "#")
		return redactionToken + rest
	}
	return line
}
