// Package keywords derives ATS keyword categories from a structured job
// posting. Extraction is deterministic and pure: the same posting always
// yields the same keywords, and every category has a fixed cap so a single
// repeated term cannot dominate downstream scoring or prompts.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/rmarques/curriculo-agent/internal/jobdata"
)

// Per-category caps. They bound the scoring weight each category can
// contribute (see the ats package) and keep prompt size stable.
const (
	maxTechnicalTerms = 10
	maxRequiredSkills = 7
	maxActionVerbs    = 5
	maxCertifications = 5
	maxExactPhrases   = 5
	maxAcronyms       = 8
)

// minTermFrequency is the repetition threshold for technical_terms.
const minTermFrequency = 2

// Keywords holds the six ATS keyword categories derived from one posting.
type Keywords struct {
	TechnicalTerms []string `json:"technical_terms"`
	RequiredSkills []string `json:"required_skills"`
	ActionVerbs    []string `json:"action_verbs"`
	Certifications []string `json:"certifications"`
	ExactPhrases   []string `json:"exact_phrases"`
	Acronyms       []string `json:"acronyms"`
}

var (
	isoPattern       = regexp.MustCompile(`\bISO[ -]?\d{3,5}\b`)
	safetyPattern    = regexp.MustCompile(`\bNR[ -]?\d{1,2}\b`)
	certCodePattern  = regexp.MustCompile(`\b[A-Z]{2,5}-\d{2,4}[A-Z0-9]*\b`)
	certAfterPattern = regexp.MustCompile(`(?i)certifica(?:ção|cao|tion)\s+(?:em\s+|in\s+)?([A-Za-zÀ-ú0-9 .+#/-]{2,40})`)
	quotedPattern    = regexp.MustCompile(`"([^"\n]{3,60})"`)
	titleCasePattern = regexp.MustCompile(`\b[A-ZÁÉÍÓÚÂÊÔÃÕÇ][a-záéíóúâêôãõç]+(?: [A-ZÁÉÍÓÚÂÊÔÃÕÇ][a-záéíóúâêôãõç]+)+\b`)
	acronymPattern   = regexp.MustCompile(`\b[A-Z]{2,5}\b`)
)

// Extract derives all six keyword categories from a validated posting.
func Extract(job *jobdata.StructuredJobData) *Keywords {
	fullText := joinSources(job)

	return &Keywords{
		TechnicalTerms: extractTechnicalTerms(job),
		RequiredSkills: extractRequiredSkills(job.RequisitosObrigatorios),
		ActionVerbs:    extractActionVerbs(job.Responsabilidades),
		Certifications: extractCertifications(fullText),
		ExactPhrases:   extractExactPhrases(fullText),
		Acronyms:       extractAcronyms(fullText),
	}
}

// joinSources concatenates every free-text portion of the posting.
func joinSources(job *jobdata.StructuredJobData) string {
	parts := make([]string, 0, 2+len(job.RequisitosObrigatorios)+len(job.RequisitosDesejaveis)+len(job.Responsabilidades)+len(job.Beneficios))
	parts = append(parts, job.Cargo)
	parts = append(parts, job.RequisitosObrigatorios...)
	parts = append(parts, job.RequisitosDesejaveis...)
	parts = append(parts, job.Responsabilidades...)
	parts = append(parts, job.Beneficios...)
	return strings.Join(parts, "\n")
}

// extractTechnicalTerms counts token frequency (case-insensitive) over the
// role title plus requirement and responsibility strings, keeping tokens
// that repeat and look technical. Sorted by descending frequency, ties
// broken by first appearance so output is deterministic.
func extractTechnicalTerms(job *jobdata.StructuredJobData) []string {
	sources := make([]string, 0, 1+len(job.RequisitosObrigatorios)+len(job.RequisitosDesejaveis)+len(job.Responsabilidades))
	sources = append(sources, job.Cargo)
	sources = append(sources, job.RequisitosObrigatorios...)
	sources = append(sources, job.RequisitosDesejaveis...)
	sources = append(sources, job.Responsabilidades...)

	counts := make(map[string]int)
	firstForm := make(map[string]string)
	order := make(map[string]int)

	pos := 0
	for _, source := range sources {
		for _, token := range strings.Fields(source) {
			token = strings.Trim(token, ".,;:()[]{}\"'!?")
			if len(token) < 2 {
				continue
			}
			lower := strings.ToLower(token)
			counts[lower]++
			if _, seen := firstForm[lower]; !seen {
				firstForm[lower] = token
				order[lower] = pos
				pos++
			}
		}
	}

	candidates := make([]string, 0, len(counts))
	for lower, count := range counts {
		if count >= minTermFrequency && looksTechnical(firstForm[lower]) {
			candidates = append(candidates, lower)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if counts[candidates[i]] != counts[candidates[j]] {
			return counts[candidates[i]] > counts[candidates[j]]
		}
		return order[candidates[i]] < order[candidates[j]]
	})

	terms := make([]string, 0, maxTechnicalTerms)
	for _, lower := range candidates {
		terms = append(terms, firstForm[lower])
		if len(terms) == maxTechnicalTerms {
			break
		}
	}
	return terms
}

// looksTechnical reports whether a token plausibly names a technology:
// digits, embedded uppercase, hyphens and dots are strong signals
// (C++, K8s, node.js, CI-CD), with a fixed substring list as fallback.
func looksTechnical(token string) bool {
	for _, r := range token {
		if unicode.IsDigit(r) || unicode.IsUpper(r) || r == '-' || r == '.' {
			return true
		}
	}
	lower := strings.ToLower(token)
	for _, sub := range technicalSubstrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// extractRequiredSkills takes the mandatory requirements verbatim, skipping
// placeholder entries that mean "unspecified".
func extractRequiredSkills(required []string) []string {
	skills := make([]string, 0, maxRequiredSkills)
	for _, req := range required {
		if placeholderValues[strings.ToLower(strings.TrimSpace(req))] {
			continue
		}
		skills = append(skills, req)
		if len(skills) == maxRequiredSkills {
			break
		}
	}
	return skills
}

// extractActionVerbs scans responsibility tokens against the bilingual verb
// dictionary, preserving first-seen order without duplicates.
func extractActionVerbs(responsibilities []string) []string {
	verbs := make([]string, 0, maxActionVerbs)
	seen := make(map[string]bool)

	for _, resp := range responsibilities {
		for _, token := range strings.Fields(resp) {
			token = strings.ToLower(strings.Trim(token, ".,;:()!?"))
			if actionVerbs[token] && !seen[token] {
				verbs = append(verbs, token)
				seen[token] = true
				if len(verbs) == maxActionVerbs {
					return verbs
				}
			}
		}
	}
	return verbs
}

// extractCertifications matches known certification and standard patterns.
func extractCertifications(text string) []string {
	certs := make([]string, 0, maxCertifications)
	seen := make(map[string]bool)

	add := func(cert string) {
		cert = strings.TrimSpace(cert)
		key := strings.ToLower(cert)
		if cert == "" || seen[key] || len(certs) == maxCertifications {
			return
		}
		certs = append(certs, cert)
		seen[key] = true
	}

	for _, m := range isoPattern.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range safetyPattern.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range certCodePattern.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range certAfterPattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	return certs
}

// extractExactPhrases collects quoted substrings, Title-Case multi-word
// sequences, and known multi-word tool names present in the text.
func extractExactPhrases(text string) []string {
	phrases := make([]string, 0, maxExactPhrases)
	seen := make(map[string]bool)

	add := func(phrase string) {
		phrase = strings.TrimSpace(phrase)
		key := strings.ToLower(phrase)
		if phrase == "" || seen[key] || len(phrases) == maxExactPhrases {
			return
		}
		phrases = append(phrases, phrase)
		seen[key] = true
	}

	for _, m := range quotedPattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range titleCasePattern.FindAllString(text, -1) {
		add(m)
	}
	lowerText := strings.ToLower(text)
	for _, phrase := range knownPhrases {
		if strings.Contains(lowerText, strings.ToLower(phrase)) {
			add(phrase)
		}
	}
	return phrases
}

// extractAcronyms matches bare 2-5 letter uppercase tokens, excluding the
// country/state abbreviations that ride along in location strings.
func extractAcronyms(text string) []string {
	acronyms := make([]string, 0, maxAcronyms)
	seen := make(map[string]bool)

	for _, m := range acronymPattern.FindAllString(text, -1) {
		if acronymFalsePositives[m] || seen[m] {
			continue
		}
		acronyms = append(acronyms, m)
		seen[m] = true
		if len(acronyms) == maxAcronyms {
			break
		}
	}
	return acronyms
}
