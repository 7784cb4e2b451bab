// Package ats emulates applicant-tracking-system keyword scanning: a coarse
// bag-of-substrings score of résumé content against job keywords. It is
// deliberately not semantic similarity; the point is to predict how real
// ATS scanners rate the document.
package ats

import (
	"strings"

	"github.com/rmarques/curriculo-agent/internal/keywords"
)

// Points per match and per-category point caps. The caps sum to 100, so the
// total never needs clamping.
const (
	requiredSkillPoints = 8
	requiredSkillCap    = 40
	technicalTermPoints = 3
	technicalTermCap    = 25
	actionVerbPoints    = 3
	actionVerbCap       = 15
	exactPhrasePoints   = 5
	exactPhraseCap      = 10
	acronymPoints       = 2
	acronymCap          = 10
)

// CategoryScore is the per-category portion of the breakdown.
type CategoryScore struct {
	Matched int `json:"matched"`
	Cap     int `json:"cap"`
	Points  int `json:"points"`
}

// Result is an ATS compatibility score with its per-category breakdown.
// Derived on demand, never persisted.
type Result struct {
	Score     int                      `json:"score"`
	Breakdown map[string]CategoryScore `json:"breakdown"`
}

// Score rates content against the given keywords on a 0-100 scale.
//
// Keywords are a required input: the caller extracts them once (via the
// keywords package) and passes them down, keeping this package free of any
// dependency back onto the extractor.
func Score(content string, kw *keywords.Keywords) Result {
	folded := strings.ToLower(content)

	breakdown := map[string]CategoryScore{
		"required_skills": scoreCategory(folded, lowerAll(kw.RequiredSkills), requiredSkillPoints, requiredSkillCap),
		"technical_terms": scoreCategory(folded, lowerAll(kw.TechnicalTerms), technicalTermPoints, technicalTermCap),
		"action_verbs":    scoreCategory(folded, lowerAll(kw.ActionVerbs), actionVerbPoints, actionVerbCap),
		"exact_phrases":   scoreCategory(folded, lowerAll(kw.ExactPhrases), exactPhrasePoints, exactPhraseCap),
		// Acronyms match case-sensitively against the original content:
		// "rest" in prose is not the same signal as "REST".
		"acronyms": scoreCategory(content, kw.Acronyms, acronymPoints, acronymCap),
	}

	total := 0
	for _, cs := range breakdown {
		total += cs.Points
	}

	return Result{Score: total, Breakdown: breakdown}
}

// scoreCategory counts how many keyword entries appear as substrings of the
// blob and converts matches to capped points.
func scoreCategory(blob string, entries []string, perMatch, maxPoints int) CategoryScore {
	matched := 0
	for _, entry := range entries {
		if entry != "" && strings.Contains(blob, entry) {
			matched++
		}
	}

	points := matched * perMatch
	if points > maxPoints {
		points = maxPoints
	}
	return CategoryScore{Matched: matched, Cap: maxPoints, Points: points}
}

func lowerAll(entries []string) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = strings.ToLower(e)
	}
	return out
}
