// Package skills finds taxonomy phrases in raw document text and compares the findings
// of a job description with those of a resume.
package skills

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
)

// FindMatches returns, per category, the taxonomy phrases that occur anywhere in the text.
// Matching is a case-insensitive substring test on the raw text, so "node.js" and
// multi-word phrases match, and "java" also matches inside "javascript".
// Categories with no hits are omitted; phrase order follows the taxonomy.
func FindMatches(text string, categories taxonomy.Categories) types.Findings {
	findings := types.Findings{}
	if text == "" {
		return findings
	}
	lower := strings.ToLower(text)

	for _, cat := range categories {
		var found []string
		for _, phrase := range cat.Phrases {
			if strings.Contains(lower, strings.ToLower(phrase)) {
				found = append(found, phrase)
			}
		}
		if len(found) > 0 {
			findings = append(findings, types.CategoryPhrases{Category: cat.Name, Phrases: found})
		}
	}

	return findings
}

// CompareFindings matches job-description findings against resume findings, category by
// category. Only categories present in the job description appear in the result; within
// each, matched and missing partition the job-description phrases.
func CompareFindings(jdFindings, resumeFindings types.Findings) types.MatchResult {
	result := types.MatchResult{
		Matched: types.Findings{},
		Missing: types.Findings{},
	}

	for _, jdCat := range jdFindings {
		have := make(map[string]bool)
		for _, phrase := range resumeFindings.Get(jdCat.Category) {
			have[phrase] = true
		}

		matched := make([]string, 0, len(jdCat.Phrases))
		missing := make([]string, 0)
		for _, phrase := range jdCat.Phrases {
			if have[phrase] {
				matched = append(matched, phrase)
			} else {
				missing = append(missing, phrase)
			}
		}

		result.Matched = append(result.Matched, types.CategoryPhrases{Category: jdCat.Category, Phrases: matched})
		result.Missing = append(result.Missing, types.CategoryPhrases{Category: jdCat.Category, Phrases: missing})
		result.MatchedCount += len(matched)
		result.RequiredCount += len(jdCat.Phrases)
	}

	result.MatchPercentage = MatchFraction(result.MatchedCount, result.RequiredCount) * 100
	return result
}

// MatchFraction returns matched / max(1, required).
func MatchFraction(matched, required int) float64 {
	if required < 1 {
		required = 1
	}
	return float64(matched) / float64(required)
}
