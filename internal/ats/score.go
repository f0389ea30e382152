// Package ats scores a resume against the ATS keyword taxonomy (action verbs, soft skills).
package ats

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Score returns the share of ATS phrases found, as a percentage rounded to two decimals.
// The denominator is the total number of phrases defined across all ATS categories.
func Score(findings types.Findings, categories taxonomy.Categories) float64 {
	return Round2(100 * skills.MatchFraction(findings.Count(), categories.PhraseCount()))
}

// Evaluate matches the ATS taxonomy against raw resume text and scores the result.
func Evaluate(text string, categories taxonomy.Categories) types.ATSReport {
	findings := skills.FindMatches(text, categories)
	return types.ATSReport{
		Keywords: findings,
		Compatibility: types.ATSCompatibility{
			Score: Score(findings, categories),
			Found: findings.Count(),
			Total: categories.PhraseCount(),
		},
	}
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
