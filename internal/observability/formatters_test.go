package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleReport() *types.AnalysisReport {
	return &types.AnalysisReport{
		Success:           true,
		OverallScore:      62.5,
		TFIDFSimilarity:   40.12,
		KeywordSimilarity: 55.3,
		SkillMatch: types.MatchResult{
			Matched: types.Findings{
				{Category: "programming", Phrases: []string{"python"}},
				{Category: "web", Phrases: []string{}},
			},
			Missing: types.Findings{
				{Category: "programming", Phrases: []string{"golang"}},
				{Category: "web", Phrases: []string{"flask"}},
			},
			MatchPercentage: 33.33,
			MatchedCount:    1,
			RequiredCount:   3,
		},
		Sentiment:        types.Sentiment{Neutral: 0.8, Positive: 0.2, Compound: 0.42},
		ATSCompatibility: types.ATSCompatibility{Score: 11.11, Found: 2, Total: 18},
		Recommendations: []string{
			"Consider adding programming skills such as golang.",
			"Use strong action verbs such as managed, created, implemented to describe your achievements.",
		},
		MissingKeywords: []string{"golang", "flask"},
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary(sampleReport())
	output := buf.String()

	assert.Contains(t, output, "Resume Match Score: 62.50%")
	assert.Contains(t, output, "Top Missing Keywords:")
	assert.Contains(t, output, "1. golang")
	assert.Contains(t, output, "2. flask")
	assert.Contains(t, output, strings.Repeat("=", 50))
}

func TestPrintSummary_NoMissingKeywords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := sampleReport()
	report.MissingKeywords = nil
	p.PrintSummary(report)

	assert.Contains(t, buf.String(), "Great! Your resume covers all important keywords")
	assert.NotContains(t, buf.String(), "Top Missing Keywords")
}

func TestPrintSummary_Failure(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary(types.Failure("analysis failed at sentiment: boom"))

	assert.Contains(t, buf.String(), "An error occurred: analysis failed at sentiment: boom")
	assert.NotContains(t, buf.String(), "Resume Match Score")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(sampleReport())
	output := buf.String()

	assert.Contains(t, output, "MATCH SCORES")
	assert.Contains(t, output, "ATS compatibility:   11.11% (2 of 18)")
	assert.Contains(t, output, "SKILL MATCH")
	assert.Contains(t, output, "✓ python")
	assert.Contains(t, output, "✗ flask")
	assert.Contains(t, output, "RECOMMENDATIONS")
	assert.Contains(t, output, "• Consider adding programming skills such as golang.")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(nil)
	p.PrintRecommendations(nil)
	p.PrintSkillMatch(types.MatchResult{})

	assert.Empty(t, buf.String())
}

func TestPrintBox_LinesFitWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200)+"\nshort")
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four five", 9)
	assert.Equal(t, []string{"one two", "three", "four five"}, lines)
	assert.Empty(t, wrap("", 10))
}

func TestJoinLimited(t *testing.T) {
	assert.Equal(t, "a, b", joinLimited([]string{"a", "b"}))
	assert.Equal(t, "a, b, c, d, e ... and 2 more", joinLimited([]string{"a", "b", "c", "d", "e", "f", "g"}))
}
