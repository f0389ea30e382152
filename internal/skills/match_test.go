package skills

import (
	"testing"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = taxonomy.Categories{
	{Name: "programming", Phrases: []string{"python", "java", "javascript", "c++"}},
	{Name: "web", Phrases: []string{"react", "flask", "node.js", "rest api"}},
	{Name: "cloud", Phrases: []string{"aws", "kubernetes"}},
}

func TestFindMatches_CaseInsensitive(t *testing.T) {
	findings := FindMatches("I use Python and REACT", testCategories)

	assert.Equal(t, []string{"python"}, findings.Get("programming"))
	assert.Equal(t, []string{"react"}, findings.Get("web"))
	assert.NotContains(t, findings.Categories(), "cloud", "categories without hits are omitted")
}

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected types.Findings
	}{
		{
			name:     "empty text",
			text:     "",
			expected: types.Findings{},
		},
		{
			name: "punctuated and multi-word phrases",
			text: "Built Node.js services behind a REST API in C++",
			expected: types.Findings{
				{Category: "programming", Phrases: []string{"c++"}},
				{Category: "web", Phrases: []string{"node.js", "rest api"}},
			},
		},
		{
			name: "substring approximation matches java inside javascript",
			text: "JavaScript only",
			expected: types.Findings{
				{Category: "programming", Phrases: []string{"java", "javascript"}},
			},
		},
		{
			name: "taxonomy order not text order",
			text: "kubernetes on aws",
			expected: types.Findings{
				{Category: "cloud", Phrases: []string{"aws", "kubernetes"}},
			},
		},
		{
			name: "repeated mentions are not duplicated",
			text: "python python PYTHON",
			expected: types.Findings{
				{Category: "programming", Phrases: []string{"python"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindMatches(tt.text, testCategories))
		})
	}
}

func TestCompareFindings(t *testing.T) {
	jd := types.Findings{
		{Category: "programming", Phrases: []string{"python", "java"}},
		{Category: "web", Phrases: []string{"flask"}},
	}
	resume := types.Findings{
		{Category: "programming", Phrases: []string{"python", "c++"}},
		{Category: "cloud", Phrases: []string{"aws"}},
	}

	result := CompareFindings(jd, resume)

	assert.Equal(t, []string{"programming", "web"}, result.Matched.Categories())
	assert.Equal(t, []string{"programming", "web"}, result.Missing.Categories())
	assert.Equal(t, []string{"python"}, result.Matched.Get("programming"))
	assert.Equal(t, []string{"java"}, result.Missing.Get("programming"))
	assert.Empty(t, result.Matched.Get("web"))
	assert.Equal(t, []string{"flask"}, result.Missing.Get("web"))
	assert.NotContains(t, result.Matched.Categories(), "cloud", "resume-only categories never appear")

	assert.Equal(t, 1, result.MatchedCount)
	assert.Equal(t, 3, result.RequiredCount)
	assert.InDelta(t, 100.0/3, result.MatchPercentage, 1e-9)
}

func TestCompareFindings_Disjoint(t *testing.T) {
	jd := FindMatches("Python, Java, React, Flask and AWS", testCategories)
	resume := FindMatches("React and Python and Kubernetes", testCategories)

	result := CompareFindings(jd, resume)
	for _, category := range result.Matched.Categories() {
		matched := result.Matched.Get(category)
		for _, phrase := range result.Missing.Get(category) {
			assert.NotContains(t, matched, phrase, "category %s", category)
		}
	}
}

func TestCompareFindings_EmptyJobDescription(t *testing.T) {
	result := CompareFindings(types.Findings{}, FindMatches("python", testCategories))

	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Missing)
	assert.Equal(t, 0, result.RequiredCount)
	assert.Equal(t, 0.0, result.MatchPercentage)
}

func TestCompareFindings_FullMatch(t *testing.T) {
	jd := FindMatches("Looking for a Python developer with leadership experience and Flask knowledge", testCategories)
	resume := FindMatches("Developed REST APIs using Python and Flask, led a team of 3 engineers", testCategories)

	result := CompareFindings(jd, resume)
	require.Equal(t, 2, result.RequiredCount)
	assert.Equal(t, []string{"python"}, result.Matched.Get("programming"))
	assert.Equal(t, []string{"flask"}, result.Matched.Get("web"))
	assert.Equal(t, 100.0, result.MatchPercentage)
}

func TestMatchFraction(t *testing.T) {
	assert.Equal(t, 0.0, MatchFraction(0, 0))
	assert.Equal(t, 0.5, MatchFraction(1, 2))
	assert.Equal(t, 1.0, MatchFraction(3, 3))
}
