package recommend

import (
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

var verbs = []string{"developed", "managed", "led", "created", "implemented"}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name     string
		match    types.MatchResult
		ats      types.Findings
		expected []string
	}{
		{
			name: "missing skills per category, capped at three",
			match: types.MatchResult{
				Missing: types.Findings{
					{Category: "programming", Phrases: []string{"python", "java", "rust", "scala"}},
					{Category: "web", Phrases: []string{}},
					{Category: "cloud", Phrases: []string{"aws"}},
				},
			},
			ats: types.Findings{
				{Category: "action_verbs", Phrases: verbs},
			},
			expected: []string{
				"Consider adding programming skills such as python, java, rust.",
				"Consider adding cloud skills such as aws.",
			},
		},
		{
			name:  "missing action verbs in taxonomy order",
			match: types.MatchResult{},
			ats: types.Findings{
				{Category: "action_verbs", Phrases: []string{"managed"}},
			},
			expected: []string{
				"Use strong action verbs such as developed, led, created to describe your achievements.",
			},
		},
		{
			name:     "nothing missing",
			match:    types.MatchResult{Missing: types.Findings{{Category: "web", Phrases: []string{}}}},
			ats:      types.Findings{{Category: "action_verbs", Phrases: verbs}},
			expected: []string{Encouragement},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Recommend(tt.match, tt.ats, verbs))
		})
	}
}

func TestRecommend_NeverEmpty(t *testing.T) {
	assert.Equal(t, []string{Encouragement}, Recommend(types.MatchResult{}, nil, nil))
	assert.Equal(t, []string{Encouragement}, Recommend(types.MatchResult{}, types.Findings{}, []string{}))
}

func TestRecommend_Deterministic(t *testing.T) {
	match := types.MatchResult{
		Missing: types.Findings{{Category: "data", Phrases: []string{"pandas", "numpy"}}},
	}
	first := Recommend(match, types.Findings{}, verbs)
	second := Recommend(match, types.Findings{}, verbs)
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}
