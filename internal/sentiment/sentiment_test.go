package sentiment

import (
	"sync"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNop(t *testing.T) {
	var s Scorer = Nop{}
	assert.Equal(t, types.Sentiment{Neutral: 1}, s.Score("anything at all"))
}

func TestVader_Empty(t *testing.T) {
	assert.Equal(t, types.Sentiment{}, NewVader().Score(""))
}

func TestVader_Polarity(t *testing.T) {
	vader := NewVader()

	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, s types.Sentiment)
	}{
		{
			name: "positive posting",
			text: "Join an exciting, innovative team with great benefits",
			check: func(t *testing.T, s types.Sentiment) {
				assert.Greater(t, s.Compound, 0.5)
				assert.Greater(t, s.Positive, 0.0)
				assert.Equal(t, 0.0, s.Negative)
			},
		},
		{
			name: "negative posting",
			text: "Stressful, terrible environment where people are miserable",
			check: func(t *testing.T, s types.Sentiment) {
				assert.Less(t, s.Compound, -0.5)
				assert.Greater(t, s.Negative, 0.0)
				assert.Equal(t, 0.0, s.Positive)
			},
		},
		{
			name: "neutral posting",
			text: "Looking for a Python developer",
			check: func(t *testing.T, s types.Sentiment) {
				assert.Equal(t, 0.0, s.Compound)
				assert.Equal(t, 1.0, s.Neutral)
			},
		},
		{
			name: "negation flips valence",
			text: "this role is not boring",
			check: func(t *testing.T, s types.Sentiment) {
				assert.Greater(t, s.Compound, 0.0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := vader.Score(tt.text)
			assert.GreaterOrEqual(t, s.Compound, -1.0)
			assert.LessOrEqual(t, s.Compound, 1.0)
			assert.InDelta(t, 1.0, s.Positive+s.Negative+s.Neutral, 0.002)
			tt.check(t, s)
		})
	}
}

func TestVader_ConcurrentUse(t *testing.T) {
	vader := NewVader()
	want := vader.Score("great opportunity")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, vader.Score("great opportunity"))
		}()
	}
	wg.Wait()
}
