// Package sentiment scores the polarity of a text. The analyzer consumes it through
// the Scorer interface so the lexicon can be replaced or disabled.
package sentiment

import (
	"math"

	"github.com/jonreiter/govader"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Scorer produces a polarity breakdown of a text.
type Scorer interface {
	Score(text string) types.Sentiment
}

// Nop reports every text as fully neutral.
type Nop struct{}

// Score implements Scorer.
func (Nop) Score(string) types.Sentiment {
	return types.Sentiment{Neutral: 1}
}

// Vader scores text with the VADER valence lexicon. The lexicon is loaded once by
// NewVader and only read afterwards, so a Vader is safe for concurrent use.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader loads the VADER lexicon.
func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements Scorer. Text without scorable words yields all zeros.
func (v *Vader) Score(text string) types.Sentiment {
	s := v.analyzer.PolarityScores(text)
	return types.Sentiment{
		Positive: round3(s.Positive),
		Negative: round3(s.Negative),
		Neutral:  round3(s.Neutral),
		Compound: round4(s.Compound),
	}
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
