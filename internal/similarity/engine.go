// Package similarity scores how close a resume is to a job description in vector space.
//
// Two independent representations are built over the union vocabulary of unigrams and
// bigrams of the normalized pair: TF-IDF weights with IDF computed over just the two
// documents, and raw occurrence counts. Each yields a cosine similarity scaled to 0-100.
package similarity

import (
	"sort"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// lowWeightThreshold marks a resume term weight as too weak to count as covered.
const lowWeightThreshold = 0.1

// Engine computes similarity scores and missing terms for a document pair.
// It is safe for concurrent use.
type Engine struct {
	normalizer *parsing.Normalizer
}

// NewEngine creates an Engine that normalizes documents with the given Normalizer.
func NewEngine(normalizer *parsing.Normalizer) *Engine {
	return &Engine{normalizer: normalizer}
}

// Compare returns both similarity scores for a resume against a job description.
func (e *Engine) Compare(resumeText, jdText string) types.SimilarityScores {
	scores, _ := e.Analyze(resumeText, jdText, 0)
	return scores
}

// RankedMissingTerms ranks job-description terms by descending TF-IDF weight and returns,
// in that order, up to limit terms the resume lacks or only weakly covers.
func (e *Engine) RankedMissingTerms(jdText, resumeText string, limit int) []string {
	_, missing := e.Analyze(resumeText, jdText, limit)
	return missing
}

// Analyze builds the vectors once and returns both similarity scores together with
// up to limit ranked missing terms. A limit of zero or less skips the ranking.
func (e *Engine) Analyze(resumeText, jdText string, limit int) (types.SimilarityScores, []string) {
	pair := buildPair(e.normalizer.Normalize(jdText), e.normalizer.Normalize(resumeText))

	scores := types.SimilarityScores{
		TFIDF:   cosine(pair.jdTFIDF, pair.resumeTFIDF) * 100,
		Keyword: cosine(pair.jdCounts, pair.resumeCounts) * 100,
	}

	missing := []string{}
	if limit > 0 {
		missing = pair.missingTerms(limit)
	}
	return scores, missing
}

// missingTerms returns up to limit job-description terms, ranked by TF-IDF weight,
// whose weight in the resume is zero or below lowWeightThreshold.
// Ties keep vocabulary order.
func (p *documentPair) missingTerms(limit int) []string {
	ranked := make([]int, 0, p.vocab.size())
	for i := range p.vocab.terms {
		if p.jdTFIDF[i] > 0 {
			ranked = append(ranked, i)
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return p.jdTFIDF[ranked[a]] > p.jdTFIDF[ranked[b]]
	})

	missing := make([]string, 0, limit)
	for _, i := range ranked {
		if len(missing) >= limit {
			break
		}
		if p.resumeTFIDF[i] < lowWeightThreshold {
			missing = append(missing, p.vocab.terms[i])
		}
	}
	return missing
}
