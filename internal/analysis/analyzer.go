// Package analysis composes normalization, similarity, skill matching, ATS scoring,
// sentiment and recommendations into a single report.
package analysis

import (
	"fmt"
	"math"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/recommend"
	"github.com/jonathan/resume-matcher/internal/sentiment"
	"github.com/jonathan/resume-matcher/internal/similarity"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Overall score weights. They sum to 1.
const (
	WeightTFIDF   = 0.4
	WeightKeyword = 0.3
	WeightSkill   = 0.3
)

// Analyzer scores resumes against job descriptions. It holds only read-only state
// and is safe for concurrent use.
type Analyzer struct {
	taxonomy  *taxonomy.Taxonomy
	engine    *similarity.Engine
	sentiment sentiment.Scorer
	logger    *zap.Logger
	opts      Options
	stem      bool
}

// New creates an Analyzer over the given taxonomy. A nil taxonomy uses the embedded default.
// Sentiment is disabled unless WithSentiment is given.
func New(tax *taxonomy.Taxonomy, opts ...Option) *Analyzer {
	if tax == nil {
		tax = taxonomy.Default()
	}
	a := &Analyzer{
		taxonomy:  tax,
		sentiment: sentiment.Nop{},
		logger:    zap.NewNop(),
		opts:      DefaultOptions(),
		stem:      true,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.engine = similarity.NewEngine(parsing.NewNormalizer(tax.StopwordSet(), a.stem))
	return a
}

// Taxonomy returns the taxonomy the analyzer scores against.
func (a *Analyzer) Taxonomy() *taxonomy.Taxonomy {
	return a.taxonomy
}

// Options returns the report options in effect.
func (a *Analyzer) Options() Options {
	return a.opts
}

// Analyze matches a resume against a job description. It never panics: any failure is
// returned as a report with Success false and a message.
func (a *Analyzer) Analyze(resumeText, jdText string) (report *types.AnalysisReport) {
	defer func() {
		if r := recover(); r != nil {
			err := &AnalysisError{Stage: "analyze", Message: fmt.Sprintf("unexpected panic: %v", r)}
			a.logger.Warn("analysis recovered from panic", zap.Error(err))
			report = types.Failure(err.Error())
		}
	}()

	report, err := a.analyze(resumeText, jdText)
	if err != nil {
		a.logger.Warn("analysis failed", zap.Error(err))
		return types.Failure(err.Error())
	}
	return report
}

func (a *Analyzer) analyze(resumeText, jdText string) (*types.AnalysisReport, error) {
	limit := 0
	if a.opts.IncludeMissingKeywords {
		limit = a.opts.MissingKeywordLimit
	}
	scores, missingTerms := a.engine.Analyze(resumeText, jdText, limit)
	if err := checkFinite("similarity", scores.TFIDF, scores.Keyword); err != nil {
		return nil, err
	}

	jdSkills := skills.FindMatches(jdText, a.taxonomy.Skills)
	resumeSkills := skills.FindMatches(resumeText, a.taxonomy.Skills)
	match := skills.CompareFindings(jdSkills, resumeSkills)

	atsReport := ats.Evaluate(resumeText, a.taxonomy.ATS)

	mood := a.sentiment.Score(jdText)
	if err := checkFinite("sentiment", mood.Positive, mood.Negative, mood.Neutral, mood.Compound); err != nil {
		return nil, err
	}

	overall := OverallScore(scores, match)
	if err := checkFinite("overall score", overall); err != nil {
		return nil, err
	}

	recs := recommend.Recommend(match, atsReport.Keywords, a.taxonomy.ATS.Lookup(taxonomy.ActionVerbsCategory))

	match.MatchPercentage = ats.Round2(match.MatchPercentage)
	report := &types.AnalysisReport{
		Success:           true,
		OverallScore:      ats.Round2(overall),
		TFIDFSimilarity:   ats.Round2(scores.TFIDF),
		KeywordSimilarity: ats.Round2(scores.Keyword),
		SkillMatch:        match,
		Sentiment:         mood,
		ATSKeywords:       atsReport.Keywords,
		ATSCompatibility:  atsReport.Compatibility,
		Recommendations:   recs,
	}
	if a.opts.IncludeMissingKeywords {
		report.MissingKeywords = missingTerms
	}
	if a.opts.PreviewLength > 0 {
		report.ResumePreview = Preview(resumeText, a.opts.PreviewLength)
		report.JobDescriptionPreview = Preview(jdText, a.opts.PreviewLength)
	}
	return report, nil
}

// OverallScore combines both similarities and the skill match percentage, all on a
// 0-100 scale, into a single 0-100 score.
func OverallScore(scores types.SimilarityScores, match types.MatchResult) float64 {
	skillPct := skills.MatchFraction(match.MatchedCount, match.RequiredCount) * 100
	return WeightTFIDF*scores.TFIDF + WeightKeyword*scores.Keyword + WeightSkill*skillPct
}

// Preview returns the first n characters of text, followed by "..." when truncated.
func Preview(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}

func checkFinite(stage string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &AnalysisError{Stage: stage, Message: fmt.Sprintf("non-finite value %v", v)}
		}
	}
	return nil
}
