package analysis

import (
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/sentiment"
)

// Defaults for Options.
const (
	DefaultMissingKeywordLimit = 5
	DefaultPreviewLength       = 1000
)

// Options selects which optional outputs the report carries.
type Options struct {
	// IncludeMissingKeywords adds the ranked missing job-description terms to the report.
	IncludeMissingKeywords bool
	MissingKeywordLimit    int
	// PreviewLength is the number of characters kept in each document preview; zero disables previews.
	PreviewLength int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		IncludeMissingKeywords: true,
		MissingKeywordLimit:    DefaultMissingKeywordLimit,
		PreviewLength:          DefaultPreviewLength,
	}
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithOptions replaces the report options.
func WithOptions(opts Options) Option {
	return func(a *Analyzer) {
		if opts.MissingKeywordLimit <= 0 {
			opts.MissingKeywordLimit = DefaultMissingKeywordLimit
		}
		if opts.PreviewLength < 0 {
			opts.PreviewLength = 0
		}
		a.opts = opts
	}
}

// WithSentiment sets the scorer applied to the job description. A nil scorer disables sentiment.
func WithSentiment(s sentiment.Scorer) Option {
	return func(a *Analyzer) {
		if s == nil {
			s = sentiment.Nop{}
		}
		a.sentiment = s
	}
}

// WithLogger sets the logger used to report recovered failures.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithStemming toggles the stemming step of normalization.
func WithStemming(enabled bool) Option {
	return func(a *Analyzer) {
		a.stem = enabled
	}
}
