package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/sentiment"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "resume_match",
		Short: "Resume to job description matcher",
		Long: "resume_match scores how well a resume matches a job description using text similarity, " +
			"skill taxonomy matching and ATS keyword coverage, and suggests improvements.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Path to a YAML or JSON config file")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "Log format (console, json)")

	root.AddCommand(newAnalyzeCmd(), newServeCmd(), newTaxonomyCmd())
	return root
}

// runtime is the configuration and logger shared by every subcommand.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadRuntime(cmd *cobra.Command) (*runtime, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, err := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, logger: logger}, nil
}

func (rt *runtime) loadTaxonomy() (*taxonomy.Taxonomy, error) {
	if rt.cfg.Analysis.TaxonomyPath == "" {
		return taxonomy.Default(), nil
	}
	tax, err := taxonomy.Load(rt.cfg.Analysis.TaxonomyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	rt.logger.Debug("loaded taxonomy",
		zap.String("path", rt.cfg.Analysis.TaxonomyPath),
		zap.Int("skill_phrases", tax.Skills.PhraseCount()),
		zap.Int("ats_phrases", tax.ATS.PhraseCount()),
	)
	return tax, nil
}

func (rt *runtime) newAnalyzer() (*analysis.Analyzer, error) {
	tax, err := rt.loadTaxonomy()
	if err != nil {
		return nil, err
	}

	ac := rt.cfg.Analysis
	opts := []analysis.Option{
		analysis.WithOptions(analysis.Options{
			IncludeMissingKeywords: ac.IncludeMissingKeywords,
			MissingKeywordLimit:    ac.MissingKeywordLimit,
			PreviewLength:          ac.PreviewLength,
		}),
		analysis.WithStemming(ac.Stemming),
		analysis.WithLogger(rt.logger),
	}
	if ac.Sentiment {
		opts = append(opts, analysis.WithSentiment(sentiment.NewVader()))
	}
	return analysis.New(tax, opts...), nil
}
