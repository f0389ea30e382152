package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Output formats of the analyze command.
const (
	formatText = "text"
	formatJSON = "json"
)

// errAnalysisFailed is returned after a failure report has been written.
var errAnalysisFailed = errors.New("analysis failed")

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume against a job description",
		Long: `Decode a resume (.txt, .md, .pdf, .docx) and a job description (file or --job-text),
then print the match score, the top missing keywords and recommendations.`,
		Args: cobra.NoArgs,
		RunE: runAnalyze,
	}

	cmd.Flags().String("resume", "", "Path to the resume file")
	cmd.Flags().String("job", "", "Path to the job description file")
	cmd.Flags().String("job-text", "", "Job description text (instead of --job)")
	cmd.Flags().String("format", formatText, "Output format (text, json)")
	cmd.Flags().StringP("out", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().String("taxonomy", "", "Path to a taxonomy JSON file (default: built-in)")
	cmd.Flags().Int("keyword-limit", 5, "Maximum number of missing keywords to report")
	cmd.Flags().Int("preview-length", 1000, "Characters kept in each document preview (0 disables)")
	cmd.Flags().Bool("no-stemming", false, "Disable stemming during normalization")
	cmd.MarkFlagsMutuallyExclusive("job", "job-text")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != formatText && format != formatJSON {
		return fmt.Errorf("invalid --format %q: must be %s or %s", format, formatText, formatJSON)
	}

	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.logger.Sync() //nolint:errcheck

	analyzer, err := rt.newAnalyzer()
	if err != nil {
		return err
	}

	resumePath, _ := cmd.Flags().GetString("resume")
	jobPath, _ := cmd.Flags().GetString("job")
	jobText, _ := cmd.Flags().GetString("job-text")

	result, err := pipeline.Run(cmd.Context(), analyzer, pipeline.RunOptions{
		ResumePath: resumePath,
		JobPath:    jobPath,
		JobText:    jobText,
		OnProgress: func(e pipeline.ProgressEvent) {
			rt.logger.Debug(e.Message, zap.String("step", e.Step), zap.String("category", e.Category))
		},
	})
	if err != nil {
		return err
	}
	rt.logger.Info("analysis complete",
		zap.Bool("success", result.Report.Success),
		zap.Float64("overall_score", result.Report.OverallScore),
		zap.Duration("elapsed", result.Elapsed),
	)

	outPath, _ := cmd.Flags().GetString("out")
	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		out = f
	}

	if err := writeReport(out, result.Report, format); err != nil {
		return err
	}
	if !result.Report.Success {
		return errAnalysisFailed
	}
	return nil
}

// writeReport renders the report. JSON output is checked against the report schema first.
func writeReport(out io.Writer, report *types.AnalysisReport, format string) error {
	if format == formatText {
		observability.NewPrinter(out).PrintReport(report)
		return nil
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := schemas.ValidateReport(data); err != nil {
		return fmt.Errorf("report does not match schema: %w", err)
	}
	if _, err := fmt.Fprintln(out, string(data)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
