// Package pipeline loads a resume and a job description and runs the analysis over them.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Step names reported in ProgressEvent.Step.
const (
	StepResume         = "resume"
	StepJobDescription = "job_description"
	StepAnalysis       = "analysis"
)

// Categories reported in ProgressEvent.Category.
const (
	CategoryIngestion = "ingestion"
	CategoryAnalysis  = "analysis"
)

// inlineJobName is the metadata filename of a job description passed as text.
const inlineJobName = "job_description.txt"

// ErrMissingInput is returned when RunOptions names no resume or no job description.
var ErrMissingInput = errors.New("missing input")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ResumePath string
	JobPath    string
	// JobText is used instead of JobPath when non-empty.
	JobText    string
	OnProgress ProgressCallback
}

// Result is the analysis report together with the decoded inputs.
type Result struct {
	Report  *types.AnalysisReport
	Resume  *ingestion.Document
	Job     *ingestion.Document
	Elapsed time.Duration
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// Run decodes both documents concurrently and analyzes them. Progress events are
// emitted from the calling goroutine, loading events first. A failed analysis is not
// an error: it is reported through Result.Report.
func Run(ctx context.Context, analyzer *analysis.Analyzer, opts RunOptions) (*Result, error) {
	if opts.ResumePath == "" {
		return nil, fmt.Errorf("%w: resume path is required", ErrMissingInput)
	}
	if opts.JobPath == "" && opts.JobText == "" {
		return nil, fmt.Errorf("%w: job description path or text is required", ErrMissingInput)
	}

	g, gCtx := errgroup.WithContext(ctx)

	var resume, job *ingestion.Document
	g.Go(func() error {
		doc, err := loadFile(gCtx, opts.ResumePath)
		if err != nil {
			return fmt.Errorf("loading resume: %w", err)
		}
		resume = doc
		return nil
	})
	g.Go(func() error {
		if opts.JobText != "" {
			job = inlineDocument(opts.JobText)
			return nil
		}
		doc, err := loadFile(gCtx, opts.JobPath)
		if err != nil {
			return fmt.Errorf("loading job description: %w", err)
		}
		job = doc
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	emitProgress(&opts, StepResume, CategoryIngestion,
		fmt.Sprintf("Loaded resume %s (%d characters)", resume.Metadata.Filename, resume.Metadata.Characters), resume.Metadata)
	emitProgress(&opts, StepJobDescription, CategoryIngestion,
		fmt.Sprintf("Loaded job description %s (%d characters)", job.Metadata.Filename, job.Metadata.Characters), job.Metadata)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	report := analyzer.Analyze(resume.Text, job.Text)
	elapsed := time.Since(start)

	if report.Success {
		emitProgress(&opts, StepAnalysis, CategoryAnalysis,
			fmt.Sprintf("Overall match score %.2f%%", report.OverallScore), nil)
	} else {
		emitProgress(&opts, StepAnalysis, CategoryAnalysis, "Analysis failed: "+report.Error, nil)
	}

	return &Result{Report: report, Resume: resume, Job: job, Elapsed: elapsed}, nil
}

func loadFile(ctx context.Context, path string) (*ingestion.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ingestion.FromFile(path)
}

func inlineDocument(text string) *ingestion.Document {
	cleaned := ingestion.CleanText(text)
	return &ingestion.Document{
		Text:     cleaned,
		Metadata: ingestion.NewMetadata(cleaned, inlineJobName, ingestion.FormatText),
	}
}
