// Package observability provides structured logging, Prometheus metrics and
// human-readable report output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// ruleWidth is the width of the separator around the score summary
	ruleWidth = 50
)

// Printer handles formatted output of analysis reports
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSummary prints the score line and the top missing keywords.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSummary(report *types.AnalysisReport) {
	if report == nil {
		return
	}
	rule := strings.Repeat("=", ruleWidth)

	if !report.Success {
		fmt.Fprintf(p.out, "\nAn error occurred: %s\n", report.Error)
		fmt.Fprintln(p.out, "Please make sure the input files are valid and try again.")
		return
	}

	fmt.Fprintf(p.out, "\n%s\n", rule)
	fmt.Fprintf(p.out, "Resume Match Score: %.2f%%\n", report.OverallScore)
	if len(report.MissingKeywords) > 0 {
		fmt.Fprintln(p.out, "\nTop Missing Keywords:")
		for i, keyword := range report.MissingKeywords {
			fmt.Fprintf(p.out, "%d. %s\n", i+1, keyword)
		}
	} else {
		fmt.Fprintln(p.out, "\nGreat! Your resume covers all important keywords from the job description.")
	}
	fmt.Fprintf(p.out, "%s\n\n", rule)
}

// PrintScores outputs the individual scores that make up the overall score.
func (p *Printer) PrintScores(report *types.AnalysisReport) {
	if report == nil || !report.Success {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:            %6.2f%%\n", report.OverallScore))
	sb.WriteString(fmt.Sprintf("TF-IDF similarity:  %6.2f%%\n", report.TFIDFSimilarity))
	sb.WriteString(fmt.Sprintf("Keyword similarity: %6.2f%%\n", report.KeywordSimilarity))
	sb.WriteString(fmt.Sprintf("Skill match:        %6.2f%% (%d of %d)\n",
		report.SkillMatch.MatchPercentage, report.SkillMatch.MatchedCount, report.SkillMatch.RequiredCount))
	sb.WriteString(fmt.Sprintf("ATS compatibility:  %6.2f%% (%d of %d)\n",
		report.ATSCompatibility.Score, report.ATSCompatibility.Found, report.ATSCompatibility.Total))
	sb.WriteString(fmt.Sprintf("Job sentiment:      %+.2f", report.Sentiment.Compound))

	p.printBox("MATCH SCORES", sb.String())
}

// PrintSkillMatch outputs matched and missing skills per category.
func (p *Printer) PrintSkillMatch(match types.MatchResult) {
	if len(match.Matched) == 0 && len(match.Missing) == 0 {
		return
	}

	var sb strings.Builder
	for i, category := range match.Matched.Categories() {
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		if matched := match.Matched.Get(category); len(matched) > 0 {
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", joinLimited(matched)))
		}
		if missing := match.Missing.Get(category); len(missing) > 0 {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", joinLimited(missing)))
		}
		if i < len(match.Matched)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SKILL MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the recommendation sentences.
func (p *Printer) PrintRecommendations(recs []string) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	for i, rec := range recs {
		for j, line := range wrap(rec, boxWidth-6) {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("• %s\n", line))
			} else {
				sb.WriteString(fmt.Sprintf("  %s\n", line))
			}
		}
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the full human-readable report.
func (p *Printer) PrintReport(report *types.AnalysisReport) {
	p.PrintSummary(report)
	if report == nil || !report.Success {
		return
	}
	p.PrintScores(report)
	p.PrintSkillMatch(report.SkillMatch)
	p.PrintRecommendations(report.Recommendations)
}

func joinLimited(items []string) string {
	if len(items) <= maxItemsToShow {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s ... and %d more", strings.Join(items[:maxItemsToShow], ", "), len(items)-maxItemsToShow)
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width-3]) + "..."
}
