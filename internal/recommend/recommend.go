// Package recommend turns skill and ATS gaps into short suggestions for the candidate.
package recommend

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
)

// maxNamed caps how many skills or verbs a single sentence names.
const maxNamed = 3

// Encouragement is returned when there is nothing specific to suggest.
const Encouragement = "Your resume covers the key skills and action verbs for this role. Tailor your summary to the position to stand out further."

// Recommend builds suggestions from a skill comparison and the ATS findings of the resume.
// actionVerbs is the ordered action-verb list of the ATS taxonomy. The result is never empty.
func Recommend(match types.MatchResult, atsFindings types.Findings, actionVerbs []string) []string {
	var recs []string

	for _, cat := range match.Missing {
		if len(cat.Phrases) == 0 {
			continue
		}
		recs = append(recs, fmt.Sprintf("Consider adding %s skills such as %s.",
			cat.Category, joinFirst(cat.Phrases, maxNamed)))
	}

	if missing := missingVerbs(actionVerbs, atsFindings.Get(taxonomy.ActionVerbsCategory)); len(missing) > 0 {
		recs = append(recs, fmt.Sprintf("Use strong action verbs such as %s to describe your achievements.",
			joinFirst(missing, maxNamed)))
	}

	if len(recs) == 0 {
		recs = append(recs, Encouragement)
	}
	return recs
}

func missingVerbs(all, found []string) []string {
	have := make(map[string]bool, len(found))
	for _, v := range found {
		have[v] = true
	}
	var missing []string
	for _, v := range all {
		if !have[v] {
			missing = append(missing, v)
		}
	}
	return missing
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
