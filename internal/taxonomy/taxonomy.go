// Package taxonomy loads the fixed, hand-curated phrase taxonomies used to score resumes.
//
// A Taxonomy is built once at process start and never mutated afterwards, so a single
// value can be shared by any number of concurrent analyses.
package taxonomy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

// ActionVerbsCategory is the ATS category whose gaps feed the action-verb recommendation.
const ActionVerbsCategory = "action_verbs"

//go:embed default_taxonomy.json
var defaultTaxonomy []byte

// Category is an ordered list of canonical phrases under a single name.
type Category struct {
	Name    string   `json:"category"`
	Phrases []string `json:"phrases"`
}

// Categories is an ordered list of categories.
type Categories []Category

// Taxonomy bundles the skills taxonomy, the ATS taxonomy and the stopword set.
type Taxonomy struct {
	Skills    Categories `json:"skills"`
	ATS       Categories `json:"ats"`
	Stopwords []string   `json:"stopwords,omitempty"`

	stopSet map[string]struct{}
}

// PhraseCount returns the number of phrases defined across all categories.
func (c Categories) PhraseCount() int {
	total := 0
	for _, cat := range c {
		total += len(cat.Phrases)
	}
	return total
}

// Lookup returns the phrases of the named category, or nil.
func (c Categories) Lookup(name string) []string {
	for _, cat := range c {
		if cat.Name == name {
			return cat.Phrases
		}
	}
	return nil
}

// Names returns category names in order.
func (c Categories) Names() []string {
	names := make([]string, len(c))
	for i, cat := range c {
		names[i] = cat.Name
	}
	return names
}

// StopwordSet returns the stopword set. Callers must treat it as read-only.
func (t *Taxonomy) StopwordSet() map[string]struct{} {
	return t.stopSet
}

// Default returns a fresh copy of the taxonomy embedded in the binary.
func Default() *Taxonomy {
	t, err := parse(defaultTaxonomy)
	if err != nil {
		// The embedded file is covered by tests; failing here is a build defect.
		panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
	}
	return t
}

// DefaultJSON returns the raw embedded taxonomy document.
func DefaultJSON() []byte {
	out := make([]byte, len(defaultTaxonomy))
	copy(out, defaultTaxonomy)
	return out
}

// Load reads a taxonomy file, validates it against the taxonomy schema and parses it.
// An empty path yields the embedded default.
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read taxonomy file", Cause: err}
	}

	t, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid taxonomy", Cause: err}
	}
	return t, nil
}

// Parse validates raw taxonomy JSON against the schema and builds a Taxonomy.
func Parse(data []byte) (*Taxonomy, error) {
	if err := schemas.ValidateTaxonomy(data); err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy JSON: %w", err)
	}

	t.Skills = cleanCategories(t.Skills)
	t.ATS = cleanCategories(t.ATS)

	t.stopSet = make(map[string]struct{}, len(t.Stopwords))
	for _, w := range t.Stopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			t.stopSet[w] = struct{}{}
		}
	}

	if len(t.Skills) == 0 && len(t.ATS) == 0 {
		return nil, fmt.Errorf("taxonomy defines no categories")
	}
	return &t, nil
}

// cleanCategories trims phrases and drops empty or duplicate entries, keeping first occurrence.
func cleanCategories(cats Categories) Categories {
	out := make(Categories, 0, len(cats))
	for _, cat := range cats {
		seen := make(map[string]bool, len(cat.Phrases))
		phrases := make([]string, 0, len(cat.Phrases))
		for _, p := range cat.Phrases {
			p = strings.TrimSpace(p)
			key := strings.ToLower(p)
			if p == "" || seen[key] {
				continue
			}
			seen[key] = true
			phrases = append(phrases, p)
		}
		out = append(out, Category{Name: strings.TrimSpace(cat.Name), Phrases: phrases})
	}
	return out
}
