// Package types provides type definitions for the structured data produced by a resume analysis.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CategoryPhrases holds the taxonomy phrases found for a single category.
type CategoryPhrases struct {
	Category string
	Phrases  []string
}

// Findings maps category names to phrases, in taxonomy order.
// It marshals to a JSON object whose keys keep that order.
type Findings []CategoryPhrases

// Get returns the phrases recorded for a category, or nil if the category is absent.
func (f Findings) Get(category string) []string {
	for _, cp := range f {
		if cp.Category == category {
			return cp.Phrases
		}
	}
	return nil
}

// Categories returns the category names in order.
func (f Findings) Categories() []string {
	names := make([]string, 0, len(f))
	for _, cp := range f {
		names = append(names, cp.Category)
	}
	return names
}

// Count returns the total number of phrases across all categories.
func (f Findings) Count() int {
	total := 0
	for _, cp := range f {
		total += len(cp.Phrases)
	}
	return total
}

// MarshalJSON encodes the findings as an ordered JSON object of category -> phrases.
func (f Findings) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cp := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cp.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		phrases := cp.Phrases
		if phrases == nil {
			phrases = []string{}
		}
		val, err := json.Marshal(phrases)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of category -> phrases, keeping key order.
func (f *Findings) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("findings: expected JSON object")
	}

	result := Findings{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var phrases []string
		if err := dec.Decode(&phrases); err != nil {
			return err
		}
		result = append(result, CategoryPhrases{Category: key, Phrases: phrases})
	}

	*f = result
	return nil
}
