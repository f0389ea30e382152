// Package parsing reduces raw document text to a sequence of normalized terms.
package parsing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
)

// minTokenLength is the shortest base form kept in the output.
const minTokenLength = 3

// urlOrEmailRe matches URL-like and email-like substrings.
var urlOrEmailRe = regexp.MustCompile(`https?://\S+|www\.\S+|\S+@\S+`)

// Normalizer turns raw text into base-form tokens.
// It holds only read-only configuration and is safe for concurrent use.
type Normalizer struct {
	stopwords map[string]struct{}
	stem      bool
}

// NewNormalizer creates a Normalizer that drops the given stopwords and, when stem is true,
// reduces each token to its Snowball (Porter2) stem. The stopword set is not copied and
// must not be modified afterwards.
func NewNormalizer(stopwords map[string]struct{}, stem bool) *Normalizer {
	if stopwords == nil {
		stopwords = map[string]struct{}{}
	}
	return &Normalizer{stopwords: stopwords, stem: stem}
}

// Normalize case-folds the text, strips URLs, emails and punctuation, splits it into tokens,
// reduces each token to its base form and drops stopwords, tokens shorter than three
// characters and tokens containing digits. Token order is preserved.
// Empty input yields an empty, non-nil slice.
func (n *Normalizer) Normalize(text string) []string {
	tokens := make([]string, 0)
	if strings.TrimSpace(text) == "" {
		return tokens
	}

	text = strings.ToLower(text)
	text = urlOrEmailRe.ReplaceAllString(text, " ")
	text = strings.Map(punctuationToSpace, text)

	// Documents repeat words heavily, so each distinct field is reduced once per call.
	// An empty base marks a dropped field.
	bases := make(map[string]string)
	for _, field := range strings.Fields(text) {
		base, seen := bases[field]
		if !seen {
			base = n.reduce(field)
			bases[field] = base
		}
		if base != "" {
			tokens = append(tokens, base)
		}
	}

	return tokens
}

// reduce returns the base form of a field, or "" when the field is dropped.
func (n *Normalizer) reduce(field string) string {
	if containsDigit(field) || n.isStopword(field) {
		return ""
	}

	base := field
	if n.stem {
		base = english.Stem(field, false)
	}

	if utf8.RuneCountInString(base) < minTokenLength || n.isStopword(base) {
		return ""
	}
	return base
}

func (n *Normalizer) isStopword(word string) bool {
	_, ok := n.stopwords[word]
	return ok
}

// punctuationToSpace maps punctuation and symbols to a space so word boundaries survive.
func punctuationToSpace(r rune) rune {
	if unicode.IsPunct(r) || unicode.IsSymbol(r) {
		return ' '
	}
	return r
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
