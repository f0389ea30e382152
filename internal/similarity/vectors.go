package similarity

import (
	"math"
)

// corpusSize is the number of documents in the IDF corpus: the job description and the resume.
const corpusSize = 2

// vocabulary indexes unigram and bigram terms by first appearance.
type vocabulary struct {
	index map[string]int
	terms []string
}

func newVocabulary() *vocabulary {
	return &vocabulary{index: make(map[string]int)}
}

// lookup returns the index of the term held in key, adding it when unseen. The key
// buffer is only copied into a string for new terms.
func (v *vocabulary) lookup(key []byte) int {
	if i, ok := v.index[string(key)]; ok {
		return i
	}
	term := string(key)
	v.index[term] = len(v.terms)
	v.terms = append(v.terms, term)
	return len(v.terms) - 1
}

func (v *vocabulary) size() int {
	return len(v.terms)
}

// addNgrams adds the unigrams followed by the bigrams of a token sequence and returns
// the vocabulary index of each occurrence.
func (v *vocabulary) addNgrams(tokens []string) []int {
	if len(tokens) == 0 {
		return nil
	}
	indexes := make([]int, 0, 2*len(tokens)-1)
	var key []byte
	for _, tok := range tokens {
		key = append(key[:0], tok...)
		indexes = append(indexes, v.lookup(key))
	}
	for i := 0; i+1 < len(tokens); i++ {
		key = append(key[:0], tokens[i]...)
		key = append(key, ' ')
		key = append(key, tokens[i+1]...)
		indexes = append(indexes, v.lookup(key))
	}
	return indexes
}

// documentPair holds the count and TF-IDF vectors of a job description and a resume
// built over their shared vocabulary.
type documentPair struct {
	vocab        *vocabulary
	jdCounts     []float64
	resumeCounts []float64
	jdTFIDF      []float64
	resumeTFIDF  []float64
}

// buildPair constructs both weighting schemes over the union vocabulary of the two
// documents. Vocabulary order is first appearance in the job description, then the resume.
func buildPair(jdTokens, resumeTokens []string) *documentPair {
	vocab := newVocabulary()
	jdTerms := vocab.addNgrams(jdTokens)
	resumeTerms := vocab.addNgrams(resumeTokens)

	p := &documentPair{
		vocab:        vocab,
		jdCounts:     countVector(vocab.size(), jdTerms),
		resumeCounts: countVector(vocab.size(), resumeTerms),
	}

	idf := make([]float64, vocab.size())
	for i := range idf {
		df := 0
		if p.jdCounts[i] > 0 {
			df++
		}
		if p.resumeCounts[i] > 0 {
			df++
		}
		// Smoothed IDF: ln((1+n)/(1+df)) + 1.
		idf[i] = math.Log(float64(1+corpusSize)/float64(1+df)) + 1
	}

	p.jdTFIDF = l2Normalize(weight(p.jdCounts, idf))
	p.resumeTFIDF = l2Normalize(weight(p.resumeCounts, idf))
	return p
}

func countVector(size int, terms []int) []float64 {
	vec := make([]float64, size)
	for _, i := range terms {
		vec[i]++
	}
	return vec
}

func weight(counts, idf []float64) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = c * idf[i]
	}
	return out
}

func l2Normalize(vec []float64) []float64 {
	norm := magnitude(vec)
	if norm == 0 {
		return vec
	}
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = v / norm
	}
	return out
}

func magnitude(vec []float64) float64 {
	sum := 0.0
	for _, v := range vec {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// cosine returns the cosine similarity of two equal-length vectors, or 0 when either is zero.
func cosine(a, b []float64) float64 {
	normA := magnitude(a)
	normB := magnitude(b)
	if normA == 0 || normB == 0 {
		return 0
	}

	dot := 0.0
	for i := range a {
		dot += a[i] * b[i]
	}

	sim := dot / (normA * normB)
	if math.IsNaN(sim) {
		return 0
	}
	return math.Max(0, math.Min(1, sim))
}
