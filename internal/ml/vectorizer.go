package ml

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Vector is a sparse document vector over the fitted vocabulary.
// Indices are strictly increasing.
type Vector struct {
	Indices []int
	Values  []float64
}

// Vectorizer converts text into sublinear TF-IDF vectors over a vocabulary
// frozen at fit time. Fields are exported for artifact serialization.
type Vectorizer struct {
	Vocabulary  map[string]int
	IDF         []float64
	MaxFeatures int
	MinDF       int
	NGramMax    int
}

// NewVectorizer creates an unfitted vectorizer with the given limits.
func NewVectorizer(maxFeatures, minDF, ngramMax int) *Vectorizer {
	return &Vectorizer{
		MaxFeatures: maxFeatures,
		MinDF:       minDF,
		NGramMax:    ngramMax,
	}
}

// Fit builds the vocabulary and IDF weights from the training corpus.
// Terms must appear in at least MinDF documents; if more than MaxFeatures
// terms qualify, the most frequent terms across the corpus are kept, with
// lexicographic tie-breaking so the vocabulary is deterministic.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("cannot fit vectorizer on an empty corpus")
	}

	docFreq := make(map[string]int)
	termCount := make(map[string]int)
	for _, doc := range docs {
		grams := NGrams(Tokenize(doc), v.NGramMax)
		seen := make(map[string]bool, len(grams))
		for _, g := range grams {
			termCount[g]++
			if !seen[g] {
				seen[g] = true
				docFreq[g]++
			}
		}
	}

	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df >= v.MinDF {
			candidates = append(candidates, term)
		}
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no term appears in at least %d documents", v.MinDF)
	}

	if v.MaxFeatures > 0 && len(candidates) > v.MaxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			ci, cj := termCount[candidates[i]], termCount[candidates[j]]
			if ci != cj {
				return ci > cj
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:v.MaxFeatures]
	}

	// Indices are assigned in lexicographic term order.
	sort.Strings(candidates)
	v.Vocabulary = make(map[string]int, len(candidates))
	v.IDF = make([]float64, len(candidates))
	n := float64(len(docs))
	for i, term := range candidates {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return nil
}

// Transform converts text into an L2-normalized sublinear TF-IDF vector.
// Terms outside the fitted vocabulary are ignored; text with no known terms
// yields an empty vector.
func (v *Vectorizer) Transform(text string) Vector {
	counts := make(map[int]int)
	for _, g := range NGrams(Tokenize(text), v.NGramMax) {
		if idx, ok := v.Vocabulary[g]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for i, idx := range indices {
		tf := 1 + math.Log(float64(counts[idx]))
		values[i] = tf * v.IDF[idx]
	}
	if nrm := floats.Norm(values, 2); nrm > 0 {
		floats.Scale(1/nrm, values)
	}

	return Vector{Indices: indices, Values: values}
}

// NumFeatures returns the size of the fitted vocabulary.
func (v *Vectorizer) NumFeatures() int {
	return len(v.Vocabulary)
}
