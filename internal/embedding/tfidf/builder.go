package tfidf

import (
	"math"
	"sort"
)

// Vector is a sparse document vector keyed by vocabulary dimension index.
// A nil or empty Vector is the zero vector.
type Vector map[int]float64

// Build computes the L2-normalised TF-IDF vector of a normalised term
// sequence against the current vocabulary and document count. The weight
// of a retained term is tf * (ln((1+N)/(1+df)) + 1), the smoothed inverse
// document frequency form that never divides by zero and keeps terms
// present in every document above zero weight. Terms outside the active
// feature set contribute nothing; a document with no retained terms yields
// the zero vector.
func Build(terms []string, vocab *Vocabulary, totalDocs int) Vector {
	tf := make(map[string]int)
	for _, term := range terms {
		if !vocab.Retained(term) {
			continue
		}
		tf[term]++
	}
	if len(tf) == 0 {
		return Vector{}
	}
	vec := make(Vector, len(tf))
	n := float64(totalDocs)
	for term, count := range tf {
		idx, ok := vocab.Index(term)
		if !ok {
			continue
		}
		df := float64(vocab.DocumentFrequency(term))
		idf := math.Log((1+n)/(1+df)) + 1.0
		vec[idx] = float64(count) * idf
	}
	normalize(vec)
	return vec
}

// Dot returns the dot product of two sparse vectors. For L2-normalised
// inputs this is their cosine similarity. Accumulation runs in dimension
// order so repeated runs over the same corpus produce identical scores.
func Dot(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	sum := 0.0
	for _, idx := range sortedDims(a) {
		sum += a[idx] * b[idx]
	}
	return sum
}

func normalize(vec Vector) {
	dims := sortedDims(vec)
	norm := 0.0
	for _, idx := range dims {
		norm += vec[idx] * vec[idx]
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return
	}
	for _, idx := range dims {
		vec[idx] /= norm
	}
}

func sortedDims(vec Vector) []int {
	dims := make([]int, 0, len(vec))
	for idx := range vec {
		dims = append(dims, idx)
	}
	sort.Ints(dims)
	return dims
}
