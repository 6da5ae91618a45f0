// Package tfidf implements the term-weighting core: an incremental
// vocabulary with per-term document frequencies and a sparse TF-IDF
// vector builder over it.
package tfidf

import "sort"

type termStat struct {
	index int // dimension index, fixed at first observation
	df    int // number of documents containing the term
}

// Vocabulary tracks every term seen across the corpus together with its
// document frequency. It grows monotonically and never shrinks. A feature
// cap bounds the active dimension set used for vector construction: once
// the cap is exceeded, only the top-cap terms by document frequency are
// retained, ties broken by first-observation order. Terms beyond the cap
// still accrue frequency and may be promoted later.
type Vocabulary struct {
	featureCap int
	terms      map[string]*termStat
	order      []string            // terms in first-observation order
	retained   map[string]struct{} // lazily rebuilt after mutations
}

// NewVocabulary creates an empty vocabulary. A featureCap <= 0 disables
// the cap.
func NewVocabulary(featureCap int) *Vocabulary {
	return &Vocabulary{
		featureCap: featureCap,
		terms:      make(map[string]*termStat),
	}
}

// Observe registers one document's distinct terms: each df is incremented
// by exactly one, and unseen terms are assigned the next dimension index.
// Callers must de-duplicate terms first; Observe is per-document, not
// per-occurrence.
func (v *Vocabulary) Observe(uniqueTerms []string) {
	for _, term := range uniqueTerms {
		st, ok := v.terms[term]
		if !ok {
			st = &termStat{index: len(v.order)}
			v.terms[term] = st
			v.order = append(v.order, term)
		}
		st.df++
	}
	v.retained = nil
}

// DocumentFrequency returns how many observed documents contain term.
func (v *Vocabulary) DocumentFrequency(term string) int {
	if st, ok := v.terms[term]; ok {
		return st.df
	}
	return 0
}

// Size returns the number of distinct terms ever observed.
func (v *Vocabulary) Size() int { return len(v.order) }

// Index returns the dimension index assigned to term at first observation.
func (v *Vocabulary) Index(term string) (int, bool) {
	st, ok := v.terms[term]
	if !ok {
		return 0, false
	}
	return st.index, true
}

// Retained reports whether term is part of the active feature set.
func (v *Vocabulary) Retained(term string) bool {
	if _, ok := v.terms[term]; !ok {
		return false
	}
	if v.featureCap <= 0 || len(v.order) <= v.featureCap {
		return true
	}
	if v.retained == nil {
		v.rebuildRetained()
	}
	_, in := v.retained[term]
	return in
}

func (v *Vocabulary) rebuildRetained() {
	candidates := make([]string, len(v.order))
	copy(candidates, v.order)
	// SliceStable keeps first-observation order among equal frequencies,
	// which makes the retained set reproducible for a given corpus.
	sort.SliceStable(candidates, func(i, j int) bool {
		return v.terms[candidates[i]].df > v.terms[candidates[j]].df
	})
	v.retained = make(map[string]struct{}, v.featureCap)
	for _, term := range candidates[:v.featureCap] {
		v.retained[term] = struct{}{}
	}
}
