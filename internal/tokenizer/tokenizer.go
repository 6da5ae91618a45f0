// Package tokenizer turns raw conversation text into a stream of
// normalised terms suitable for term-frequency analysis.
package tokenizer

import (
	"regexp"
	"strings"
)

// Tokenizer lower-cases text, splits it on non-alphanumeric boundaries and
// drops stop-words. Normalize is deterministic and side-effect-free.
type Tokenizer struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// New creates a tokenizer with the default English stop-word set.
func New() *Tokenizer {
	return &Tokenizer{
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}]+`),
		stopwords:    defaultStopwords(),
	}
}

// Normalize returns the ordered, non-unique term sequence of text.
// Repeated terms appear once per occurrence.
func (t *Tokenizer) Normalize(text string) []string {
	lower := strings.ToLower(text)
	raw := t.tokenPattern.FindAllString(lower, -1)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, term := range raw {
		if _, isStop := t.stopwords[term]; isStop {
			continue
		}
		out = append(out, term)
	}
	return out
}

// Unique returns the distinct terms of a normalised sequence in first-seen
// order. The order matters: it drives vocabulary dimension assignment.
func Unique(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
