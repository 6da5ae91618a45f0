// Package index holds the in-memory corpus: the ordered record list, the
// vocabulary derived from it and the matrix of document vectors, kept
// consistent by a full rebuild on every mutation.
package index

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"recall/internal/domain"
	"recall/internal/embedding/tfidf"
	"recall/internal/tokenizer"
)

// Options configure a corpus index.
type Options struct {
	VocabularyCap   int
	SimilarityFloor float64
}

// Index is the corpus of records plus their derived vectors. One RWMutex
// serialises all mutations and reads; the corpus is small enough that a
// single boundary around the whole structure suffices.
type Index struct {
	mu      sync.RWMutex
	opts    Options
	tok     *tokenizer.Tokenizer
	vocab   *tfidf.Vocabulary
	records []domain.Record
	vectors []tfidf.Vector
	nextID  int
}

// New creates an empty corpus index.
func New(opts Options) *Index {
	if opts.VocabularyCap == 0 {
		opts.VocabularyCap = 5000
	}
	if opts.SimilarityFloor == 0 {
		opts.SimilarityFloor = 0.01
	}
	return &Index{
		opts:  opts,
		tok:   tokenizer.New(),
		vocab: tfidf.NewVocabulary(opts.VocabularyCap),
	}
}

// Add appends a new record and returns its id. Ids are assigned
// monotonically starting at 0. Every existing document vector is recomputed:
// term weights are corpus-relative, so any change to N or to a document
// frequency shifts them all.
func (ix *Index) Add(content string, metadata map[string]any) (int, error) {
	if strings.TrimSpace(content) == "" {
		return 0, fmt.Errorf("empty content: %w", domain.ErrInvalidInput)
	}
	if !domain.ValidMetadata(metadata) {
		return 0, fmt.Errorf("metadata values must be string, number or bool: %w", domain.ErrInvalidInput)
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	rec := domain.Record{
		ID:        ix.nextID,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}
	ix.append(rec)
	ix.rebuild()
	return rec.ID, nil
}

// Replay rebuilds the corpus from a snapshot's record list, applying add
// semantics in ascending id order. Derived state (vocabulary, vectors) is
// reproduced from scratch; nothing cached survives a reload.
func (ix *Index) Replay(records []domain.Record) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ordered := make([]domain.Record, len(records))
	copy(ordered, records)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	ix.records = nil
	ix.vectors = nil
	ix.vocab = tfidf.NewVocabulary(ix.opts.VocabularyCap)
	ix.nextID = 0
	for _, rec := range ordered {
		ix.append(rec)
	}
	ix.rebuild()
}

// Get returns the record with the given id.
func (ix *Index) Get(id int) (domain.Record, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	for _, rec := range ix.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return domain.Record{}, fmt.Errorf("record %d: %w", id, domain.ErrNotFound)
}

// Search ranks the corpus against a free-text query by cosine similarity.
// An empty corpus, a query that normalises to zero terms, or topK <= 0 all
// yield an empty result, never an error. Scores at or below the similarity
// floor are excluded even when that leaves fewer than topK results.
func (ix *Index) Search(query string, topK int) []domain.SearchResult {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if topK <= 0 || len(ix.records) == 0 {
		return nil
	}
	terms := ix.tok.Normalize(query)
	if len(terms) == 0 {
		return nil
	}
	// Queries read the current vocabulary but never mutate it: unseen
	// query terms simply contribute zero weight.
	qvec := tfidf.Build(terms, ix.vocab, len(ix.records))
	type scored struct {
		idx   int
		score float64
	}
	var hits []scored
	for i := range ix.vectors {
		score := tfidf.Dot(qvec, ix.vectors[i])
		if score > ix.opts.SimilarityFloor {
			hits = append(hits, scored{i, score})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return ix.records[hits[i].idx].ID < ix.records[hits[j].idx].ID
	})
	if topK < len(hits) {
		hits = hits[:topK]
	}
	results := make([]domain.SearchResult, 0, len(hits))
	for rank, h := range hits {
		results = append(results, domain.SearchResult{
			Record: ix.records[h.idx],
			Score:  h.score,
			Rank:   rank + 1,
		})
	}
	slog.Debug("query scored", "terms", len(terms), "hits", len(results), "corpus", len(ix.records))
	return results
}

// Stats summarises the corpus. An empty corpus returns zeroed counts and a
// nil last-added timestamp.
func (ix *Index) Stats() domain.Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	stats := domain.Stats{TotalRecords: len(ix.records)}
	if len(ix.records) == 0 {
		return stats
	}
	for _, rec := range ix.records {
		stats.TotalWords += len(strings.Fields(rec.Content))
	}
	stats.AverageWords = stats.TotalWords / stats.TotalRecords
	last := ix.records[len(ix.records)-1].Timestamp
	stats.LastAdded = &last
	return stats
}

// Records returns a copy of the ordered record list for snapshotting.
func (ix *Index) Records() []domain.Record {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]domain.Record, len(ix.records))
	copy(out, ix.records)
	return out
}

// append registers a record and observes its distinct terms. Callers hold
// the write lock and trigger rebuild afterwards.
func (ix *Index) append(rec domain.Record) {
	ix.vocab.Observe(tokenizer.Unique(ix.tok.Normalize(rec.Content)))
	ix.records = append(ix.records, rec)
	if rec.ID >= ix.nextID {
		ix.nextID = rec.ID + 1
	}
}

// rebuild recomputes every document vector against the current vocabulary
// and document count.
func (ix *Index) rebuild() {
	n := len(ix.records)
	ix.vectors = make([]tfidf.Vector, n)
	for i, rec := range ix.records {
		ix.vectors[i] = tfidf.Build(ix.tok.Normalize(rec.Content), ix.vocab, n)
	}
	slog.Debug("rebuilt document vectors", "records", n, "vocabulary", ix.vocab.Size())
}
