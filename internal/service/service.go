// Package service wires the corpus index to its snapshot store and exposes
// the operations the frontends call.
package service

import (
	"fmt"
	"log/slog"

	"recall/internal/config"
	"recall/internal/domain"
	"recall/internal/index"
	"recall/internal/store"
)

// Service owns one corpus for the lifetime of a process invocation.
type Service struct {
	index *index.Index
	store *store.Snapshot
}

// Open loads the snapshot under cfg.DataDir into a fresh corpus. A missing
// snapshot starts an empty corpus; a corrupt one aborts with the storage
// error rather than pretending there was no data.
func Open(cfg *config.AppConfig) (*Service, error) {
	ix := index.New(index.Options{
		VocabularyCap:   cfg.VocabularyCap,
		SimilarityFloor: cfg.SimilarityFloor,
	})
	snap := store.New(cfg.DataDir)
	records, err := snap.Load()
	if err != nil {
		return nil, err
	}
	ix.Replay(records)
	slog.Debug("corpus opened", "records", len(records), "path", snap.Path())
	return &Service{index: ix, store: snap}, nil
}

// Add appends a record and snapshots the corpus. The frontends are
// re-invoked per command, so durability cannot wait for shutdown. A save
// failure is surfaced; the in-memory corpus stays intact either way.
func (s *Service) Add(content string, metadata map[string]any) (int, error) {
	id, err := s.index.Add(content, metadata)
	if err != nil {
		return 0, err
	}
	if err := s.store.Save(s.index.Records()); err != nil {
		return id, fmt.Errorf("record %d added but not persisted: %w", id, err)
	}
	return id, nil
}

// Search returns at most topK records ranked by similarity to query.
func (s *Service) Search(query string, topK int) []domain.SearchResult {
	return s.index.Search(query, topK)
}

// Get returns the record with the given id.
func (s *Service) Get(id int) (domain.Record, error) {
	return s.index.Get(id)
}

// Stats summarises the corpus.
func (s *Service) Stats() domain.Stats {
	return s.index.Stats()
}

// Save writes a snapshot of the current record list.
func (s *Service) Save() error {
	return s.store.Save(s.index.Records())
}
