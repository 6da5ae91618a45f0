package domain

import "time"

// Record is a single stored conversation. Content and Timestamp are
// immutable once the record is appended to a corpus.
type Record struct {
	ID        int            `json:"id"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// SearchResult is a matching record with its relevance score and
// 1-based position in the ranked result list.
type SearchResult struct {
	Record Record  `json:"record"`
	Score  float64 `json:"score"`
	Rank   int     `json:"rank"`
}

// Stats summarises the corpus. Word counts are raw whitespace-separated
// words of the stored content, not normalised terms. LastAdded is nil for
// an empty corpus.
type Stats struct {
	TotalRecords int        `json:"total_records"`
	TotalWords   int        `json:"total_words"`
	AverageWords int        `json:"average_words"`
	LastAdded    *time.Time `json:"last_added,omitempty"`
}

// ValidMetadata reports whether every metadata value is one of the
// primitive kinds the snapshot format serialises deterministically:
// string, number, or bool.
func ValidMetadata(metadata map[string]any) bool {
	for _, v := range metadata {
		switch v.(type) {
		case string, bool, int, int32, int64, float32, float64:
		default:
			return false
		}
	}
	return true
}
