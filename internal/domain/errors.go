package domain

import "errors"

// Domain errors represent retrieval-core failures. Absence of results is
// never an error: empty queries and empty corpora resolve to empty result
// sets inline.
var (
	// ErrNotFound indicates a requested record id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput indicates malformed input, e.g. empty content or a
	// metadata value outside the allowed primitive kinds.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorruptSnapshot indicates a snapshot file exists but cannot be
	// decoded. It is never masked as an absent snapshot.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
