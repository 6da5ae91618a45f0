package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recall/internal/domain"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	return New(Options{})
}

func TestAdd_AssignsIncreasingIDs(t *testing.T) {
	ix := newTestIndex(t)

	prev := -1
	for _, content := range []string{"first entry", "second entry", "third entry"} {
		id, err := ix.Add(content, nil)
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
	assert.Equal(t, 0, mustID(t, ix, "first entry"))
}

func TestAdd_RejectsEmptyContent(t *testing.T) {
	ix := newTestIndex(t)

	_, err := ix.Add("   ", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdd_RejectsNonPrimitiveMetadata(t *testing.T) {
	ix := newTestIndex(t)

	_, err := ix.Add("hello", map[string]any{"bad": []string{"nested"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ix.Add("hello", map[string]any{"source": "tui", "turn": 3, "seen": true})
	assert.NoError(t, err)
}

func TestGet(t *testing.T) {
	ix := newTestIndex(t)

	id, err := ix.Add("find me later", map[string]any{"source": "cli"})
	require.NoError(t, err)

	rec, err := ix.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "find me later", rec.Content)
	assert.Equal(t, "cli", rec.Metadata["source"])
	assert.False(t, rec.Timestamp.IsZero())

	_, err = ix.Get(99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStats_EmptyCorpus(t *testing.T) {
	ix := newTestIndex(t)

	st := ix.Stats()
	assert.Zero(t, st.TotalRecords)
	assert.Zero(t, st.TotalWords)
	assert.Zero(t, st.AverageWords)
	assert.Nil(t, st.LastAdded)
}

func TestStats_CountsRawWords(t *testing.T) {
	ix := newTestIndex(t)

	_, err := ix.Add("a b c", nil)
	require.NoError(t, err)
	_, err = ix.Add("d e", nil)
	require.NoError(t, err)

	st := ix.Stats()
	assert.Equal(t, 2, st.TotalRecords)
	assert.Equal(t, 5, st.TotalWords)
	assert.Equal(t, 2, st.AverageWords) // integer floor of 5/2
	require.NotNil(t, st.LastAdded)
}

func TestSearch_EmptyCorpus(t *testing.T) {
	ix := newTestIndex(t)

	assert.Empty(t, ix.Search("anything", 5))
}

func TestSearch_EmptyQuery(t *testing.T) {
	ix := newTestIndex(t)
	_, err := ix.Add("some stored text", nil)
	require.NoError(t, err)

	assert.Empty(t, ix.Search("", 5))
	assert.Empty(t, ix.Search("the and of", 5)) // normalises to zero terms
}

func TestSearch_TopKBoundaries(t *testing.T) {
	ix := newTestIndex(t)
	for _, content := range []string{"termux guide one", "termux guide two", "termux guide three"} {
		_, err := ix.Add(content, nil)
		require.NoError(t, err)
	}

	assert.Empty(t, ix.Search("termux", 0))
	assert.Empty(t, ix.Search("termux", -1))
	assert.Len(t, ix.Search("termux", 100), 3)
	assert.Len(t, ix.Search("termux", 2), 2)
}

func TestSearch_RanksOverlappingTermsHigher(t *testing.T) {
	ix := newTestIndex(t)

	id0, err := ix.Add("termux installation guide for android termux setup", nil)
	require.NoError(t, err)
	id1, err := ix.Add("python virtual environment setup tutorial", nil)
	require.NoError(t, err)

	results := ix.Search("termux setup", 5)
	require.NotEmpty(t, results)
	assert.Equal(t, id0, results[0].Record.ID)
	if len(results) > 1 {
		assert.Equal(t, id1, results[1].Record.ID)
		assert.Greater(t, results[0].Score, results[1].Score)
	}
}

func TestSearch_SelfSimilarityRanksFirst(t *testing.T) {
	ix := newTestIndex(t)

	contents := []string{
		"termux installation guide for android termux setup",
		"python virtual environment setup tutorial",
		"shell scripting basics with examples",
	}
	for _, c := range contents {
		_, err := ix.Add(c, nil)
		require.NoError(t, err)
	}

	for i, c := range contents {
		results := ix.Search(c, len(contents))
		require.NotEmpty(t, results, c)
		assert.Equal(t, i, results[0].Record.ID, c)
		for _, r := range results[1:] {
			assert.GreaterOrEqual(t, results[0].Score, r.Score)
		}
	}
}

func TestSearch_FloorExcludesUnrelatedRecords(t *testing.T) {
	ix := newTestIndex(t)
	_, err := ix.Add("termux installation guide", nil)
	require.NoError(t, err)

	assert.Empty(t, ix.Search("gardening weather forecast", 5))
}

func TestSearch_TiesBreakByAscendingID(t *testing.T) {
	ix := newTestIndex(t)

	// identical contents score identically against any query
	_, err := ix.Add("duplicate conversation entry", nil)
	require.NoError(t, err)
	_, err = ix.Add("duplicate conversation entry", nil)
	require.NoError(t, err)

	results := ix.Search("duplicate conversation entry", 5)
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Record.ID)
	assert.Equal(t, 1, results[1].Record.ID)
	assert.InDelta(t, results[0].Score, results[1].Score, 1e-12)
}

func TestSearch_AssignsOneBasedRanks(t *testing.T) {
	ix := newTestIndex(t)
	_, err := ix.Add("termux setup guide", nil)
	require.NoError(t, err)
	_, err = ix.Add("termux usage notes", nil)
	require.NoError(t, err)

	results := ix.Search("termux", 5)
	for i, r := range results {
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestSearch_QueriesDoNotGrowVocabulary(t *testing.T) {
	ix := newTestIndex(t)
	_, err := ix.Add("stored conversation text", nil)
	require.NoError(t, err)

	before := ix.vocab.Size()
	ix.Search("entirely novel query words", 5)
	assert.Equal(t, before, ix.vocab.Size())
}

func TestReplay_ReproducesRankings(t *testing.T) {
	ix := newTestIndex(t)
	contents := []string{
		"termux installation guide for android termux setup",
		"python virtual environment setup tutorial",
		"android permission management notes",
	}
	for _, c := range contents {
		_, err := ix.Add(c, nil)
		require.NoError(t, err)
	}

	reloaded := newTestIndex(t)
	reloaded.Replay(ix.Records())

	assert.Equal(t, ix.Records(), reloaded.Records())
	for _, query := range []string{"termux setup", "python tutorial", "android"} {
		assert.Equal(t, ix.Search(query, 5), reloaded.Search(query, 5), query)
	}
}

func TestReplay_OrdersByID(t *testing.T) {
	ix := newTestIndex(t)
	records := []domain.Record{
		{ID: 1, Content: "second entry"},
		{ID: 0, Content: "first entry"},
	}
	ix.Replay(records)

	got := ix.Records()
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].ID)
	assert.Equal(t, 1, got[1].ID)

	// next id continues after the highest replayed id
	id, err := ix.Add("third entry", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func mustID(t *testing.T, ix *Index, content string) int {
	t.Helper()
	for _, rec := range ix.Records() {
		if rec.Content == content {
			return rec.ID
		}
	}
	t.Fatalf("record %q not found", content)
	return -1
}
