package ngrams

import (
	"testing"

	"github.com/magpielabs/magpie/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats_CountsAndPosters(t *testing.T) {
	authors := map[int64]string{1: "alice", 2: "bob", 3: "alice"}
	instances := []Instance{
		{MessageSurrogateID: 1, NgramID: 0},
		{MessageSurrogateID: 2, NgramID: 0},
		{MessageSurrogateID: 3, NgramID: 0},
		{MessageSurrogateID: 1, NgramID: 1},
	}

	stats := ComputeStats(instances, authors)
	require.Len(t, stats, 1) // ngram 1 is a singleton, filtered

	assert.Equal(t, int64(0), stats[0].NgramID)
	assert.Equal(t, int64(3), stats[0].TotalReps)
	assert.Equal(t, int64(2), stats[0].DistinctPosters) // alice twice, bob once
}

func TestComputeStats_FiltersSingletons(t *testing.T) {
	authors := map[int64]string{1: "a"}
	stats := ComputeStats([]Instance{{MessageSurrogateID: 1, NgramID: 7}}, authors)
	assert.Empty(t, stats)
}

func TestComputeStats_OrderedByID(t *testing.T) {
	authors := map[int64]string{1: "a", 2: "b"}
	instances := []Instance{
		{MessageSurrogateID: 1, NgramID: 5},
		{MessageSurrogateID: 2, NgramID: 5},
		{MessageSurrogateID: 1, NgramID: 2},
		{MessageSurrogateID: 2, NgramID: 2},
	}
	stats := ComputeStats(instances, authors)
	require.Len(t, stats, 2)
	assert.Equal(t, int64(2), stats[0].NgramID)
	assert.Equal(t, int64(5), stats[1].NgramID)
}

func TestSummarize_JoinAndSort(t *testing.T) {
	defs := []Definition{
		{ID: 0, Words: "a b", Length: 2},
		{ID: 1, Words: "c d e", Length: 3},
		{ID: 2, Words: "f g", Length: 2},
	}
	stats := []Stat{
		{NgramID: 0, TotalReps: 5, DistinctPosters: 2},
		{NgramID: 1, TotalReps: 2, DistinctPosters: 2},
		{NgramID: 2, TotalReps: 9, DistinctPosters: 4},
	}

	rows := Summarize(defs, stats)
	require.Len(t, rows, 3)

	// Longest first, then most repeated.
	assert.Equal(t, "c d e", rows[0].Words)
	assert.Equal(t, "f g", rows[1].Words)
	assert.Equal(t, "a b", rows[2].Words)
}

func TestSummarize_SkipsUnknownIDs(t *testing.T) {
	rows := Summarize(nil, []Stat{{NgramID: 42, TotalReps: 3}})
	assert.Empty(t, rows)
}

func TestAuthorIndex(t *testing.T) {
	idx := AuthorIndex([]ports.MessageRow{
		{SurrogateID: 1, AuthorID: "a"},
		{SurrogateID: 2, AuthorID: "b"},
	})
	assert.Equal(t, map[int64]string{1: "a", 2: "b"}, idx)
}
