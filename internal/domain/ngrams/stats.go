package ngrams

import (
	"sort"

	"github.com/magpielabs/magpie/internal/ports"
)

// Stat is the corpus-level repetition profile of one n-gram.
type Stat struct {
	NgramID         int64
	TotalReps       int64 // messages containing the n-gram (within-message dedup upstream)
	DistinctPosters int64 // distinct authors among those messages
}

// AuthorIndex maps message surrogate IDs to author IDs.
func AuthorIndex(msgs []ports.MessageRow) map[int64]string {
	idx := make(map[int64]string, len(msgs))
	for _, m := range msgs {
		idx[m.SurrogateID] = m.AuthorID
	}
	return idx
}

// ComputeStats aggregates instances per n-gram: total repetitions and the
// distinct-poster count. Singletons (total ≤ 1) are filtered out — an
// n-gram seen once carries no repetition signal. Results are ordered by
// NgramID ascending.
func ComputeStats(instances []Instance, authors map[int64]string) []Stat {
	type agg struct {
		total   int64
		posters map[string]struct{}
	}
	byID := make(map[int64]*agg)
	for _, inst := range instances {
		a, ok := byID[inst.NgramID]
		if !ok {
			a = &agg{posters: make(map[string]struct{})}
			byID[inst.NgramID] = a
		}
		a.total++
		if author, ok := authors[inst.MessageSurrogateID]; ok {
			a.posters[author] = struct{}{}
		}
	}

	stats := make([]Stat, 0, len(byID))
	for id, a := range byID {
		if a.total <= 1 {
			continue
		}
		stats = append(stats, Stat{
			NgramID:         id,
			TotalReps:       a.total,
			DistinctPosters: int64(len(a.posters)),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].NgramID < stats[j].NgramID })
	return stats
}

// Summarize joins definitions with their stats and sorts by n-gram length,
// total repetitions, and distinct posters, all descending: the longest,
// most-repeated sequences surface first.
func Summarize(defs []Definition, stats []Stat) []ports.NgramStatsRow {
	byID := make(map[int64]Definition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}

	rows := make([]ports.NgramStatsRow, 0, len(stats))
	for _, s := range stats {
		d, ok := byID[s.NgramID]
		if !ok {
			continue
		}
		rows = append(rows, ports.NgramStatsRow{
			NgramID:         s.NgramID,
			Words:           d.Words,
			Length:          int32(d.Length),
			TotalReps:       s.TotalReps,
			DistinctPosters: s.DistinctPosters,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		if a.TotalReps != b.TotalReps {
			return a.TotalReps > b.TotalReps
		}
		if a.DistinctPosters != b.DistinctPosters {
			return a.DistinctPosters > b.DistinctPosters
		}
		return a.NgramID < b.NgramID
	})
	return rows
}
