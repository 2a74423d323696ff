// Package hashtags measures hashtag usage concentration over time. Posts are
// bucketed into fixed windows; each window gets a Gini coefficient of its
// hashtag frequency distribution — a spike toward 1.0 means a few hashtags
// dominate the window, a coordination signal.
package hashtags

import (
	"errors"
	"regexp"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/magpielabs/magpie/internal/ports"
)

// SmoothWindowSize is the centered rolling-mean window applied to the Gini
// series.
const SmoothWindowSize = 3

// ErrNoHashtags means the text column contains no '#' at all — the dataset
// is not hashtag-bearing and the analysis would be meaningless.
var ErrNoHashtags = errors.New("no hashtags found in any post")

var hashtagRE = regexp.MustCompile(`#\S+`)

// Post is the input slice of a message relevant to hashtag analysis.
type Post struct {
	AuthorID  string
	Timestamp time.Time
	Text      string
}

// Analyze buckets posts into fixed windows anchored at the earliest post and
// computes per-window hashtag count, distinct user count, Gini, and the
// smoothed Gini series. Windows with no hashtag-bearing posts are omitted
// (matching a group-by over datapoints, not a dense time axis).
func Analyze(posts []Post, window time.Duration) ([]ports.HashtagGiniRow, error) {
	if window <= 0 {
		window = time.Hour
	}

	type occurrence struct {
		at      time.Time
		author  string
		hashtag string
	}
	var occs []occurrence
	for _, p := range posts {
		for _, tag := range hashtagRE.FindAllString(p.Text, -1) {
			occs = append(occs, occurrence{at: p.Timestamp, author: p.AuthorID, hashtag: tag})
		}
	}
	if len(occs) == 0 {
		return nil, ErrNoHashtags
	}

	sort.Slice(occs, func(i, j int) bool { return occs[i].at.Before(occs[j].at) })
	anchor := occs[0].at

	type bucket struct {
		start    time.Time
		hashtags []string
		users    map[string]struct{}
	}
	byIndex := make(map[int64]*bucket)
	for _, o := range occs {
		idx := int64(o.at.Sub(anchor) / window)
		b, ok := byIndex[idx]
		if !ok {
			b = &bucket{
				start: anchor.Add(time.Duration(idx) * window),
				users: make(map[string]struct{}),
			}
			byIndex[idx] = b
		}
		b.hashtags = append(b.hashtags, o.hashtag)
		b.users[o.author] = struct{}{}
	}

	indexes := make([]int64, 0, len(byIndex))
	for idx := range byIndex {
		indexes = append(indexes, idx)
	}
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })

	rows := make([]ports.HashtagGiniRow, 0, len(indexes))
	ginis := make([]float64, 0, len(indexes))
	for _, idx := range indexes {
		b := byIndex[idx]
		g := Gini(b.hashtags)
		ginis = append(ginis, g)
		rows = append(rows, ports.HashtagGiniRow{
			WindowStart: b.start.Unix(),
			Count:       int64(len(b.hashtags)),
			Users:       int64(len(b.users)),
			Gini:        g,
		})
	}

	smooth := rollingMean(ginis, SmoothWindowSize)
	for i := range rows {
		rows[i].GiniSmooth = smooth[i]
	}
	return rows, nil
}

// Gini computes the Gini coefficient of the frequency distribution of
// values: 0.0 when every value is equally common, approaching 1.0 when one
// value dominates. Uses the cumulative form over ascending value counts.
func Gini(values []string) float64 {
	if len(values) == 0 {
		return 0
	}
	freq := make(map[string]int)
	for _, v := range values {
		freq[v]++
	}

	counts := make([]float64, 0, len(freq))
	for _, c := range freq {
		counts = append(counts, float64(c))
	}
	sort.Float64s(counts)

	cum := make([]float64, len(counts))
	floats.CumSum(cum, counts)

	n := float64(len(counts))
	return (n + 1 - 2*floats.Sum(cum)/cum[len(cum)-1]) / n
}

// rollingMean is a centered moving average; edge positions average over the
// part of the window that exists.
func rollingMean(xs []float64, window int) []float64 {
	out := make([]float64, len(xs))
	half := window / 2
	for i := range xs {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(xs) {
			hi = len(xs)
		}
		out[i] = floats.Sum(xs[lo:hi]) / float64(hi-lo)
	}
	return out
}
