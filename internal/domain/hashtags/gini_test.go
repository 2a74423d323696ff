package hashtags

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGini_UniformIsZero(t *testing.T) {
	// Every hashtag used exactly once: perfect equality.
	assert.InDelta(t, 0.0, Gini([]string{"#a", "#b", "#c", "#d"}), 1e-9)
}

func TestGini_SingleValueIsZero(t *testing.T) {
	// One distinct hashtag has n=1; the coefficient degenerates to 0.
	assert.InDelta(t, 0.0, Gini([]string{"#a", "#a", "#a"}), 1e-9)
}

func TestGini_ConcentrationRaisesCoefficient(t *testing.T) {
	balanced := Gini([]string{"#a", "#a", "#b", "#b"})
	skewed := Gini([]string{"#a", "#a", "#a", "#a", "#a", "#a", "#b"})
	assert.Greater(t, skewed, balanced)
}

func TestGini_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Gini(nil))
}

func TestAnalyze_NoHashtagsErrors(t *testing.T) {
	posts := []Post{{AuthorID: "a", Timestamp: time.Now(), Text: "plain text"}}
	_, err := Analyze(posts, time.Hour)
	assert.ErrorIs(t, err, ErrNoHashtags)
}

func TestAnalyze_WindowBucketing(t *testing.T) {
	t0 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	posts := []Post{
		{AuthorID: "a", Timestamp: t0, Text: "go #one"},
		{AuthorID: "b", Timestamp: t0.Add(10 * time.Minute), Text: "go #one #two"},
		{AuthorID: "a", Timestamp: t0.Add(2 * time.Hour), Text: "later #three"},
	}

	rows, err := Analyze(posts, time.Hour)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, t0.Unix(), rows[0].WindowStart)
	assert.Equal(t, int64(3), rows[0].Count) // #one, #one, #two
	assert.Equal(t, int64(2), rows[0].Users)

	assert.Equal(t, t0.Add(2*time.Hour).Unix(), rows[1].WindowStart)
	assert.Equal(t, int64(1), rows[1].Count)
	assert.Equal(t, int64(1), rows[1].Users)
}

func TestAnalyze_SmoothedSeries(t *testing.T) {
	t0 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var posts []Post
	for i := 0; i < 4; i++ {
		posts = append(posts, Post{
			AuthorID:  "u",
			Timestamp: t0.Add(time.Duration(i) * time.Hour),
			Text:      "#x #y",
		})
	}

	rows, err := Analyze(posts, time.Hour)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.InDelta(t, 0.0, r.GiniSmooth, 1e-9)
	}
}

func TestRollingMean_Centered(t *testing.T) {
	got := rollingMean([]float64{1, 2, 3, 4, 5}, 3)
	assert.InDeltaSlice(t, []float64{1.5, 2, 3, 4, 4.5}, got, 1e-9)
}
