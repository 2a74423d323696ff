package ports

// Row types for the columnar tables analyzers exchange. Parquet tags define
// the on-disk column names; they are part of the table contract, so they
// live here with the interfaces rather than in the parquet adapter.

// MessageRow is one imported social-media post.
type MessageRow struct {
	SurrogateID int64  `parquet:"message_surrogate_id"`
	MessageID   string `parquet:"message_id"`
	AuthorID    string `parquet:"user_id"`
	Text        string `parquet:"message_text"`
	// Timestamp is Unix seconds; parquet has no native time.Time here and
	// the analyzers only bucket or pass it through.
	Timestamp int64 `parquet:"timestamp"`
}

// MessageNgramRow links a message to one distinct n-gram it contains
// (deduplicated within the message).
type MessageNgramRow struct {
	MessageSurrogateID int64 `parquet:"message_surrogate_id"`
	NgramID            int64 `parquet:"ngram_id"`
}

// MessageAuthorRow carries message authorship into downstream analyzers so
// secondaries need not re-read the imported dataset.
type MessageAuthorRow struct {
	MessageSurrogateID int64  `parquet:"message_surrogate_id"`
	AuthorID           string `parquet:"user_id"`
}

// NgramDefRow is the definition of one distinct n-gram.
type NgramDefRow struct {
	NgramID int64  `parquet:"ngram_id"`
	Words   string `parquet:"words"` // tokens joined by a single space
	Length  int32  `parquet:"n"`
}

// NgramStatsRow is the per-n-gram summary: definition joined with corpus
// statistics. Singleton n-grams (one total repetition) are filtered out.
type NgramStatsRow struct {
	NgramID         int64  `parquet:"ngram_id"`
	Words           string `parquet:"words"`
	Length          int32  `parquet:"n"`
	TotalReps       int64  `parquet:"ngram_total_reps"`
	DistinctPosters int64  `parquet:"ngram_distinct_poster_count"`
}

// HashtagGiniRow is one time-window bucket of hashtag concentration.
type HashtagGiniRow struct {
	WindowStart int64   `parquet:"timewindow_start"` // Unix seconds
	Count       int64   `parquet:"count"`
	Users       int64   `parquet:"users"`
	Gini        float64 `parquet:"gini"`
	GiniSmooth  float64 `parquet:"gini_smooth"`
}
