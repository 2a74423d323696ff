package app

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/magpielabs/magpie/internal/adapters/parquetio"
	"github.com/magpielabs/magpie/internal/analyzers"
	"github.com/magpielabs/magpie/internal/ports"
)

// ExportCSV converts one output table of a completed run into a CSV file.
// Output IDs are a closed set, so the row type switch is exhaustive.
func ExportCSV(run *ports.AnalysisRun, outputID, dst string) error {
	src, ok := run.Outputs[outputID]
	if !ok {
		return fmt.Errorf("run %s has no output %q", run.ID, outputID)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)

	switch outputID {
	case analyzers.OutNgramSummary:
		rows, err := parquetio.ReadAll[ports.NgramStatsRow](src)
		if err != nil {
			return err
		}
		w.Write([]string{"ngram_id", "words", "n", "ngram_total_reps", "ngram_distinct_poster_count"})
		for _, r := range rows {
			w.Write([]string{
				strconv.FormatInt(r.NgramID, 10), r.Words,
				strconv.FormatInt(int64(r.Length), 10),
				strconv.FormatInt(r.TotalReps, 10),
				strconv.FormatInt(r.DistinctPosters, 10),
			})
		}

	case analyzers.OutGini:
		rows, err := parquetio.ReadAll[ports.HashtagGiniRow](src)
		if err != nil {
			return err
		}
		w.Write([]string{"timewindow_start", "count", "users", "gini", "gini_smooth"})
		for _, r := range rows {
			w.Write([]string{
				time.Unix(r.WindowStart, 0).UTC().Format(time.RFC3339),
				strconv.FormatInt(r.Count, 10),
				strconv.FormatInt(r.Users, 10),
				strconv.FormatFloat(r.Gini, 'f', 6, 64),
				strconv.FormatFloat(r.GiniSmooth, 'f', 6, 64),
			})
		}

	case analyzers.OutNgramDefs:
		rows, err := parquetio.ReadAll[ports.NgramDefRow](src)
		if err != nil {
			return err
		}
		w.Write([]string{"ngram_id", "words", "n"})
		for _, r := range rows {
			w.Write([]string{
				strconv.FormatInt(r.NgramID, 10), r.Words,
				strconv.FormatInt(int64(r.Length), 10),
			})
		}

	case analyzers.OutMessageNgrams:
		rows, err := parquetio.ReadAll[ports.MessageNgramRow](src)
		if err != nil {
			return err
		}
		w.Write([]string{"message_surrogate_id", "ngram_id"})
		for _, r := range rows {
			w.Write([]string{
				strconv.FormatInt(r.MessageSurrogateID, 10),
				strconv.FormatInt(r.NgramID, 10),
			})
		}

	case analyzers.OutMessageAuthors:
		rows, err := parquetio.ReadAll[ports.MessageAuthorRow](src)
		if err != nil {
			return err
		}
		w.Write([]string{"message_surrogate_id", "user_id"})
		for _, r := range rows {
			w.Write([]string{strconv.FormatInt(r.MessageSurrogateID, 10), r.AuthorID})
		}

	default:
		return fmt.Errorf("no exporter for output %q", outputID)
	}

	w.Flush()
	return w.Error()
}
