package analyzers

import (
	"github.com/magpielabs/magpie/internal/adapters/parquetio"
	"github.com/magpielabs/magpie/internal/domain/ngrams"
	"github.com/magpielabs/magpie/internal/ports"
)

// NgramStats is the secondary analyzer over the n-gram primary: it joins
// definitions with corpus repetition counts and filters singletons.
type NgramStats struct{}

func (a *NgramStats) Spec() ports.Spec {
	return ports.Spec{
		ID:               NgramStatsID,
		Version:          "1.0",
		Name:             "N-gram Statistics",
		ShortDescription: "Repetition and distinct-poster counts per n-gram",
		Kind:             ports.KindSecondary,
		BasedOn:          NgramsID,
		Outputs: []ports.Output{
			{ID: OutNgramSummary, Name: "N-gram summary",
				Description: "N-grams ranked by length and repetition, singletons removed",
				Columns: []ports.OutputColumn{
					{Name: "ngram_id", Type: ports.TypeInteger},
					{Name: "words", Type: ports.TypeText},
					{Name: "n", Type: ports.TypeInteger},
					{Name: "ngram_total_reps", Type: ports.TypeInteger},
					{Name: "ngram_distinct_poster_count", Type: ports.TypeInteger},
				}},
		},
	}
}

func (a *NgramStats) Run(ctx ports.AnalyzerContext) error {
	instanceRows, err := parquetio.ReadAll[ports.MessageNgramRow](ctx.Base(OutMessageNgrams).Path)
	if err != nil {
		return err
	}
	defRows, err := parquetio.ReadAll[ports.NgramDefRow](ctx.Base(OutNgramDefs).Path)
	if err != nil {
		return err
	}
	authorRows, err := parquetio.ReadAll[ports.MessageAuthorRow](ctx.Base(OutMessageAuthors).Path)
	if err != nil {
		return err
	}

	ctx.Progress("aggregating", 0)

	instances := make([]ngrams.Instance, len(instanceRows))
	for i, r := range instanceRows {
		instances[i] = ngrams.Instance{MessageSurrogateID: r.MessageSurrogateID, NgramID: r.NgramID}
	}
	defs := make([]ngrams.Definition, len(defRows))
	for i, r := range defRows {
		defs[i] = ngrams.Definition{ID: r.NgramID, Words: r.Words, Length: int(r.Length)}
	}
	authors := make(map[int64]string, len(authorRows))
	for _, r := range authorRows {
		authors[r.MessageSurrogateID] = r.AuthorID
	}

	stats := ngrams.ComputeStats(instances, authors)
	summary := ngrams.Summarize(defs, stats)

	ctx.Progress("writing tables", 0)
	if err := parquetio.WriteAll(ctx.Output(OutNgramSummary).Path, summary); err != nil {
		return err
	}
	ctx.Progress("writing tables", 1)
	return nil
}
