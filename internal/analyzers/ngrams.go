// Package analyzers holds the concrete ports.Analyzer implementations and
// the registry the orchestrator and CLI resolve them from. Analyzers stay
// thin: read tables, call the domain packages, write tables.
package analyzers

import (
	"github.com/magpielabs/magpie/internal/adapters/parquetio"
	"github.com/magpielabs/magpie/internal/domain/ngrams"
	"github.com/magpielabs/magpie/internal/domain/tokenize"
	"github.com/magpielabs/magpie/internal/ports"
)

// Output and param IDs shared between the n-gram primary and its secondary.
const (
	NgramsID     = "ngrams"
	NgramStatsID = "ngram_stats"
	HashtagsID   = "hashtags"

	OutMessageNgrams  = "message_ngrams"
	OutNgramDefs      = "ngrams"
	OutMessageAuthors = "message_authors"
	OutNgramSummary   = "ngram_stats"
	OutGini           = "hashtag_gini"

	ParamMinN   = "min_n"
	ParamMaxN   = "max_n"
	ParamWindow = "time_window"
)

// Ngrams is the primary n-gram extraction analyzer.
type Ngrams struct {
	// Lib is the shared pattern library; nil means each run compiles its own.
	Lib *tokenize.Library
}

func (a *Ngrams) Spec() ports.Spec {
	return ports.Spec{
		ID:               NgramsID,
		Version:          "1.0",
		Name:             "N-gram Analysis",
		ShortDescription: "Extracts repeated word sequences across messages",
		Kind:             ports.KindPrimary,
		Input: []ports.InputColumn{
			{Name: "message_id", HumanName: "Message ID", Type: ports.TypeIdentifier},
			{Name: "user_id", HumanName: "Author ID", Type: ports.TypeIdentifier},
			{Name: "message_text", HumanName: "Message text", Type: ports.TypeText},
			{Name: "timestamp", HumanName: "Timestamp", Type: ports.TypeDatetime},
		},
		Outputs: []ports.Output{
			{ID: OutMessageNgrams, Name: "Message n-grams", Internal: true,
				Description: "Message to n-gram instance pairs, deduplicated within each message"},
			{ID: OutNgramDefs, Name: "N-gram definitions", Internal: true,
				Description: "Distinct n-grams with corpus-wide IDs"},
			{ID: OutMessageAuthors, Name: "Message authors", Internal: true,
				Description: "Message to author pairs for downstream aggregation"},
		},
		Params: []ports.Param{
			{ID: ParamMinN, HumanName: "Smallest n-gram", Kind: ports.ParamInteger,
				Description: "Shortest word sequence length to extract", Min: 1, Max: 10, Default: 3},
			{ID: ParamMaxN, HumanName: "Largest n-gram", Kind: ports.ParamInteger,
				Description: "Longest word sequence length to extract", Min: 1, Max: 10, Default: 5},
		},
	}
}

func (a *Ngrams) Run(ctx ports.AnalyzerContext) error {
	minN := ctx.Params().Int(ParamMinN, 3)
	maxN := ctx.Params().Int(ParamMaxN, 5)

	msgs, err := parquetio.ReadAll[ports.MessageRow](ctx.Input().Path)
	if err != nil {
		return err
	}

	ext := ngrams.NewExtractor(tokenize.New(tokenize.DefaultConfig(), a.Lib), minN, maxN)
	res := ext.Extract(msgs, func(frac float64) {
		ctx.Progress("extracting n-grams", frac)
	})

	instances := make([]ports.MessageNgramRow, len(res.Instances))
	for i, inst := range res.Instances {
		instances[i] = ports.MessageNgramRow{
			MessageSurrogateID: inst.MessageSurrogateID,
			NgramID:            inst.NgramID,
		}
	}
	defs := make([]ports.NgramDefRow, len(res.Definitions))
	for i, d := range res.Definitions {
		defs[i] = ports.NgramDefRow{NgramID: d.ID, Words: d.Words, Length: int32(d.Length)}
	}
	authors := make([]ports.MessageAuthorRow, 0, len(msgs))
	for _, m := range msgs {
		if m.AuthorID == "" {
			continue
		}
		authors = append(authors, ports.MessageAuthorRow{
			MessageSurrogateID: m.SurrogateID,
			AuthorID:           m.AuthorID,
		})
	}

	ctx.Progress("writing tables", 0)
	if err := parquetio.WriteAll(ctx.Output(OutMessageNgrams).Path, instances); err != nil {
		return err
	}
	if err := parquetio.WriteAll(ctx.Output(OutNgramDefs).Path, defs); err != nil {
		return err
	}
	if err := parquetio.WriteAll(ctx.Output(OutMessageAuthors).Path, authors); err != nil {
		return err
	}
	ctx.Progress("writing tables", 1)
	return nil
}
