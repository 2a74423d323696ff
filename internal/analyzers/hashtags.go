package analyzers

import (
	"time"

	"github.com/magpielabs/magpie/internal/adapters/parquetio"
	"github.com/magpielabs/magpie/internal/domain/hashtags"
	"github.com/magpielabs/magpie/internal/ports"
)

// Hashtags is the primary hashtag concentration analyzer.
type Hashtags struct{}

func (a *Hashtags) Spec() ports.Spec {
	return ports.Spec{
		ID:               HashtagsID,
		Version:          "1.0",
		Name:             "Hashtag Analysis",
		ShortDescription: "Hashtag usage concentration (Gini) over time windows",
		Kind:             ports.KindPrimary,
		Input: []ports.InputColumn{
			{Name: "user_id", HumanName: "Author ID", Type: ports.TypeIdentifier},
			{Name: "message_text", HumanName: "Message text", Type: ports.TypeText},
			{Name: "timestamp", HumanName: "Timestamp", Type: ports.TypeDatetime},
		},
		Outputs: []ports.Output{
			{ID: OutGini, Name: "Hashtag concentration",
				Description: "Per-window hashtag count, users, Gini, and smoothed Gini",
				Columns: []ports.OutputColumn{
					{Name: "timewindow_start", Type: ports.TypeDatetime},
					{Name: "count", Type: ports.TypeInteger},
					{Name: "users", Type: ports.TypeInteger},
					{Name: "gini", Type: ports.TypeFloat},
					{Name: "gini_smooth", Type: ports.TypeFloat},
				}},
		},
		Params: []ports.Param{
			{ID: ParamWindow, HumanName: "Time window", Kind: ports.ParamTimeWindow,
				Description:   "Bucket size for the concentration series",
				DefaultWindow: time.Hour},
		},
	}
}

func (a *Hashtags) Run(ctx ports.AnalyzerContext) error {
	window := ctx.Params().Window(ParamWindow, time.Hour)

	msgs, err := parquetio.ReadAll[ports.MessageRow](ctx.Input().Path)
	if err != nil {
		return err
	}

	ctx.Progress("bucketing hashtags", 0)
	posts := make([]hashtags.Post, 0, len(msgs))
	for _, m := range msgs {
		posts = append(posts, hashtags.Post{
			AuthorID:  m.AuthorID,
			Timestamp: time.Unix(m.Timestamp, 0).UTC(),
			Text:      m.Text,
		})
	}

	rows, err := hashtags.Analyze(posts, window)
	if err != nil {
		return err
	}

	ctx.Progress("writing tables", 0)
	if err := parquetio.WriteAll(ctx.Output(OutGini).Path, rows); err != nil {
		return err
	}
	ctx.Progress("writing tables", 1)
	return nil
}
