package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magpielabs/magpie/internal/app"
)

var exportCmd = &cobra.Command{
	Use:   "export <project> <analyzer> <output> <dest.csv>",
	Short: "Export an output table of the latest run as CSV",
	Example: `  magpie export campaign ngram_stats ngram_stats summary.csv
  magpie export campaign hashtags hashtag_gini gini.csv`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEnv, err := newEnv()
		if err != nil {
			return fail(err)
		}
		defer closeEnv()

		project, analyzerID, outputID, dst := args[0], args[1], args[2], args[3]
		run, err := e.runner.LatestRun(project, analyzerID)
		if err != nil {
			return fail(err)
		}
		if run == nil {
			return fail(fmt.Errorf("no completed %s run for %q", analyzerID, project))
		}
		if err := app.ExportCSV(run, outputID, dst); err != nil {
			return fail(err)
		}
		fmt.Printf("exported %s of run %s to %s\n", outputID, run.ID, dst)
		return nil
	},
}
