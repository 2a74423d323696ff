package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/magpielabs/magpie/internal/analyzers"
	"github.com/magpielabs/magpie/internal/ports"
)

var (
	analyzeMinN   int
	analyzeMaxN   int
	analyzeWindow time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <project> <analyzer>",
	Short: "Run an analyzer against an imported project",
	Long: `Run an analyzer. Running a primary analyzer also runs its dependent
secondaries. Available analyzers: ngrams, ngram_stats, hashtags.`,
	Example: `  magpie analyze campaign ngrams --min-n 3 --max-n 5
  magpie analyze campaign hashtags --window 1h`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEnv, err := newEnv()
		if err != nil {
			return fail(err)
		}
		defer closeEnv()

		params := ports.ParamValues{
			analyzers.ParamMinN:   analyzeMinN,
			analyzers.ParamMaxN:   analyzeMaxN,
			analyzers.ParamWindow: analyzeWindow,
		}
		run, err := e.runner.Analyze(args[0], args[1], params)
		if err != nil {
			return fail(err)
		}

		fmt.Printf("run %s completed\n", run.ID)
		for outputID, path := range run.Outputs {
			fmt.Printf("  %-16s %s\n", outputID, path)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeMinN, "min-n", 3, "smallest n-gram length")
	analyzeCmd.Flags().IntVar(&analyzeMaxN, "max-n", 5, "largest n-gram length")
	analyzeCmd.Flags().DurationVar(&analyzeWindow, "window", time.Hour, "hashtag time window")
}
