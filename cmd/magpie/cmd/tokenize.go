package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magpielabs/magpie/internal/domain/tokenize"
)

var (
	tokPreserveCase bool
	tokEmoji        bool
	tokCashtags     bool
	tokMinLen       int
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <text>...",
	Short: "Print the tokens of a line of text (debugging aid)",
	Example: `  magpie tokenize "hey @user check out #hashtag https://example.com"
  magpie tokenize --emoji "nice 👍🏼 work"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := tokenize.DefaultConfig()
		if tokPreserveCase {
			cfg.CaseHandling = tokenize.CasePreserve
		}
		cfg.IncludeEmoji = tokEmoji
		cfg.ExtractCashtags = tokCashtags
		cfg.MinTokenLength = tokMinLen

		tok := tokenize.New(cfg, nil)
		for _, t := range tok.Tokenize(strings.Join(args, " ")) {
			fmt.Println(t)
		}
		return nil
	},
}

func init() {
	tokenizeCmd.Flags().BoolVar(&tokPreserveCase, "preserve-case", false, "keep original casing")
	tokenizeCmd.Flags().BoolVar(&tokEmoji, "emoji", false, "keep emoji tokens")
	tokenizeCmd.Flags().BoolVar(&tokCashtags, "cashtags", false, "extract $TICKER cashtags")
	tokenizeCmd.Flags().IntVar(&tokMinLen, "min-len", 1, "minimum token length in runes")
}
