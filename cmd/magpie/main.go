// magpie analyzes social-media datasets for coordinated behavior signals:
// repeated n-grams across posters and hashtag concentration over time.
package main

import (
	"os"

	"github.com/magpielabs/magpie/cmd/magpie/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
