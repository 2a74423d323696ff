package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/magpielabs/magpie/internal/adapters/bboltstore"
	"github.com/magpielabs/magpie/internal/adapters/importer"
	"github.com/magpielabs/magpie/internal/analyzers"
	"github.com/magpielabs/magpie/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "magpie",
	Short: "magpie — social-media dataset analysis toolkit",
	Long:  "Import CSV/Excel datasets and analyze them for coordination signals: repeated n-grams, hashtag concentration over time.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// env bundles the wired application for command handlers.
type env struct {
	cfg      *app.Config
	log      zerolog.Logger
	store    *bboltstore.Store
	registry *analyzers.Registry
	runner   *app.Runner
	importer *importer.Importer
}

// newEnv loads config and opens the store. Callers must defer close().
func newEnv() (*env, func(), error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := app.NewLogger(cfg.LogLevel)

	store, err := bboltstore.NewStore(cfg.RegistryPath())
	if err != nil {
		return nil, nil, err
	}

	registry := analyzers.NewRegistry()
	e := &env{
		cfg:      cfg,
		log:      log,
		store:    store,
		registry: registry,
		runner: &app.Runner{
			Store:    store,
			Registry: registry,
			DataDir:  cfg.DataDir,
			Log:      log,
		},
		importer: &importer.Importer{DataDir: cfg.DataDir, Log: log},
	}
	return e, func() { store.Close() }, nil
}

func fail(err error) error {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return err
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(menuCmd)
}
