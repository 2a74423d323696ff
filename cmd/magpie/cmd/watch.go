package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/magpielabs/magpie/internal/adapters/fswatch"
)

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a drop directory and import new dataset files",
	Long: `Watch a directory for new CSV/Excel files and import each one as a
project named after the file. Existing projects with the same name are
left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEnv, err := newEnv()
		if err != nil {
			return fail(err)
		}
		defer closeEnv()

		dir := watchDir
		if dir == "" {
			dir = e.cfg.WatchDir
		}

		w, err := fswatch.NewWatcher()
		if err != nil {
			return fail(err)
		}
		defer w.Stop()

		err = w.Watch(dir, func(path string) {
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			if existing, err := e.store.LoadProject(name); err != nil || existing != nil {
				e.log.Warn().Str("project", name).Msg("skipping drop, project exists")
				return
			}
			proj, err := e.importer.Import(name, path, nil)
			if err != nil {
				e.log.Error().Err(err).Str("file", path).Msg("import failed")
				return
			}
			if err := e.store.SaveProject(proj); err != nil {
				e.log.Error().Err(err).Str("project", name).Msg("save failed")
				return
			}
			e.log.Info().Str("project", name).Int("rows", proj.RowCount).Msg("imported")
		})
		if err != nil {
			return fail(err)
		}
		fmt.Printf("watching %s (ctrl-c to stop)\n", dir)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "directory to watch (default from config)")
}
