package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	importName    string
	importColumns []string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a CSV or Excel dataset as a project",
	Long: `Import a dataset file. Columns map onto the canonical message inputs
(message_id, user_id, message_text, timestamp) automatically via name hints
and type inference; --col overrides individual mappings.`,
	Example: `  magpie import posts.csv --name campaign
  magpie import export.xlsx --col user_id=screen_name --col timestamp=created_at`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEnv, err := newEnv()
		if err != nil {
			return fail(err)
		}
		defer closeEnv()

		srcPath := args[0]
		name := importName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
		}

		override := make(map[string]string, len(importColumns))
		for _, spec := range importColumns {
			input, header, ok := strings.Cut(spec, "=")
			if !ok {
				return fail(fmt.Errorf("bad --col %q, want input=header", spec))
			}
			override[input] = header
		}

		if existing, err := e.store.LoadProject(name); err != nil {
			return fail(err)
		} else if existing != nil {
			return fail(fmt.Errorf("project %q already exists (magpie projects rm %s)", name, name))
		}

		proj, err := e.importer.Import(name, srcPath, override)
		if err != nil {
			return fail(err)
		}
		if err := e.store.SaveProject(proj); err != nil {
			return fail(err)
		}

		fmt.Printf("imported %q: %d rows\n", proj.Name, proj.RowCount)
		for input, header := range proj.ColumnMap {
			fmt.Printf("  %-14s <- %s\n", input, header)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importName, "name", "", "project name (default: file name)")
	importCmd.Flags().StringArrayVar(&importColumns, "col", nil, "column mapping override, input=header")
}
