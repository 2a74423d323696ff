package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List and manage imported projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectsListCmd.RunE(cmd, args)
	},
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEnv, err := newEnv()
		if err != nil {
			return fail(err)
		}
		defer closeEnv()

		projects, err := e.store.ListProjects()
		if err != nil {
			return fail(err)
		}
		if len(projects) == 0 {
			fmt.Println("no projects imported")
			return nil
		}
		for _, p := range projects {
			runs, err := e.store.ListRuns(p.Name)
			if err != nil {
				return fail(err)
			}
			fmt.Printf("%-24s %8d rows  %2d runs  %s\n",
				p.Name, p.RowCount, len(runs), p.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var projectsRmCmd = &cobra.Command{
	Use:   "rm <project>",
	Short: "Delete a project and its run history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEnv, err := newEnv()
		if err != nil {
			return fail(err)
		}
		defer closeEnv()

		if err := e.store.DeleteProject(args[0]); err != nil {
			return fail(err)
		}
		fmt.Printf("deleted %q\n", args[0])
		return nil
	},
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsRmCmd)
}
