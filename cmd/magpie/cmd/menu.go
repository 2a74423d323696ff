package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/magpielabs/magpie/internal/ports"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu for import, analysis, and export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEnv, err := newEnv()
		if err != nil {
			return fail(err)
		}
		defer closeEnv()

		for {
			_, choice, err := (&promptui.Select{
				Label: "What would you like to do?",
				Items: []string{
					"Import a dataset",
					"Run an analysis",
					"List projects",
					"Delete a project",
					"Quit",
				},
			}).Run()
			if err != nil {
				return menuDone(err)
			}

			switch choice {
			case "Import a dataset":
				err = menuImport(e)
			case "Run an analysis":
				err = menuAnalyze(e)
			case "List projects":
				err = projectsListCmd.RunE(cmd, nil)
			case "Delete a project":
				err = menuDelete(e)
			case "Quit":
				return nil
			}
			if err != nil {
				if isMenuAbort(err) {
					continue
				}
				fmt.Printf("error: %v\n", err)
			}
		}
	},
}

// isMenuAbort reports a ctrl-c or escape inside a sub-prompt, which returns
// to the main menu instead of aborting the program.
func isMenuAbort(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrEOF)
}

// menuDone maps a ctrl-c at the top menu to a clean exit.
func menuDone(err error) error {
	if isMenuAbort(err) {
		return nil
	}
	return err
}

func menuImport(e *env) error {
	path, err := (&promptui.Prompt{Label: "Path to CSV or Excel file"}).Run()
	if err != nil {
		return err
	}
	name, err := (&promptui.Prompt{Label: "Project name"}).Run()
	if err != nil {
		return err
	}

	if existing, err := e.store.LoadProject(name); err != nil {
		return err
	} else if existing != nil {
		return fmt.Errorf("project %q already exists", name)
	}

	proj, err := e.importer.Import(name, path, nil)
	if err != nil {
		return err
	}

	fmt.Println("column mapping:")
	for input, header := range proj.ColumnMap {
		fmt.Printf("  %-14s <- %s\n", input, header)
	}
	_, accept, err := (&promptui.Select{
		Label: "Use this mapping?",
		Items: []string{"Yes", "No, cancel import"},
	}).Run()
	if err != nil {
		return err
	}
	if accept != "Yes" {
		return nil
	}

	if err := e.store.SaveProject(proj); err != nil {
		return err
	}
	fmt.Printf("imported %q: %d rows\n", proj.Name, proj.RowCount)
	return nil
}

func menuAnalyze(e *env) error {
	proj, err := menuPickProject(e)
	if err != nil || proj == "" {
		return err
	}

	primaries := e.registry.Primaries()
	items := make([]string, len(primaries))
	for i, a := range primaries {
		spec := a.Spec()
		items[i] = fmt.Sprintf("%s — %s", spec.Name, spec.ShortDescription)
	}
	idx, _, err := (&promptui.Select{Label: "Which analysis?", Items: items}).Run()
	if err != nil {
		return err
	}
	spec := primaries[idx].Spec()

	params := ports.ParamValues{}
	for _, p := range spec.Params {
		switch p.Kind {
		case ports.ParamInteger:
			val, err := menuIntPrompt(p)
			if err != nil {
				return err
			}
			params[p.ID] = val
		case ports.ParamTimeWindow:
			val, err := menuWindowPrompt(p)
			if err != nil {
				return err
			}
			params[p.ID] = val
		}
	}

	run, err := e.runner.Analyze(proj, spec.ID, params)
	if err != nil {
		return err
	}
	fmt.Printf("run %s completed\n", run.ID)
	return nil
}

func menuDelete(e *env) error {
	proj, err := menuPickProject(e)
	if err != nil || proj == "" {
		return err
	}
	_, confirm, err := (&promptui.Select{
		Label: fmt.Sprintf("Delete %q and its runs?", proj),
		Items: []string{"No, keep it", "Yes, delete"},
	}).Run()
	if err != nil {
		return err
	}
	if confirm != "Yes, delete" {
		return nil
	}
	if err := e.store.DeleteProject(proj); err != nil {
		return err
	}
	fmt.Printf("deleted %q\n", proj)
	return nil
}

// menuPickProject returns the chosen project name, or "" when none exist.
func menuPickProject(e *env) (string, error) {
	projects, err := e.store.ListProjects()
	if err != nil {
		return "", err
	}
	if len(projects) == 0 {
		fmt.Println("no projects imported yet")
		return "", nil
	}
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	_, name, err := (&promptui.Select{Label: "Which project?", Items: names}).Run()
	return name, err
}

func menuIntPrompt(p ports.Param) (int, error) {
	out, err := (&promptui.Prompt{
		Label:   fmt.Sprintf("%s (%d-%d)", p.HumanName, p.Min, p.Max),
		Default: strconv.Itoa(p.Default),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return errors.New("enter a number")
			}
			if n < p.Min || n > p.Max {
				return fmt.Errorf("must be between %d and %d", p.Min, p.Max)
			}
			return nil
		},
	}).Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(out)
}

func menuWindowPrompt(p ports.Param) (time.Duration, error) {
	out, err := (&promptui.Prompt{
		Label:   fmt.Sprintf("%s (e.g. 30m, 1h, 24h)", p.HumanName),
		Default: p.DefaultWindow.String(),
		Validate: func(s string) error {
			d, err := time.ParseDuration(s)
			if err != nil {
				return errors.New("enter a duration like 1h")
			}
			if d <= 0 {
				return errors.New("must be positive")
			}
			return nil
		},
	}).Run()
	if err != nil {
		return 0, err
	}
	return time.ParseDuration(out)
}
