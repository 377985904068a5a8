package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/thesyncim/todomvc-e2e/pkg/todomvc/suites"
)

var (
	suiteStyle = lipgloss.NewStyle().Bold(true)
	groupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	noteStyle  = lipgloss.NewStyle().Faint(true)
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list [suite...]",
		Short:     "List suites, groups and scenarios",
		ValidArgs: suites.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			built, err := suites.Build(suites.Options{}, args...)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, name := range suiteNames(args) {
				s := built[i]
				fmt.Fprintf(w, "%s %s\n", suiteStyle.Render(name), noteStyle.Render(fmt.Sprintf("%q, %d scenarios", s.Name, s.Len())))
				for _, g := range s.Groups {
					mode := "independent"
					if g.Serial {
						mode = "serial"
					}
					fmt.Fprintf(w, "  %s %s\n", groupStyle.Render(g.Name), noteStyle.Render("("+mode+")"))
					for _, sc := range g.Scenarios {
						if sc.Skip != "" {
							fmt.Fprintf(w, "    - %s %s\n", sc.Name, noteStyle.Render("[skip: "+sc.Skip+"]"))
							continue
						}
						fmt.Fprintf(w, "    - %s\n", sc.Name)
					}
				}
			}
			return nil
		},
	}
}

func suiteNames(args []string) []string {
	if len(args) == 0 {
		return suites.Names()
	}
	return args
}
