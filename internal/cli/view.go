package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepgraph/pkg/diagram"
)

// viewCommand creates the view command, an interactive node browser.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		in        inputOpts
		graphPath string
	)

	cmd := &cobra.Command{
		Use:   "view [lines.json|-]",
		Short: "Browse a diagram's nodes and edges in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				g     *diagram.Graph
				title string
			)
			if graphPath != "" {
				loaded, err := diagram.ReadFile(graphPath)
				if err != nil {
					return err
				}
				g, title = loaded, inputName(graphPath)
			} else {
				result, name, err := c.run(cmd, args, in, nil)
				if err != nil {
					return err
				}
				g, title = result.Graph, name
			}

			p := tea.NewProgram(NewGraphViewModel(g, title), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&graphPath, "graph", "", "browse a diagram JSON file produced by 'build'")

	return cmd
}
