package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepgraph/pkg/diagram"
)

// buildCommand creates the build command, which writes the diagram JSON.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		in     inputOpts
		output string
	)

	cmd := &cobra.Command{
		Use:   "build [lines.json|-]",
		Short: "Build a diagram from a line list",
		Long: `Build a diagram from a line list.

The input is a JSON array of strings, one per line in document order. Use
--text to read plain text instead, or omit the file to build a stored
document (the newest one unless --doc names another).

The diagram JSON is written to stdout, or to --output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, _, err := c.run(cmd, args, in, nil)
			if err != nil {
				return err
			}
			g := result.Graph

			if output == "" {
				return diagram.Write(g, cmd.OutOrStdout())
			}
			if err := diagram.WriteFile(g, output); err != nil {
				return err
			}
			printSuccess("Built %s diagram", g.Mode)
			printStats(string(g.Kind), result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.BuildHit)
			printFile(output)
			printNextStep("Export it", "stepgraph render --graph "+output+" -f svg")
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
