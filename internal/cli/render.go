package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepgraph/pkg/diagram"
	"github.com/matzehuels/stepgraph/pkg/pipeline"
	"github.com/matzehuels/stepgraph/pkg/render"
)

// renderCommand creates the render command, which exports a diagram to files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		in         inputOpts
		formatsStr string
		output     string
		graphPath  string
	)

	cmd := &cobra.Command{
		Use:   "render [lines.json|-]",
		Short: "Export a diagram as SVG, PNG, DOT, Mermaid or JSON",
		Long: `Export a diagram as SVG, PNG, DOT, Mermaid or JSON.

Input is read like 'build': a line list file, plain text with --text, or a
stored document. --graph renders a diagram JSON written by 'build' instead.

Each format is written to <output>.<ext>; the base defaults to the input
name. Use -o - with a single text format to print to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := validateFormats(parseFormats(formatsStr))
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(cmd.Context(), "Rendering...")
			spinner.Start()

			var (
				result *pipeline.Result
				name   string
			)
			if graphPath != "" {
				if len(args) > 0 || in.doc != "" {
					spinner.Stop()
					return fmt.Errorf("--graph cannot be combined with a line file or --doc")
				}
				result, err = c.renderGraphFile(cmd, graphPath, in, formats)
				name = inputName(graphPath)
			} else {
				result, name, err = c.run(cmd, args, in, formats)
			}
			if err != nil {
				spinner.StopWithError("Render failed")
				return err
			}
			spinner.Stop()

			if output == "-" {
				return writeStdout(cmd, result, formats)
			}
			return writeArtifacts(result, formats, basePath(output, name))
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, mermaid, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path, or - for stdout")
	cmd.Flags().StringVar(&graphPath, "graph", "", "render a diagram JSON file produced by 'build'")

	return cmd
}

// renderGraphFile exports a previously built diagram.
func (c *CLI) renderGraphFile(cmd *cobra.Command, path string, in inputOpts, formats []string) (*pipeline.Result, error) {
	g, err := diagram.ReadFile(path)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(cmd.Context(), in.noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.newOptions(string(g.Mode), in.refresh)
	opts.Formats = formats
	artifacts, hit, err := runner.RenderWithCacheInfo(cmd.Context(), g, opts)
	if err != nil {
		return nil, err
	}
	return &pipeline.Result{
		Graph:     g,
		Artifacts: artifacts,
		Stats:     pipeline.Stats{NodeCount: len(g.Nodes), EdgeCount: len(g.Edges)},
		CacheInfo: pipeline.CacheInfo{BuildHit: true, RenderHit: hit},
	}, nil
}

// validateFormats normalizes format names and drops duplicates.
func validateFormats(names []string) ([]string, error) {
	seen := make(map[render.Format]bool, len(names))
	var out []string
	for _, n := range names {
		f, err := render.ParseFormat(n)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, string(f))
		}
	}
	return out, nil
}

// basePath derives the output base path. If output is empty, name is used.
// A known format extension on output is stripped.
func basePath(output, name string) string {
	if output == "" {
		return name
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if _, err := render.ParseFormat(ext); err == nil && ext != "" {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

func writeArtifacts(result *pipeline.Result, formats []string, base string) error {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	g := result.Graph
	printSuccess("Rendered %s diagram", g.Mode)
	printStats(string(g.Kind), result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	for _, name := range formats {
		path := base + "." + render.Format(name).Ext()
		if err := os.WriteFile(path, result.Artifacts[name], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

func writeStdout(cmd *cobra.Command, result *pipeline.Result, formats []string) error {
	if len(formats) != 1 {
		return fmt.Errorf("-o - needs exactly one format, got %d", len(formats))
	}
	if render.Format(formats[0]).Binary() {
		return fmt.Errorf("%s output is binary; write it to a file", formats[0])
	}
	_, err := cmd.OutOrStdout().Write(result.Artifacts[formats[0]])
	return err
}
