package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepgraph/pkg/diagram"
	"github.com/matzehuels/stepgraph/pkg/ingest"
	"github.com/matzehuels/stepgraph/pkg/pipeline"
)

// latestDoc selects the newest stored document.
const latestDoc = "latest"

// inputOpts are the flags shared by commands that build a diagram.
type inputOpts struct {
	mode    string // flowchart, mindmap or tree
	doc     string // stored document ID, or "latest"
	text    bool   // input file is plain text, not a JSON line list
	noCache bool
	refresh bool
}

func (o *inputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.mode, "mode", "m", string(pipeline.DefaultMode), "diagram mode: flowchart, mindmap, tree")
	cmd.Flags().StringVarP(&o.doc, "doc", "d", "", `stored document ID, or "latest" (default when no file is given)`)
	cmd.Flags().BoolVar(&o.text, "text", false, "read the input as plain text and split it into lines")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached results")
}

// run builds the diagram for args, rendering formats when given. With no
// file argument the stored document named by --doc is used.
func (c *CLI) run(cmd *cobra.Command, args []string, in inputOpts, formats []string) (*pipeline.Result, string, error) {
	ctx := cmd.Context()
	if len(args) > 0 && in.doc != "" {
		return nil, "", fmt.Errorf("give either a file or --doc, not both")
	}

	runner, err := c.newRunner(ctx, in.noCache)
	if err != nil {
		return nil, "", fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.newOptions(in.mode, in.refresh)
	opts.Formats = formats

	if len(args) > 0 {
		lines, err := readLines(cmd.InOrStdin(), args[0], in.text, in.mode)
		if err != nil {
			return nil, "", err
		}
		c.Logger.Debug("read lines", "input", args[0], "lines", len(lines))
		result, err := runner.Execute(ctx, lines, opts)
		if err != nil {
			return nil, "", err
		}
		return result, inputName(args[0]), nil
	}

	result, err := c.runDocument(ctx, runner, in.doc, opts)
	if err != nil {
		return nil, "", err
	}
	return result, documentName(result), nil
}

func (c *CLI) runDocument(ctx context.Context, runner *pipeline.Runner, id string, opts pipeline.Options) (*pipeline.Result, error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return runner.ExecuteDocument(ctx, st, documentID(id), opts)
}

// readLines reads a JSON line list, or plain text when text is set, from
// path ("-" reads stdin).
func readLines(stdin io.Reader, path string, text bool, mode string) ([]string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if !text {
		return diagram.ParseLines(data)
	}
	m, err := diagram.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return ingest.SplitText(string(data), m), nil
}

// documentID maps the "latest" alias to the empty ID.
func documentID(id string) string {
	if strings.EqualFold(id, latestDoc) {
		return ""
	}
	return id
}

// inputName derives an output base name from an input path.
func inputName(path string) string {
	if path == "-" {
		return "diagram"
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// documentName names outputs after the document's source file, or its ID.
func documentName(r *pipeline.Result) string {
	if r.Document == nil {
		return "diagram"
	}
	if src := r.Document.Source; src != "" {
		return inputName(src)
	}
	return r.Document.ID
}
