package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepgraph/pkg/diagram"
	"github.com/matzehuels/stepgraph/pkg/ingest"
	"github.com/matzehuels/stepgraph/pkg/store"
)

// ingestCommand creates the ingest command, which stores a document's lines.
func (c *CLI) ingestCommand() *cobra.Command {
	var (
		mode string
		text bool
		url  string
	)

	cmd := &cobra.Command{
		Use:   "ingest [file]",
		Short: "Extract lines from a PDF and store them",
		Long: `Extract lines from a PDF and store them as a document.

The PDF is sent to the extraction service ([ingest] url in the config, or
--url). With --text the file is read as plain text and split locally, so
no service is needed.

The stored document is what 'build', 'render' and 'view' use when no file
is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := diagram.ParseMode(mode)
			if err != nil {
				return err
			}

			var lines []string
			if text {
				lines, err = splitFile(args[0], m)
			} else {
				lines, err = c.extract(cmd.Context(), args[0], m, url)
			}
			if err != nil {
				return err
			}

			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			snap := store.New(lines, filepath.Base(args[0]))
			if err := st.Set(cmd.Context(), snap); err != nil {
				return fmt.Errorf("store document: %w", err)
			}

			printSuccess("Stored %d lines from %s", len(lines), snap.Source)
			printKeyValue("Document", snap.ID)
			printNextStep("Render it", fmt.Sprintf("stepgraph render --mode %s", m))
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(diagram.Flowchart), "extraction mode: flowchart, mindmap, tree")
	cmd.Flags().BoolVar(&text, "text", false, "read a plain text file instead of calling the extraction service")
	cmd.Flags().StringVar(&url, "url", "", "extraction service URL (overrides the config)")

	return cmd
}

// extract sends a PDF to the extraction service.
func (c *CLI) extract(ctx context.Context, path string, mode diagram.Mode, url string) ([]string, error) {
	client, err := c.newIngestClient(url)
	if err != nil {
		return nil, err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Extracting %s...", filepath.Base(path)))
	spinner.Start()
	prog := newProgress(c.Logger)

	lines, err := client.ExtractFile(ctx, path, mode)
	if err != nil {
		spinner.StopWithError("Extraction failed")
		return nil, err
	}
	spinner.Stop()
	prog.done("extracted document", "file", filepath.Base(path), "lines", len(lines))
	return lines, nil
}

// newIngestClient builds an extraction client from the [ingest] settings.
// A non-empty url overrides the configured one.
func (c *CLI) newIngestClient(url string) (*ingest.Client, error) {
	cfg := c.config().Ingest
	if url == "" {
		url = cfg.URL
	}
	return ingest.NewClient(url,
		ingest.WithLogger(c.Logger),
		ingest.WithRetry(cfg.Attempts, cfg.Delay),
		ingest.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
}

// splitFile reads a text file and splits it into diagram lines.
func splitFile(path string, mode diagram.Mode) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ingest.SplitText(string(data), mode), nil
}
