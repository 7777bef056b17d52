package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepgraph/pkg/errors"
	"github.com/matzehuels/stepgraph/pkg/store"
)

// dataCommand creates the command group for stored documents.
func (c *CLI) dataCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Manage stored documents",
	}

	cmd.AddCommand(c.dataListCommand())
	cmd.AddCommand(c.dataShowCommand())
	cmd.AddCommand(c.dataAddCommand())
	cmd.AddCommand(c.dataDeleteCommand())
	cmd.AddCommand(c.dataClearCommand())

	return cmd
}

func (c *CLI) dataListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			all, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				printInfo("No stored documents")
				printNextStep("Add one", "stepgraph ingest report.pdf")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), documentTable(all))
			return nil
		},
	}
}

// documentTable renders snapshots as a bordered table.
func documentTable(all []*store.Snapshot) string {
	rows := make([][]string, 0, len(all))
	for _, s := range all {
		source := s.Source
		if source == "" {
			source = "—"
		}
		rows = append(rows, []string{s.ID, source, strconv.Itoa(len(s.Lines)), s.CreatedAt.Local().Format("Jan 2 15:04")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Source", "Lines", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == 0 && col == 0:
				return StyleHighlight
			case col == 0 || col == 3:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}

func (c *CLI) dataShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print a document's lines as JSON (newest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			id := ""
			if len(args) == 1 {
				id = documentID(args[0])
			}
			snap, err := store.Resolve(cmd.Context(), st, id)
			if err != nil {
				return err
			}
			return writeLines(cmd.OutOrStdout(), snap.Lines)
		},
	}
}

func writeLines(w io.Writer, lines []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(lines)
}

func (c *CLI) dataAddCommand() *cobra.Command {
	var (
		text bool
		mode string
	)
	cmd := &cobra.Command{
		Use:   "add [lines.json|-]",
		Short: "Store a line list as a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(cmd.InOrStdin(), args[0], text, mode)
			if err != nil {
				return err
			}

			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			source := ""
			if args[0] != "-" {
				source = filepath.Base(args[0])
			}
			snap := store.New(lines, source)
			if err := st.Set(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), snap.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "read plain text and split it into lines")
	cmd.Flags().StringVarP(&mode, "mode", "m", "flowchart", "split mode for --text")
	return cmd
}

func (c *CLI) dataDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateDocumentID(args[0]); err != nil {
				return err
			}
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

func (c *CLI) dataClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored document",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Clear(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Cleared stored documents")
			return nil
		},
	}
}
