package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stepgraph/pkg/diagram"
)

// Lines above the first table row: top border, header, separator.
const tableHeaderLines = 3

// Lines reserved around the viewport: title, help, gap, detail pane.
const (
	chromeTop    = 3
	detailHeight = 8
)

var (
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	detailStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	swatchPadding = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// GraphViewModel - Interactive node browser
// =============================================================================

// GraphViewModel is the bubbletea model for browsing a diagram's nodes.
type GraphViewModel struct {
	Graph  *diagram.Graph
	Title  string
	Cursor int

	viewport viewport.Model
	ready    bool
	width    int
}

// NewGraphViewModel creates a browser for g.
func NewGraphViewModel(g *diagram.Graph, title string) GraphViewModel {
	return GraphViewModel{Graph: g, Title: title}
}

func (m GraphViewModel) Init() tea.Cmd {
	return nil
}

func (m GraphViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.refresh()
			}
			return m, nil
		case "down", "j":
			if m.Cursor < len(m.Graph.Nodes)-1 {
				m.Cursor++
				m.refresh()
			}
			return m, nil
		case "home", "g":
			m.Cursor = 0
			m.refresh()
			return m, nil
		case "end", "G":
			m.Cursor = max(len(m.Graph.Nodes)-1, 0)
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		height := max(msg.Height-chromeTop-detailHeight, 5)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.width = msg.Width
		m.refresh()
	}
	return m, nil
}

// refresh redraws the table and scrolls the cursor row into view.
func (m *GraphViewModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(nodeTable(m.Graph, m.Cursor))

	line := tableHeaderLines + m.Cursor
	switch {
	case m.Cursor == 0:
		m.viewport.SetYOffset(0)
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m GraphViewModel) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · %s · %d nodes · %d edges",
		m.Graph.Mode, m.Graph.Kind, len(m.Graph.Nodes), len(m.Graph.Edges))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  pgup/pgdn scroll  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(detailStyle.Width(max(m.width-2, 20)).Render(nodeDetail(m.Graph, m.Cursor)))
	return b.String()
}

// =============================================================================
// Rendering Helpers
// =============================================================================

// nodeTable renders every node as a table row, marking the cursor.
func nodeTable(g *diagram.Graph, cursor int) string {
	rows := make([][]string, 0, len(g.Nodes))
	for i, n := range g.Nodes {
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		rows = append(rows, []string{
			mark,
			n.ID,
			string(n.Role),
			truncate(n.Label, 48),
			fmt.Sprintf("%.0f, %.0f", n.Position.X, n.Position.Y),
			strconv.Itoa(n.Level),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Role", "Label", "Position", "Level").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= len(g.Nodes) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 2 {
				base = roleStyle(string(g.Nodes[row].Role))
			} else if col != 3 {
				base = base.Foreground(colorDim)
			}
			if row == cursor {
				return base.Bold(true)
			}
			return base
		}).
		Render()
}

// nodeDetail describes node i: its style and its incoming and outgoing edges.
func nodeDetail(g *diagram.Graph, i int) string {
	if i < 0 || i >= len(g.Nodes) {
		return listDimStyle.Render("no nodes")
	}
	n := g.Nodes[i]

	var b strings.Builder
	b.WriteString(roleStyle(string(n.Role)).Bold(true).Render(string(n.Role)))
	b.WriteString("  ")
	b.WriteString(StyleValue.Render(n.Label))
	b.WriteString("\n")

	fill := n.Style.Fill()
	swatch := swatchPadding.Background(lipgloss.Color(fill)).Render(" ")
	fmt.Fprintf(&b, "%s %s  depth %d  level %d\n", swatch, listDimStyle.Render(fill), n.Depth, n.Level)

	for _, e := range g.Edges {
		switch n.ID {
		case e.Source:
			b.WriteString(edgeLine(g, iconArrow, e.Target, e.Label))
		case e.Target:
			b.WriteString(edgeLine(g, "←", e.Source, e.Label))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func edgeLine(g *diagram.Graph, arrow, otherID, label string) string {
	other, _ := g.Node(otherID)
	line := "  " + StyleDim.Render(arrow) + " " + truncate(other.Label, 60)
	if label != "" {
		line += " " + StyleHighlight.Render("("+label+")")
	}
	return line + "\n"
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
