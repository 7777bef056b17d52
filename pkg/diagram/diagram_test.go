package diagram

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/stepgraph/pkg/core/classify"
	"github.com/matzehuels/stepgraph/pkg/core/layout"
	"github.com/matzehuels/stepgraph/pkg/core/topology"
	"github.com/matzehuels/stepgraph/pkg/errors"
)

var decisionFlow = []string{
	"Start the review",
	"Is the form complete?",
	"Yes, approve it",
	"No, send it back",
	"Archive the record",
	"Finish",
}

func TestBuildKinds(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		mode  Mode
		want  topology.Kind
	}{
		{"plain flowchart", []string{"Intro", "Body", "Summary"}, Flowchart, topology.Linear},
		{"decision flowchart", decisionFlow, Flowchart, topology.Branch},
		{"mindmap", []string{"Topic", "Idea", "Other idea"}, Mindmap, topology.Star},
		{"tree", []string{"Root", "  Leaf"}, TreeMode, topology.Tree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.lines, tt.mode)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if g.Kind != tt.want {
				t.Errorf("kind = %s, want %s", g.Kind, tt.want)
			}
			if g.Mode != tt.mode {
				t.Errorf("mode = %s, want %s", g.Mode, tt.mode)
			}
		})
	}
}

func TestBuildConservesLines(t *testing.T) {
	lines := []string{"Root", "  1. First", "    Nested", "  2. Second"}
	for _, m := range Modes {
		g, err := Build(lines, m)
		if err != nil {
			t.Fatalf("Build(%s): %v", m, err)
		}
		if len(g.Nodes) != len(lines) {
			t.Fatalf("%s: %d nodes for %d lines", m, len(g.Nodes), len(lines))
		}
		for i, n := range g.Nodes {
			if n.ID != topology.NodeID(i) {
				t.Errorf("%s: node %d has id %q", m, i, n.ID)
			}
		}
		if g.Nodes[1].Label != "First" {
			t.Errorf("%s: label = %q, want ordinal stripped", m, g.Nodes[1].Label)
		}
		if err := g.Validate(); err != nil {
			t.Errorf("%s: Validate: %v", m, err)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	for _, m := range Modes {
		a, err := Build(decisionFlow, m)
		if err != nil {
			t.Fatal(err)
		}
		b, _ := Build(decisionFlow, m)

		ja, _ := Marshal(a)
		jb, _ := Marshal(b)
		if !bytes.Equal(ja, jb) {
			t.Errorf("%s: output differs between runs", m)
		}
	}
}

func TestBuildDecisionFlow(t *testing.T) {
	g, err := Build(decisionFlow, Flowchart)
	if err != nil {
		t.Fatal(err)
	}

	labels := map[string]string{}
	for _, e := range g.Edges {
		if e.Label != "" {
			labels[e.ID] = e.Label
		}
	}
	want := map[string]string{"e-1-2": "Yes", "e-1-3": "No"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("edge labels = %v, want %v", labels, want)
	}

	dec, _ := g.Node("1")
	if dec.Role != classify.Decision || dec.Style.Background != "#FBBF24" {
		t.Errorf("decision node = %+v", dec)
	}
	for _, e := range g.Edges {
		if e.Target == "1" && !e.Animated {
			t.Errorf("edge %s into the decision should be animated", e.ID)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(nil, Flowchart); !errors.Is(err, errors.ErrCodeNoData) {
		t.Errorf("empty lines error = %v, want NO_DATA", err)
	}
	if _, err := Build([]string{"a"}, "sequence"); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("bad mode error = %v, want INVALID_MODE", err)
	}
}

func TestWithGeometry(t *testing.T) {
	geo := layout.DefaultGeometry()
	geo.FlowX = 42
	g, err := Build([]string{"One", "Two"}, Flowchart, WithGeometry(geo))
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range g.Nodes {
		if n.Position.X != 42 {
			t.Errorf("node %s x = %v, want 42", n.ID, n.Position.X)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Flowchart, false},
		{"flowchart", Flowchart, false},
		{"mindmap", Mindmap, false},
		{"tree", TreeMode, false},
		{"gantt", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidMode) {
			t.Errorf("ParseMode(%q) code = %s", tt.in, errors.GetCode(err))
		}
	}
}

func TestParseLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
		code  errors.Code
	}{
		{"valid", `["Start", "  Step"]`, []string{"Start", "  Step"}, ""},
		{"missing", ``, nil, errors.ErrCodeNoData},
		{"whitespace", "  \n", nil, errors.ErrCodeNoData},
		{"null", `null`, nil, errors.ErrCodeNoData},
		{"empty array", `[]`, nil, errors.ErrCodeNoData},
		{"object", `{"lines": []}`, nil, errors.ErrCodeInvalidData},
		{"numbers", `[1, 2]`, nil, errors.ErrCodeInvalidData},
		{"truncated", `["a", `, nil, errors.ErrCodeInvalidData},
		{"blank line", `["a", "   "]`, nil, errors.ErrCodeInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLines([]byte(tt.input))
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("error = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLines: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLinesUserMessages(t *testing.T) {
	_, err := ParseLines(nil)
	if got := errors.UserMessage(err); got != errors.MsgNoData {
		t.Errorf("no data message = %q", got)
	}
	_, err = ParseLines([]byte(`{`))
	if got := errors.UserMessage(err); got != errors.MsgInvalidData {
		t.Errorf("invalid data message = %q", got)
	}
}

func TestFileRoundTrip(t *testing.T) {
	g, err := Build([]string{"Root", "A", "  A1", "B"}, TreeMode)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteFile(g, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got, g) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, g)
	}
}

func TestReadRejectsBrokenGraph(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"dangling edge", `{"nodes":[{"id":"0"}],"edges":[{"id":"e-0-1","source":"0","target":"1"}]}`},
		{"duplicate node", `{"nodes":[{"id":"0"},{"id":"0"}],"edges":[]}`},
		{"self loop", `{"nodes":[{"id":"0"}],"edges":[{"id":"e-0-0","source":"0","target":"0"}]}`},
		{"missing id", `{"nodes":[{"label":"x"}],"edges":[]}`},
	}
	for _, tt := range tests {
		if _, err := Read(strings.NewReader(tt.json)); !errors.Is(err, errors.ErrCodeInvalidData) {
			t.Errorf("%s: error = %v, want INVALID_DATA", tt.name, err)
		}
	}
}

func TestStats(t *testing.T) {
	g, err := Build(decisionFlow, Flowchart)
	if err != nil {
		t.Fatal(err)
	}
	s := g.Stats()
	if s.Nodes != 6 || s.Edges != 5 {
		t.Errorf("stats = %+v", s)
	}
	if s.Roles[classify.BranchYes] != 1 || s.Roles[classify.BranchNo] != 1 {
		t.Errorf("branch counts = %v", s.Roles)
	}
}

func TestIsHub(t *testing.T) {
	g, _ := Build([]string{"Hub", "Spoke"}, Mindmap)
	if !g.IsHub(g.Nodes[0]) || g.IsHub(g.Nodes[1]) {
		t.Error("only node 0 of a mind map is the hub")
	}
	f, _ := Build([]string{"Hub", "Spoke"}, Flowchart)
	if f.IsHub(f.Nodes[0]) {
		t.Error("flowcharts have no hub")
	}
}
