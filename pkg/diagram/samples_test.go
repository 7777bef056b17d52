package diagram

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/stepgraph/pkg/core/topology"
)

// The sample inputs under examples/ must keep building.
func TestBuildSampleFiles(t *testing.T) {
	tests := []struct {
		file  string
		mode  Mode
		kind  topology.Kind
		nodes int
	}{
		{"flowchart.json", Flowchart, topology.Branch, 9},
		{"mindmap.json", Mindmap, topology.Star, 6},
		{"tree.json", TreeMode, topology.Tree, 7},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("..", "..", "examples", tt.file))
			if err != nil {
				t.Fatal(err)
			}
			lines, err := ParseLines(data)
			if err != nil {
				t.Fatalf("ParseLines: %v", err)
			}
			g, err := Build(lines, tt.mode)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if g.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", g.Kind, tt.kind)
			}
			if len(g.Nodes) != tt.nodes {
				t.Errorf("nodes = %d, want %d", len(g.Nodes), tt.nodes)
			}
			if err := g.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}
