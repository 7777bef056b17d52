package mermaid

import (
	"strings"
	"testing"

	"github.com/matzehuels/stepgraph/pkg/diagram"
)

func build(t *testing.T, lines []string, mode diagram.Mode) *diagram.Graph {
	t.Helper()
	g, err := diagram.Build(lines, mode)
	if err != nil {
		t.Fatalf("diagram.Build: %v", err)
	}
	return g
}

func TestRenderFlowchart(t *testing.T) {
	g := build(t, []string{"Start", "Is it valid?", "Yes, proceed", "No, stop", "End"}, diagram.Flowchart)
	out := Render(g)

	for _, want := range []string{
		"flowchart TD\n",
		`n0(["Start"])`,
		`n1{"Is it valid?"}`,
		`n2("Yes, proceed")`,
		`n4(["End"])`,
		"n0 ==> n1",
		"n1 -->|Yes| n2",
		"n1 -->|No| n3",
		"style n1 fill:#FBBF24,stroke:#F59E0B,color:#78350F",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMindmap(t *testing.T) {
	g := build(t, []string{"Topic", "Alpha", "Beta"}, diagram.Mindmap)
	out := Render(g)

	if !strings.HasPrefix(out, "flowchart LR\n") {
		t.Errorf("mind map should run left to right:\n%s", out)
	}
	if !strings.Contains(out, `n0(("Topic"))`) {
		t.Errorf("hub should be a circle:\n%s", out)
	}
	if strings.Count(out, "==>") != 2 {
		t.Errorf("want two animated spokes:\n%s", out)
	}
}

func TestRenderTreeGradientFill(t *testing.T) {
	g := build(t, []string{"Root", "  Child"}, diagram.TreeMode)
	out := Render(g)
	if !strings.Contains(out, "style n0 fill:#764ba2") {
		t.Errorf("gradient should fall back to its last stop:\n%s", out)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`say "hi"`, "say #quot;hi#quot;"},
		{"a|b", "a#124;b"},
		{"two\nlines", "two lines"},
	}
	for _, tt := range tests {
		if got := escape(tt.in); got != tt.want {
			t.Errorf("escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSafeID(t *testing.T) {
	if got := safeID("12"); got != "n12" {
		t.Errorf("safeID(12) = %q", got)
	}
	if got := safeID("a-b.c"); got != "na_b_c" {
		t.Errorf("safeID(a-b.c) = %q", got)
	}
}
