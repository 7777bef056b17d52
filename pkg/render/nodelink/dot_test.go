package nodelink

import (
	"bytes"
	"context"
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

func TestToDOT_Basic(t *testing.T) {
	g := build(t, []string{"Overview", "Goals"}, diagram.Flowchart)
	dot := ToDOT(g, Options{})

	for _, want := range []string{
		"digraph G",
		"layout=neato",
		`"0" [label="Overview"`,
		`"1" [label="Goals"`,
		`"0" -> "1"`,
		`pos="6.944,-0.694!"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_Scale(t *testing.T) {
	g := build(t, []string{"Overview"}, diagram.Flowchart)
	dot := ToDOT(g, Options{Scale: 2})
	if !strings.Contains(dot, `pos="13.889,-1.389!"`) {
		t.Errorf("scaled position missing:\n%s", dot)
	}
}

func TestToDOT_Shapes(t *testing.T) {
	g := build(t, []string{"Start", "Is it valid?", "Yes, proceed", "No, stop", "End"}, diagram.Flowchart)
	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, "shape=diamond") {
		t.Error("decision should be a diamond")
	}
	if !strings.Contains(dot, `style="rounded,filled,bold"`) {
		t.Error("start and end should be bold")
	}
	if !strings.Contains(dot, `label="Yes"`) || !strings.Contains(dot, `label="No"`) {
		t.Error("branch edges should carry yes/no labels")
	}
	if !strings.Contains(dot, "style=dashed") {
		t.Error("edge into the decision should be dashed")
	}
}

func TestToDOT_Hub(t *testing.T) {
	g := build(t, []string{"Topic", "A", "B"}, diagram.Mindmap)
	dot := ToDOT(g, Options{})
	if strings.Count(dot, "shape=ellipse") != 1 {
		t.Errorf("want exactly one ellipse hub:\n%s", dot)
	}
}

func TestToDOT_ShowRoles(t *testing.T) {
	g := build(t, []string{"Start here"}, diagram.Flowchart)
	dot := ToDOT(g, Options{ShowRoles: true})
	if !strings.Contains(dot, `label="Start here\n(start)"`) {
		t.Errorf("role missing from label:\n%s", dot)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
		{"two\nlines", `"two\nlines"`},
		{"Größe", `"Größe"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#fff", "#ffffff"},
		{"#1E40AF", "#1E40AF"},
		{"white", "white"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := hexColor(tt.in); got != tt.want {
			t.Errorf("hexColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?><svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if strings.Contains(out, "pt\"") {
		t.Errorf("point sizes should be gone: %s", out)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	g := build(t, []string{"Start", "Check input?", "Yes", "No", "End"}, diagram.Flowchart)
	svg, err := RenderSVG(context.Background(), ToDOT(g, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("output is not SVG: %.200s", svg)
	}
	if !bytes.Contains(svg, []byte("Check input?")) {
		t.Error("SVG missing node label")
	}
}

func TestRenderPNG(t *testing.T) {
	g := build(t, []string{"Topic", "A", "B", "C"}, diagram.Mindmap)
	png, err := RenderPNG(context.Background(), ToDOT(g, Options{}))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if len(png) < 8 || !bytes.Equal(png[:4], []byte{0x89, 'P', 'N', 'G'}) {
		t.Errorf("output is not PNG: % x", png[:min(len(png), 8)])
	}
}
