package diagram_test

import (
	"fmt"

	"github.com/matzehuels/stepgraph/pkg/diagram"
	"github.com/matzehuels/stepgraph/pkg/errors"
)

func ExampleBuild() {
	lines := []string{"Onboarding", "Create account", "Verify email"}

	g, err := diagram.Build(lines, diagram.Flowchart)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("kind:", g.Kind)
	for _, n := range g.Nodes {
		fmt.Printf("%s %-8s (%.0f,%.0f) %s\n", n.ID, n.Role, n.Position.X, n.Position.Y, n.Label)
	}
	for _, e := range g.Edges {
		fmt.Println(e.ID, e.Source, "->", e.Target)
	}
	// Output:
	// kind: linear
	// 0 start    (500,50) Onboarding
	// 1 heading  (500,160) Create account
	// 2 heading  (500,270) Verify email
	// e-0-1 0 -> 1
	// e-1-2 1 -> 2
}

func ExampleParseLines() {
	_, err := diagram.ParseLines([]byte(`{"not": "a list"}`))
	fmt.Println(errors.GetCode(err), errors.UserMessage(err))

	_, err = diagram.ParseLines(nil)
	fmt.Println(errors.GetCode(err), errors.UserMessage(err))

	lines, _ := diagram.ParseLines([]byte(`["Root", "  Child"]`))
	fmt.Println(len(lines))
	// Output:
	// INVALID_DATA Invalid flowchart data.
	// NO_DATA No flowchart data found. Please upload a PDF first.
	// 2
}
