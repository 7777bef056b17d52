package classify_test

import (
	"fmt"

	"github.com/matzehuels/stepgraph/pkg/core/classify"
)

func ExampleClassify() {
	lines := []string{
		"Start",
		"Is it valid?",
		"Yes, proceed",
		"No, stop",
		"End",
	}
	for _, l := range classify.Classify(lines) {
		fmt.Printf("%d %-8s %s\n", l.Index, l.Role, l.Label)
	}
	// Output:
	// 0 start    Start
	// 1 decision Is it valid?
	// 2 yes      Yes, proceed
	// 3 no       No, stop
	// 4 end      End
}

func ExampleDepth() {
	fmt.Println(classify.Depth("Root"))
	fmt.Println(classify.Depth("  Child"))
	fmt.Println(classify.Depth("     Grandchild"))
	// Output:
	// 0
	// 1
	// 2
}
