package classify

import (
	"testing"
)

func TestClassifyRoles(t *testing.T) {
	tests := []struct {
		name  string
		index int
		text  string
		want  Role
	}{
		{"first line is start", 0, "Quarterly report", Start},
		{"start keyword", 3, "Start the engine", Start},
		{"begin keyword", 2, "Begin onboarding", Start},
		{"question mark", 1, "Is it valid?", Decision},
		{"if word", 1, "If the form is signed", Decision},
		{"check word", 4, "Check the input", Decision},
		{"check needs whole word", 4, "Checklist items", Heading},
		{"decision beats branch", 1, "If yes, continue", Decision},
		{"yes branch", 2, "Yes, proceed", BranchYes},
		{"no branch", 3, "No, stop", BranchNo},
		{"yes wins over no", 2, "Yes or no", BranchYes},
		{"no needs whole word", 2, "Notice the details", Heading},
		{"end keyword", 5, "End", End},
		{"end is substring", 5, "Send the report", End},
		{"complete keyword", 5, "Processing is complete", End},
		{"start beats end", 5, "Start again at the end", Start},
		{"short line is heading", 1, "Requirements", Heading},
		{"long capitalised sentence is heading", 1, "This line is long enough to exceed the heading threshold easily", Heading},
		{"long sentence with period is content", 1, "This line is long enough to exceed the heading threshold easily.", Content},
		{"long lowercase is content", 1, "the system validates each uploaded record against the schema and stores it.", Content},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Role(NewInput(tt.index, tt.text)); got != tt.want {
				t.Errorf("Role(%d, %q) = %v, want %v", tt.index, tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyPreservesOrder(t *testing.T) {
	lines := []string{"Start", "Is it valid?", "Yes, proceed", "No, stop", "End"}
	want := []Role{Start, Decision, BranchYes, BranchNo, End}

	got := Classify(lines)
	if len(got) != len(lines) {
		t.Fatalf("len = %d, want %d", len(got), len(lines))
	}
	for i, cl := range got {
		if cl.Index != i {
			t.Errorf("line %d: Index = %d", i, cl.Index)
		}
		if cl.Text != lines[i] {
			t.Errorf("line %d: Text = %q, want %q", i, cl.Text, lines[i])
		}
		if cl.Role != want[i] {
			t.Errorf("line %d: Role = %v, want %v", i, cl.Role, want[i])
		}
	}
}

func TestClassifyEmpty(t *testing.T) {
	if got := Classify(nil); len(got) != 0 {
		t.Errorf("Classify(nil) = %v, want empty", got)
	}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"flat", 0},
		{" one space", 0},
		{"  two spaces", 1},
		{"   three spaces", 1},
		{"    four spaces", 2},
		{"\ttab", 0},
		{"\t\ttwo tabs", 1},
		{"      ", 3},
	}

	for _, tt := range tests {
		if got := Depth(tt.text); got != tt.want {
			t.Errorf("Depth(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestDepthIndependentOfRole(t *testing.T) {
	got := Classify([]string{"Root", "    Is it nested?"})
	if got[1].Role != Decision || got[1].Depth != 2 {
		t.Errorf("got role %v depth %d, want decision depth 2", got[1].Role, got[1].Depth)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Plain", "Plain"},
		{"   Indented", "Indented"},
		{"3. Review the form", "Review the form"},
		{"  12.   Spaced ordinal  ", "Spaced ordinal"},
		{"3.14 is pi", "14 is pi"},
		{"Version 2. Release", "Version 2. Release"},
	}

	for _, tt := range tests {
		if got := Label(tt.text); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestDefaultRulesOrder(t *testing.T) {
	rules := DefaultRules()
	want := []Role{Start, Decision, BranchYes, BranchNo, End, Heading, Content}
	if len(rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(rules), len(want))
	}
	for i, r := range rules {
		if r.Role != want[i] {
			t.Errorf("rule %d (%s) role = %v, want %v", i, r.Name, r.Role, want[i])
		}
	}
}

func TestCustomRules(t *testing.T) {
	c := &Classifier{Rules: []Rule{
		{Name: "todo", Role: Decision, Match: func(in Input) bool { return in.HasWord("todo") }},
	}}
	got := c.Classify([]string{"TODO: sign", "nothing"})
	if got[0].Role != Decision {
		t.Errorf("custom rule not applied: %v", got[0].Role)
	}
	if got[1].Role != Content {
		t.Errorf("unmatched line should fall back to content, got %v", got[1].Role)
	}
}

func TestHasDecisions(t *testing.T) {
	if HasDecisions(Classify([]string{"Intro", "Overview", "Details"})) {
		t.Error("plain headings should not count as decisions")
	}
	if !HasDecisions(Classify([]string{"Intro", "No, skip"})) {
		t.Error("a branch line should count as decision vocabulary")
	}
}

func TestRolePredicates(t *testing.T) {
	if !BranchYes.IsBranch() || !BranchNo.IsBranch() || Decision.IsBranch() {
		t.Error("IsBranch mismatch")
	}
	if Role("bogus").Valid() {
		t.Error("unknown role should be invalid")
	}
	for _, r := range Roles {
		if !r.Valid() {
			t.Errorf("%v should be valid", r)
		}
	}
}
