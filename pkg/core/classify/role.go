package classify

// Role is the semantic category of a single line.
type Role string

// Roles recognised by the classifier.
const (
	Start     Role = "start"
	Decision  Role = "decision"
	BranchYes Role = "yes"
	BranchNo  Role = "no"
	End       Role = "end"
	Heading   Role = "heading"
	Content   Role = "content"
)

// Roles lists every role in rule priority order.
var Roles = []Role{Start, Decision, BranchYes, BranchNo, End, Heading, Content}

// IsBranch reports whether r is one of the two branch roles.
func (r Role) IsBranch() bool {
	return r == BranchYes || r == BranchNo
}

// IsDecisionLike reports whether r belongs to decision vocabulary, which is
// what switches a flowchart from a plain chain to a branching one.
func (r Role) IsDecisionLike() bool {
	return r == Decision || r.IsBranch()
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case Start, Decision, BranchYes, BranchNo, End, Heading, Content:
		return true
	}
	return false
}

// String returns the role name.
func (r Role) String() string { return string(r) }
