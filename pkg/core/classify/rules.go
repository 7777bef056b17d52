package classify

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// HeadingMaxLen is the length (in characters, after trimming) below which a
// line is treated as a heading.
const HeadingMaxLen = 50

// capitalizedSentence matches a line that starts with an upper-case ASCII
// letter and contains no sentence-ending punctuation.
var capitalizedSentence = regexp.MustCompile(`^[A-Z][^.!?]*$`)

// Input is the view of a line that rules match against. It is computed once
// per line by [Classify].
type Input struct {
	Index   int      // Zero-based position in the sequence
	Trimmed string   // Original text with surrounding whitespace removed
	Lower   string   // Lower-cased Trimmed
	Words   []string // Lower-cased letter/digit runs of Trimmed
}

// NewInput prepares text at the given index for rule matching.
func NewInput(index int, text string) Input {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	return Input{
		Index:   index,
		Trimmed: trimmed,
		Lower:   lower,
		Words: strings.FieldsFunc(lower, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}),
	}
}

// HasWord reports whether w appears in the input as a whole word.
func (in Input) HasWord(w string) bool {
	return slices.Contains(in.Words, w)
}

// ContainsAny reports whether any of subs occurs in the lower-cased text.
func (in Input) ContainsAny(subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(in.Lower, s) {
			return true
		}
	}
	return false
}

// Rule pairs a predicate with the role it assigns.
type Rule struct {
	Name  string
	Role  Role
	Match func(Input) bool
}

// DefaultRules returns the classifier's rule chain in priority order.
// A fresh slice is returned on every call.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "start", Role: Start, Match: matchStart},
		{Name: "decision", Role: Decision, Match: matchDecision},
		{Name: "branch-yes", Role: BranchYes, Match: matchYes},
		{Name: "branch-no", Role: BranchNo, Match: matchNo},
		{Name: "end", Role: End, Match: matchEnd},
		{Name: "heading", Role: Heading, Match: matchHeading},
		{Name: "content", Role: Content, Match: matchAny},
	}
}

func matchStart(in Input) bool {
	return in.Index == 0 || in.ContainsAny("start", "begin")
}

func matchDecision(in Input) bool {
	return strings.Contains(in.Lower, "?") || in.HasWord("if") || in.HasWord("check")
}

func matchYes(in Input) bool { return in.HasWord("yes") }

func matchNo(in Input) bool { return in.HasWord("no") }

func matchEnd(in Input) bool {
	return in.ContainsAny("end", "finish", "complete")
}

func matchHeading(in Input) bool {
	return utf8.RuneCountInString(in.Trimmed) < HeadingMaxLen || capitalizedSentence.MatchString(in.Trimmed)
}

func matchAny(Input) bool { return true }
