package classify

import (
	"regexp"
	"strings"
	"unicode"
)

// ClassifiedLine is one input line after classification.
type ClassifiedLine struct {
	Text  string `json:"text"`  // Original line
	Label string `json:"label"` // Display text
	Index int    `json:"index"`
	Depth int    `json:"depth"`
	Role  Role   `json:"role"`
}

// Classifier evaluates a rule chain against lines.
type Classifier struct {
	Rules []Rule
}

// New returns a classifier using [DefaultRules].
func New() *Classifier {
	return &Classifier{Rules: DefaultRules()}
}

// Classify classifies lines with the default rule chain.
func Classify(lines []string) []ClassifiedLine {
	return New().Classify(lines)
}

// Classify returns one ClassifiedLine per input line, in order.
func (c *Classifier) Classify(lines []string) []ClassifiedLine {
	out := make([]ClassifiedLine, len(lines))
	for i, text := range lines {
		out[i] = ClassifiedLine{
			Text:  text,
			Label: Label(text),
			Index: i,
			Depth: Depth(text),
			Role:  c.Role(NewInput(i, text)),
		}
	}
	return out
}

// Role returns the role of the first matching rule, or [Content] when no
// rule matches.
func (c *Classifier) Role(in Input) Role {
	for _, r := range c.Rules {
		if r.Match(in) {
			return r.Role
		}
	}
	return Content
}

// Depth returns the nesting depth implied by the leading whitespace of text.
func Depth(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n / 2
}

var ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)

// Label strips leading whitespace and a list ordinal from text.
func Label(text string) string {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	s = ordinalPrefix.ReplaceAllString(s, "")
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// HasDecisions reports whether any line carries decision vocabulary.
func HasDecisions(lines []ClassifiedLine) bool {
	for _, l := range lines {
		if l.Role.IsDecisionLike() {
			return true
		}
	}
	return false
}
