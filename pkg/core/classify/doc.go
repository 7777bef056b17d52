// Package classify assigns a semantic role and a nesting depth to every line
// of an extracted document.
//
// # Overview
//
// Classification is the first stage of the stepgraph engine:
//
//	lines → [Classify] → []ClassifiedLine → topology → layout → style
//
// It is pure and total: every string input yields exactly one
// [ClassifiedLine], in input order, and nothing can fail.
//
// # Roles
//
// A line's [Role] is decided by an ordered list of [Rule] values. Rules are
// evaluated top to bottom and the first match wins:
//
//  1. [Start]: the first line, or text containing "start" or "begin"
//  2. [Decision]: text containing "?" or the words "if" or "check"
//  3. [BranchYes] / [BranchNo]: the word "yes", else the word "no"
//  4. [End]: text containing "end", "finish" or "complete"
//  5. [Heading]: short text (under 50 characters) or a capitalised
//     sentence without terminal punctuation
//  6. [Content]: everything else
//
// The order matters. A line such as "If yes, continue" is a [Decision], not
// a branch, and a line containing both "yes" and "no" is always [BranchYes].
// Layout and topology depend on this exact priority, so the list is exposed
// through [DefaultRules] and each rule can be tested in isolation.
//
// Keyword rules differ in how they match. "start", "begin", "end", "finish"
// and "complete" are substring matches ("Pending review" contains "end").
// "if", "check", "yes" and "no" must appear as whole words, so "notice" is
// not a No branch and "verify" is not a decision.
//
// # Depth
//
// Depth is computed independently of the role: every leading whitespace
// character counts as one column and depth is columns / 2, rounded down.
// A tab therefore counts the same as a single space.
//
// # Labels
//
// [ClassifiedLine.Label] is the display text: leading whitespace and a list
// ordinal such as "3. " are removed. [ClassifiedLine.Text] keeps the original
// line untouched.
package classify
