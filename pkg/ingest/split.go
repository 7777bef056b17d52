package ingest

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/stepgraph/pkg/diagram"
)

// Fallback limits.
const (
	MinLineLen   = 6
	MaxFlowLines = 15
	MaxMindLines = 8
)

// DefaultTopic is the single mind-map line used when text has no usable lines.
const DefaultTopic = "Document Content"

var fillerWords = []string{"the", "a", "an", "is", "are", "was", "were", "and", "or", "but"}

// SplitText extracts diagram lines from raw text.
//
// Lines shorter than [MinLineLen] runes and bare filler words are dropped.
// Flowcharts keep at most [MaxFlowLines] lines. Mind maps keep at most
// [MaxMindLines] and fall back to [DefaultTopic]. Tree mode keeps leading
// indentation, since it encodes nesting, and uses the flowchart cap.
func SplitText(text string, mode diagram.Mode) []string {
	limit := MaxFlowLines
	if mode == diagram.Mindmap {
		limit = MaxMindLines
	}

	var out []string
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if utf8.RuneCountInString(trimmed) < MinLineLen {
			continue
		}
		if slices.Contains(fillerWords, strings.ToLower(trimmed)) {
			continue
		}
		line := trimmed
		if mode == diagram.TreeMode {
			line = strings.TrimRightFunc(raw, unicode.IsSpace)
		}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}

	if len(out) == 0 && mode == diagram.Mindmap {
		return []string{DefaultTopic}
	}
	return out
}
