package context

import (
	"strings"

	"github.com/mnmd-tools/mnmdsync/cloze"
)

// paragraphBoundary is a (firstLine, lastLine) pair describing one
// maximal run of non-empty lines.
type paragraphBoundary struct {
	first, last int
}

// paragraphBoundaries enumerates every paragraph in text: a paragraph is
// a maximal run of non-empty lines.
func paragraphBoundaries(lines []string) []paragraphBoundary {
	var paragraphs []paragraphBoundary
	start := -1

	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			paragraphs = append(paragraphs, paragraphBoundary{start, i - 1})
			start = -1
		}
	}
	if start != -1 {
		paragraphs = append(paragraphs, paragraphBoundary{start, len(lines) - 1})
	}
	return paragraphs
}

// ResolveScope expands a cloze's visible context by its scope.
// targetLine is the line (relative to text) the cloze appears on.
// inList is always false today; it's kept as a parameter so a future
// list-aware caller can request list-item scope expansion without the
// signature changing.
func ResolveScope(text string, targetLine int, scope cloze.Scope, inList bool) string {
	_ = inList // reserved for future list-aware callers.

	lines := strings.Split(text, "\n")
	paragraphs := paragraphBoundaries(lines)
	if len(paragraphs) == 0 {
		return text
	}

	targetIdx := -1
	for i, p := range paragraphs {
		if p.first <= targetLine && targetLine <= p.last {
			targetIdx = i
			break
		}
	}
	if targetIdx == -1 {
		return text
	}

	startIdx := max(0, targetIdx+scope.Before)
	endIdx := min(len(paragraphs)-1, targetIdx+scope.After)

	startLine := paragraphs[startIdx].first
	endLine := paragraphs[endIdx].last

	return strings.Join(lines[startLine:endLine+1], "\n")
}
