// Package context partitions an MNMD source file into card contexts:
// the backdrops clozes are read against. It is unrelated to, and does
// not import, the standard library's context package.
package context

import (
	"regexp"
	"strings"

	"github.com/mnmd-tools/mnmdsync/cloze"
)

// CardContext is a contiguous region of the source that forms one
// logical card backdrop: either an explicit "> ?" blockquote block or an
// implicit paragraph containing at least one cloze.
type CardContext struct {
	Content    string
	StartLine  int
	EndLine    int
	Clozes     []cloze.Cloze
	IsExplicit bool
}

var clozeSpanPattern = regexp.MustCompile(`(?s)\{\{.+?\}\}`)

// Extract partitions markdown into card contexts, emitted in ascending
// StartLine order. Explicit and implicit contexts never overlap: lines
// claimed by an explicit block are excluded from paragraph candidacy.
func Extract(markdown string) []CardContext {
	lines := strings.Split(markdown, "\n")

	explicit, usedLines := extractExplicitContexts(lines)
	implicit := extractParagraphContexts(lines, usedLines)

	contexts := append(explicit, implicit...)
	sortByStartLine(contexts)
	return contexts
}

func sortByStartLine(contexts []CardContext) {
	for i := 1; i < len(contexts); i++ {
		for j := i; j > 0 && contexts[j-1].StartLine > contexts[j].StartLine; j-- {
			contexts[j-1], contexts[j] = contexts[j], contexts[j-1]
		}
	}
}

// extractExplicitContexts finds every "> ?" blockquote block. A block
// opens on a line whose trimmed content is exactly "> ?" and continues
// through every subsequent line starting with ">" (no space required),
// a "> ?" line included, ending at the first line not starting with ">"
// or EOF.
func extractExplicitContexts(lines []string) ([]CardContext, map[int]bool) {
	var contexts []CardContext
	used := make(map[int]bool)

	inBlock := false
	blockStart := 0
	var blockLines []string

	flush := func(endLine int) {
		if len(blockLines) > 0 {
			contexts = append(contexts, buildExplicitContext(blockLines, blockStart, endLine))
		}
		inBlock = false
		blockLines = nil
	}

	for i, line := range lines {
		switch {
		case !inBlock && strings.TrimSpace(line) == "> ?":
			inBlock = true
			blockStart = i
			blockLines = []string{line}
			used[i] = true
		case inBlock && strings.HasPrefix(line, ">"):
			blockLines = append(blockLines, line)
			used[i] = true
		case inBlock:
			flush(i - 1)
		}
	}
	if inBlock {
		flush(len(lines) - 1)
	}

	return contexts, used
}

func buildExplicitContext(blockLines []string, start, end int) CardContext {
	cleanLines := make([]string, len(blockLines))
	for i, line := range blockLines {
		if strings.HasPrefix(line, ">") {
			cleanLines[i] = strings.TrimLeft(strings.TrimPrefix(line, ">"), " ")
		} else {
			cleanLines[i] = line
		}
	}
	content := strings.Join(cleanLines, "\n")

	linesRemoved := 0
	if strings.HasPrefix(content, "?") {
		if strings.HasPrefix(content, "?\n") {
			linesRemoved = 1
			content = content[2:]
		} else {
			content = strings.TrimLeft(content[1:], " ")
		}
	}

	return CardContext{
		Content:    content,
		StartLine:  start + linesRemoved,
		EndLine:    end,
		IsExplicit: true,
	}
}

// extractParagraphContexts finds every maximal run of non-blank lines,
// outside the lines explicit blocks already claimed, that contains at
// least one cloze span.
func extractParagraphContexts(lines []string, excludeLines map[int]bool) []CardContext {
	var contexts []CardContext

	var current []string
	currentStart := 0

	flush := func(endLine int) {
		if len(current) == 0 {
			return
		}
		content := strings.Join(current, "\n")
		if clozeSpanPattern.MatchString(content) {
			contexts = append(contexts, CardContext{
				Content:   content,
				StartLine: currentStart,
				EndLine:   endLine,
			})
		}
		current = nil
	}

	for i, line := range lines {
		if excludeLines[i] {
			flush(i - 1)
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush(i - 1)
			continue
		}
		if len(current) == 0 {
			currentStart = i
		}
		current = append(current, line)
	}
	flush(len(lines) - 1)

	return contexts
}
