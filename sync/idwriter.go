package sync

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mnmd-tools/mnmdsync/cloze"
)

// Assignment is one cloze that was just given a freshly created note's
// identity code and therefore needs its source text updated.
type Assignment struct {
	Cloze cloze.Cloze
	Code  string
}

type replacement struct {
	start, end int
	newText    string
}

// RewriteSource applies every assignment to content and returns the
// rewritten text. Assignments whose cloze already carries the assigned
// code are skipped: that codeword is already written into the source.
// A cloze carrying a different (stale) code gets the new one in its
// place.
//
// A cloze's ByteStart/ByteEnd are relative to the card context it was
// tokenized from (sync.SyncFile tokenizes each context's Content, not
// the full source), so they can't be used against content directly —
// content is usually the whole file, front matter and all. Instead
// each cloze is relocated here by searching content for its FullText,
// starting from its LineNumber (already document-relative, set by the
// tokenizer from the context's document-relative start line), the
// same FullText-search strategy prompt/generator.go uses to mask a
// scope-expanded document slice.
func RewriteSource(content string, assignments []Assignment) string {
	lineOffsets := lineByteOffsets(content)

	replacements := make([]replacement, 0, len(assignments))
	for _, a := range assignments {
		if a.Cloze.NoteIDCode != nil && *a.Cloze.NoteIDCode == a.Code {
			continue
		}
		start, ok := locateInSource(content, lineOffsets, a.Cloze)
		if !ok {
			continue
		}
		replacements = append(replacements, replacement{
			start:   start,
			end:     start + len(a.Cloze.FullText),
			newText: newFullText(a.Cloze, a.Code),
		})
	}

	sort.Slice(replacements, func(i, j int) bool {
		return replacements[i].start > replacements[j].start
	})

	for _, r := range replacements {
		content = content[:r.start] + r.newText + content[r.end:]
	}
	return content
}

// lineByteOffsets returns the byte offset of the start of each line in
// text, split on "\n".
func lineByteOffsets(text string) []int {
	lines := strings.Split(text, "\n")
	offsets := make([]int, len(lines))
	pos := 0
	for i, line := range lines {
		offsets[i] = pos
		pos += len(line) + 1
	}
	return offsets
}

// locateInSource finds c's byte offset in source by searching for its
// FullText starting at the byte offset of c.LineNumber, which
// disambiguates clozes whose FullText recurs verbatim elsewhere in the
// document.
func locateInSource(source string, lineOffsets []int, c cloze.Cloze) (int, bool) {
	searchFrom := 0
	if c.LineNumber >= 0 && c.LineNumber < len(lineOffsets) {
		searchFrom = lineOffsets[c.LineNumber]
	}
	idx := strings.Index(source[searchFrom:], c.FullText)
	if idx < 0 {
		return 0, false
	}
	return searchFrom + idx, true
}

// newFullText builds a cloze's new full_text carrying its freshly
// assigned code.
func newFullText(c cloze.Cloze, code string) string {
	interior, scopeSuffix := cloze.SplitFullText(c.FullText)
	_, contentPart := cloze.SplitIDsAndContent(interior)

	return "{{" + newIDsPart(c, code) + ">" + contentPart + "}}" + scopeSuffix
}

func newIDsPart(c cloze.Cloze, code string) string {
	switch c.Variant() {
	case cloze.Sequence:
		return *c.GroupID + "." + strconv.Itoa(*c.SequenceOrder) + "," + code
	case cloze.Grouped:
		return *c.GroupID + "," + code
	default:
		return code
	}
}

// WriteSource rewrites path with content, atomically.
func WriteSource(path, content string) error {
	return atomicWriteFile(path, content)
}
