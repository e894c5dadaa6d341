package cloze

import (
	"fmt"
	"strings"
)

// Variant classifies a Cloze by which identifiers it carries.
type Variant int

const (
	// Basic is a cloze with no group_id: {{answer}}, {{answer|hint}}, {{answer<extra}}.
	Basic Variant = iota
	// Grouped is a cloze with a group_id but no sequence_order: {{id>answer}}.
	Grouped
	// Sequence is a cloze with both group_id and sequence_order: {{id.order>answer}}.
	Sequence
)

func (v Variant) String() string {
	switch v {
	case Grouped:
		return "grouped"
	case Sequence:
		return "sequence"
	default:
		return "basic"
	}
}

// Cloze is one occurrence of {{...}} in a source file, fully parsed.
// Values are only ever produced by the tokenizer's internal
// constructor, which enforces: ByteStart < ByteEnd, a non-empty
// trimmed Answer, a NoteIDCode (if present) composed only of
// codec-alphabet letters, and Scope.Before <= 0 <= Scope.After.
type Cloze struct {
	FullText      string
	ByteStart     int
	ByteEnd       int
	LineNumber    int
	GroupID       *string
	SequenceOrder *int
	NoteIDCode    *string
	Answer        string
	Hint          *string
	Extra         *string
	Scope         Scope
}

// Variant derives the cloze's variant: Sequence iff SequenceOrder is set,
// Grouped iff GroupID is set and SequenceOrder isn't, Basic otherwise.
func (c Cloze) Variant() Variant {
	switch {
	case c.SequenceOrder != nil:
		return Sequence
	case c.GroupID != nil:
		return Grouped
	default:
		return Basic
	}
}

// newCloze validates and constructs a Cloze. It is unexported: the only
// producer of Cloze values is the tokenizer, which has already applied
// every parse-failure degradation before reaching here, so a
// construction failure at this point is a tokenizer bug, not a
// user-facing parse error.
func newCloze(fullText string, byteStart, byteEnd, lineNumber int, groupID *string, sequenceOrder *int, noteIDCode *string, answer string, hint, extra *string, scope Scope) (Cloze, error) {
	if byteStart >= byteEnd {
		return Cloze{}, fmt.Errorf("cloze: byte_start %d must be < byte_end %d", byteStart, byteEnd)
	}
	trimmedAnswer := strings.TrimSpace(answer)
	if trimmedAnswer == "" {
		return Cloze{}, fmt.Errorf("cloze: answer must be non-empty after trimming")
	}
	if noteIDCode != nil && !isCodecString(*noteIDCode) {
		return Cloze{}, fmt.Errorf("cloze: note_id_code %q is not letters-only", *noteIDCode)
	}
	if scope.Before > 0 || scope.After < 0 {
		return Cloze{}, fmt.Errorf("cloze: scope (%d, %d) must satisfy before <= 0 <= after", scope.Before, scope.After)
	}
	return Cloze{
		FullText:      fullText,
		ByteStart:     byteStart,
		ByteEnd:       byteEnd,
		LineNumber:    lineNumber,
		GroupID:       groupID,
		SequenceOrder: sequenceOrder,
		NoteIDCode:    noteIDCode,
		Answer:        answer,
		Hint:          hint,
		Extra:         extra,
		Scope:         scope,
	}, nil
}
