package cloze

import (
	"regexp"
	"strings"
)

var (
	multiNewline = regexp.MustCompile(`\n{2,}`)
	multiSpace   = regexp.MustCompile(` {2,}`)
)

// paragraphPlaceholder protects a run of 2+ newlines while single newlines
// are collapsed to spaces, then gets restored as a canonical paragraph
// break. It is delimited by NUL bytes, which a source author does not
// type, so it does not collide with real content.
const paragraphPlaceholder = "\x00PARA\x00"

// NormalizeWhitespace reflows text the way a cloze author's line-wrapped
// prose is meant to read: runs of two or more newlines are paragraph
// breaks and are preserved, a lone newline is reflow and becomes a space,
// and any resulting run of spaces collapses to one. It is the single
// implementation shared by the tokenizer's answer/hint/extra cleanup
// (this package) and the note formatter's math-region cleanup (render
// package, applied inside every $...$ / $$...$$ span before delimiter
// conversion).
func NormalizeWhitespace(text string) string {
	protected := multiNewline.ReplaceAllString(text, paragraphPlaceholder)
	protected = strings.ReplaceAll(protected, "\n", " ")
	protected = strings.ReplaceAll(protected, paragraphPlaceholder, "\n\n")
	return multiSpace.ReplaceAllString(protected, " ")
}
