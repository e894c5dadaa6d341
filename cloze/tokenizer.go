package cloze

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

var scopeSuffixPattern = regexp.MustCompile(`^\[(-?\d+)(?:,\s*(-?\d+))?\]`)

// Tokenize scans text left-to-right for every {{...}} cloze. startLine
// is the 0-based line number of text's first line, so callers can
// tokenize a sub-slice (a single card context) and still get
// document-relative line numbers out.
//
// Every parse failure --- unbalanced braces, an empty answer, a malformed
// scope or id list --- is non-fatal: the offending construct is dropped
// (braces, empty answer) or the malformed sub-field silently defaults
// (scope, ids). Tokenize never returns an error.
func Tokenize(text string, startLine int) []Cloze {
	var clozes []Cloze

	i := 0
	for i < len(text)-1 {
		if text[i] != '{' || text[i+1] != '{' {
			i++
			continue
		}

		closeAt, ok := findClosingBraces(text, i)
		if !ok {
			i++
			continue
		}

		fullText := text[i : closeAt+2]
		contentWithIDs := text[i+2 : closeAt]
		scopeEnd := closeAt + 2

		var scopeStr string
		if scopeEnd < len(text) && text[scopeEnd] == '[' {
			if m := scopeSuffixPattern.FindStringSubmatch(text[scopeEnd:]); m != nil {
				scopeStr = m[1]
				if m[2] != "" {
					scopeStr += "," + m[2]
				}
				scopeEnd += len(m[0])
				fullText = text[i:scopeEnd]
			}
		}

		idsPart, contentPart := SplitIDsAndContent(contentWithIDs)
		answer, hint, extra := parseContent(contentPart)

		if strings.TrimSpace(answer) == "" {
			i = scopeEnd
			continue
		}

		groupID, sequenceOrder, noteIDCode := parseClozeIDs(idsPart)
		scope := parseScope(scopeStr)

		linesBefore := strings.Count(text[:i], "\n")
		lineNumber := startLine + linesBefore

		var hintPtr, extraPtr *string
		if hint != "" {
			hintPtr = &hint
		}
		if extra != "" {
			extraPtr = &extra
		}

		c, err := newCloze(fullText, i, scopeEnd, lineNumber, groupID, sequenceOrder, noteIDCode, answer, hintPtr, extraPtr, scope)
		if err != nil {
			slog.Debug("cloze: dropping malformed cloze", "full_text", fullText, "err", err)
			i = scopeEnd
			continue
		}
		clozes = append(clozes, c)
		i = scopeEnd
	}

	return clozes
}

// findClosingBraces returns the index of the first '}' of the closing "}}"
// for a cloze opening at start (start must index the first '{' of "{{").
// Every brace from start on is counted, so depth is 2 immediately after
// the opening "{{"; the cloze closes at the first "}" that brings depth
// back to 1 and is directly followed by a second "}" — this lets LaTeX
// patterns like \frac{a}{b} nest inside a cloze without closing it early.
func findClosingBraces(text string, start int) (int, bool) {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 1 && i+1 < len(text) && text[i+1] == '}' {
				return i, true
			}
		}
	}
	return 0, false
}

// parseContent splits a cloze's content into answer, hint, and extra and
// applies whitespace normalization.
func parseContent(content string) (answer, hint, extra string) {
	content = NormalizeWhitespace(content)

	if idx := strings.Index(content, "<"); idx >= 0 {
		extra = strings.TrimSpace(content[idx+1:])
		content = content[:idx]
	}

	if idx := strings.Index(content, "|"); idx >= 0 {
		answer = strings.TrimSpace(content[:idx])
		hint = strings.TrimSpace(content[idx+1:])
	} else {
		answer = strings.TrimSpace(content)
	}

	return answer, hint, extra
}

// parseClozeIDs parses the ids_part of a cloze into its group id, sequence
// order, and note id code. Order of comma-separated parts is
// irrelevant: "1,abc" and "abc,1" parse identically.
func parseClozeIDs(idsPart string) (groupID *string, sequenceOrder *int, noteIDCode *string) {
	if idsPart == "" {
		return nil, nil, nil
	}

	for _, rawPart := range strings.Split(idsPart, ",") {
		part := strings.TrimSpace(rawPart)
		if part == "" {
			continue
		}

		if dotIdx := strings.Index(part, "."); dotIdx >= 0 {
			group := strings.TrimSpace(part[:dotIdx])
			orderStr := strings.TrimSpace(part[dotIdx+1:])
			if order, err := strconv.Atoi(orderStr); err == nil && isAllDigits(group) && isAllDigits(orderStr) {
				groupID = &group
				sequenceOrder = &order
			}
			// A non-digits.digits dotted part is malformed and ignored,
			// same as any other unrecognized id.
			continue
		}

		if isAllDigits(part) {
			group := part
			groupID = &group
			continue
		}

		if isAllLetters(part) {
			code := part
			noteIDCode = &code
			continue
		}
		// Anything else is ignored.
	}

	return groupID, sequenceOrder, noteIDCode
}

// parseScope parses a scope suffix's inner text ("-1", "2", or "-1,2")
// into a Scope, defaulting on any malformed input.
func parseScope(scopeStr string) Scope {
	if scopeStr == "" {
		return DefaultScope()
	}

	parts := strings.Split(scopeStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		v, err := strconv.Atoi(parts[0])
		if err != nil {
			return DefaultScope()
		}
		if v < 0 {
			return Scope{Before: v, After: 0}
		}
		return Scope{Before: 0, After: v}
	case 2:
		before, err1 := strconv.Atoi(parts[0])
		after, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return DefaultScope()
		}
		return normalizeScope(before, after)
	default:
		return DefaultScope()
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAllLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}
