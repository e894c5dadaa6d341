package cloze

import "strings"

// SplitFullText recovers a cloze's interior and optional scope suffix
// from its full_text, for the ID writer: full_text is exactly
// "{{" + interior + "}}" + optional_scope_suffix, and this re-derives
// the closing "}}" with the same brace-depth rule the tokenizer used
// to find it in the first place.
func SplitFullText(fullText string) (interior, scopeSuffix string) {
	depth := 0
	for i := 0; i < len(fullText); i++ {
		switch fullText[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 1 && i+1 < len(fullText) && fullText[i+1] == '}' {
				return fullText[2:i], fullText[i+2:]
			}
		}
	}
	return fullText[2:], ""
}

// SplitIDsAndContent splits a cloze's interior at the first '>':
// everything before is the ids_part, everything after (or the whole
// interior, if there's no '>') is the content_part.
func SplitIDsAndContent(interior string) (idsPart, contentPart string) {
	if idx := strings.Index(interior, ">"); idx >= 0 {
		return interior[:idx], interior[idx+1:]
	}
	return "", interior
}
