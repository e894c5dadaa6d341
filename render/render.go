// Package render converts a prompt's masked body template into the
// cloze-annotated HTML the study application stores in a note's Text
// field.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/mnmd-tools/mnmdsync/cloze"
	"github.com/mnmd-tools/mnmdsync/prompt"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

var (
	displayMathPattern = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)
	inlineMathPattern  = regexp.MustCompile(`(?s)\$(.+?)\$`)
	clozePlaceholder   = regexp.MustCompile(`__CLOZE(?:_(\d+))?__`)
	onlyParagraph      = regexp.MustCompile(`(?s)^<p>(.*)</p>\n?$`)
)

// mathPlaceholder and clozeSlotPlaceholder are inert markers: they carry
// only ASCII letters and digits, which goldmark passes through
// unchanged, so whatever survives rendering is exactly what was
// protected. The trailing "END" keeps placeholder 1 from matching
// inside placeholder 10.
func mathPlaceholder(i int) string      { return fmt.Sprintf("MNMDMATH%dEND", i) }
func clozeSlotPlaceholder(i int) string { return fmt.Sprintf("MNMDCLOZE%dEND", i) }

// Body renders a Prompt's body template into the final HTML stored as
// the note's Text field.
func Body(p prompt.Prompt) (string, error) {
	text := p.BodyTemplate

	text, slots := protectClozeSlots(text)

	text, mathSpans := protectMath(text)

	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("render: markdown conversion: %w", err)
	}
	out := buf.String()

	if m := onlyParagraph.FindStringSubmatch(out); m != nil && !strings.Contains(m[1], "</p>") {
		out = m[1]
	}

	out = restoreMath(out, mathSpans)
	out = restoreClozeSlots(out, slots, p)

	return out, nil
}

// protectClozeSlots replaces every __CLOZE__ / __CLOZE_i__ with an inert
// placeholder before Markdown rendering, so the renderer never mangles
// or escapes the slot marker. It returns the slot index (nil for the
// single-member __CLOZE__ form) for each placeholder in order.
func protectClozeSlots(text string) (string, []*int) {
	var slots []*int
	text = clozePlaceholder.ReplaceAllStringFunc(text, func(m string) string {
		sub := clozePlaceholder.FindStringSubmatch(m)
		idx := len(slots)
		if sub[1] == "" {
			slots = append(slots, nil)
		} else {
			n, _ := strconv.Atoi(sub[1])
			slots = append(slots, &n)
		}
		return clozeSlotPlaceholder(idx)
	})
	return text, slots
}

func restoreClozeSlots(html string, slots []*int, p prompt.Prompt) string {
	for i, slot := range slots {
		c := p.Primary
		if slot != nil {
			if *slot < 0 || *slot >= len(p.GroupMembers) {
				continue
			}
			c = p.GroupMembers[*slot]
		}
		html = strings.Replace(html, clozeSlotPlaceholder(i), clozeFragment(c), 1)
	}
	return html
}

// clozeFragment builds the {{c1::answer}} / {{c1::answer::hint}}
// fragment for one cloze. Every member of a group uses c1: grouping is
// purely cosmetic, every blank within a prompt reveals together.
func clozeFragment(c cloze.Cloze) string {
	answer := convertMath(c.Answer)
	if c.Hint == nil {
		return "{{c1::" + answer + "}}"
	}
	return "{{c1::" + answer + "::" + convertMath(*c.Hint) + "}}"
}

// protectMath extracts every math region, converts it to its target
// delimiter form, and replaces it with an inert placeholder so the
// Markdown renderer never touches its contents. Display math ($$...$$)
// is matched before inline math ($...$) so a display region's inner
// dollar signs are never mistaken for inline math.
func protectMath(text string) (string, []string) {
	var spans []string

	text = displayMathPattern.ReplaceAllStringFunc(text, func(m string) string {
		inner := displayMathPattern.FindStringSubmatch(m)[1]
		spans = append(spans, `\[`+cloze.NormalizeWhitespace(inner)+`\]`)
		return mathPlaceholder(len(spans) - 1)
	})
	text = inlineMathPattern.ReplaceAllStringFunc(text, func(m string) string {
		inner := inlineMathPattern.FindStringSubmatch(m)[1]
		spans = append(spans, `\(`+cloze.NormalizeWhitespace(inner)+`\)`)
		return mathPlaceholder(len(spans) - 1)
	})

	return text, spans
}

func restoreMath(html string, spans []string) string {
	for i, span := range spans {
		html = strings.Replace(html, mathPlaceholder(i), span, 1)
	}
	return html
}

// convertMath applies the same math-region delimiter conversion as
// protectMath, for text (an answer or hint) that never goes through
// Markdown rendering at all.
func convertMath(text string) string {
	text = displayMathPattern.ReplaceAllStringFunc(text, func(m string) string {
		inner := displayMathPattern.FindStringSubmatch(m)[1]
		return `\[` + cloze.NormalizeWhitespace(inner) + `\]`
	})
	text = inlineMathPattern.ReplaceAllStringFunc(text, func(m string) string {
		inner := inlineMathPattern.FindStringSubmatch(m)[1]
		return `\(` + cloze.NormalizeWhitespace(inner) + `\)`
	})
	return text
}
