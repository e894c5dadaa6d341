// Package prompt implements the prompt generator: it groups the clozes
// found in a card context and emits one Prompt per group (or, for a
// sequence group, one Prompt per member) with a masked body template
// ready for the note formatter.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	mnmdcontext "github.com/mnmd-tools/mnmdsync/context"
	"github.com/mnmd-tools/mnmdsync/cloze"
)

// Prompt is everything the note formatter and sync driver need to
// materialize (or update) one Anki note.
type Prompt struct {
	Primary      cloze.Cloze
	BodyTemplate string
	FilePath     string
	LineNumber   int
	GroupMembers []cloze.Cloze
}

// located pins a cloze to a byte range within whatever base text it is
// about to be masked against. The identity key is the cloze's
// context-local ByteStart, which stays unique and stable whether base is
// the context's own content or a scope-expanded document slice.
type located struct {
	c          cloze.Cloze
	start, end int
}

func identityOf(c cloze.Cloze) int { return c.ByteStart }

// GeneratePrompts emits every Prompt for one card context. fullDocument
// is the complete source file text, used only when scope resolution
// needs to expand beyond the context itself; filePath is carried
// through onto every Prompt unexamined.
func GeneratePrompts(ctx mnmdcontext.CardContext, filePath string, fullDocument string) []Prompt {
	if len(ctx.Clozes) == 0 {
		return nil
	}

	groups := groupClozes(ctx.Clozes)
	isImplicit := !ctx.IsExplicit

	var prompts []Prompt
	for _, g := range groups {
		if g.IsSequence {
			prompts = append(prompts, generateSequencePrompts(g, ctx, filePath, fullDocument, isImplicit)...)
			continue
		}
		prompts = append(prompts, generateGroupPrompt(g, ctx, filePath, fullDocument, isImplicit))
	}
	return prompts
}

func generateGroupPrompt(g ClozeGroup, ctx mnmdcontext.CardContext, filePath, fullDocument string, isImplicit bool) Prompt {
	primary := g.Members[0]
	multi := len(g.Members) >= 2

	indexOf := make(map[int]int, len(g.Members))
	for i, m := range g.Members {
		indexOf[identityOf(m)] = i
	}

	replacement := func(c cloze.Cloze) string {
		if identityOf(c) == identityOf(primary) {
			return targetPlaceholder(indexOf, c, multi)
		}
		if belongsToGroup(g, c) {
			return targetPlaceholder(indexOf, c, multi)
		}
		return c.Answer
	}

	body := maskContext(ctx, primary, fullDocument, isImplicit, replacement)

	var members []cloze.Cloze
	if multi {
		members = g.Members
	}

	return Prompt{
		Primary:      primary,
		BodyTemplate: body,
		FilePath:     filePath,
		LineNumber:   primary.LineNumber,
		GroupMembers: members,
	}
}

func generateSequencePrompts(g ClozeGroup, ctx mnmdcontext.CardContext, filePath, fullDocument string, isImplicit bool) []Prompt {
	prompts := make([]Prompt, 0, len(g.Members))

	revealed := make(map[int]bool, len(g.Members))
	for _, step := range g.Members {
		replacement := func(c cloze.Cloze) string {
			if identityOf(c) == identityOf(step) {
				return "__CLOZE__"
			}
			if belongsToGroup(g, c) {
				if revealed[identityOf(c)] {
					return c.Answer
				}
				return "..."
			}
			return c.Answer
		}

		body := maskContext(ctx, step, fullDocument, isImplicit, replacement)

		prompts = append(prompts, Prompt{
			Primary:      step,
			BodyTemplate: body,
			FilePath:     filePath,
			LineNumber:   step.LineNumber,
		})

		revealed[identityOf(step)] = true
	}

	return prompts
}

func belongsToGroup(g ClozeGroup, c cloze.Cloze) bool {
	for _, m := range g.Members {
		if identityOf(m) == identityOf(c) {
			return true
		}
	}
	return false
}

func targetPlaceholder(indexOf map[int]int, c cloze.Cloze, multi bool) string {
	if !multi {
		return "__CLOZE__"
	}
	return fmt.Sprintf("__CLOZE_%d__", indexOf[identityOf(c)])
}

// maskContext computes the base text a prompt's clozes get masked
// against, then applies replacement in reverse byte-start order.
func maskContext(ctx mnmdcontext.CardContext, primary cloze.Cloze, fullDocument string, isImplicit bool, replacement func(cloze.Cloze) string) string {
	if isImplicit && !primary.Scope.IsDefault() {
		base := mnmdcontext.ResolveScope(fullDocument, primary.LineNumber, primary.Scope, false)
		locs := locateByFullText(base, ctx.Clozes)
		return applyMask(base, locs, replacement)
	}

	locs := make([]located, len(ctx.Clozes))
	for i, c := range ctx.Clozes {
		locs[i] = located{c: c, start: c.ByteStart, end: c.ByteEnd}
	}
	masked := applyMask(ctx.Content, locs, replacement)

	relativeLine := primary.LineNumber - ctx.StartLine
	return mnmdcontext.ResolveScope(masked, relativeLine, primary.Scope, false)
}

// locateByFullText finds each cloze's occurrence in base by searching
// for its full_text (which includes any note-id/scope suffix). The same
// full_text can recur in a document, so clozes, which arrive in source
// order, are searched for one after another, each from the end of the
// previous match; two clozes never map to the same or overlapping range.
func locateByFullText(base string, clozes []cloze.Cloze) []located {
	locs := make([]located, 0, len(clozes))
	from := 0
	for _, c := range clozes {
		idx := strings.Index(base[from:], c.FullText)
		if idx < 0 {
			continue
		}
		start := from + idx
		locs = append(locs, located{c: c, start: start, end: start + len(c.FullText)})
		from = start + len(c.FullText)
	}
	return locs
}

func applyMask(base string, locs []located, replacement func(cloze.Cloze) string) string {
	sorted := make([]located, len(locs))
	copy(sorted, locs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start > sorted[j].start })

	result := base
	for _, l := range sorted {
		result = result[:l.start] + replacement(l.c) + result[l.end:]
	}
	return result
}
