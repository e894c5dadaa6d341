package context

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractImplicitParagraph(t *testing.T) {
	md := "Some intro text.\n\nThe capital of France is {{Paris}}.\n\nUnrelated paragraph."
	contexts := Extract(md)

	assert.Len(t, contexts, 1)
	assert.Contains(t, contexts[0].Content, "{{Paris}}")
	assert.False(t, contexts[0].IsExplicit)
}

func TestExtractExplicitBlock(t *testing.T) {
	md := "> ?\n> This whole block is context for {{the cloze}}.\n> Second line too.\n\nOutside text."
	contexts := Extract(md)

	assert.Len(t, contexts, 1)
	assert.True(t, contexts[0].IsExplicit)
	assert.Equal(t, "This whole block is context for {{the cloze}}.\nSecond line too.", contexts[0].Content)
}

func TestExtractExplicitAndImplicitDoNotOverlap(t *testing.T) {
	md := "> ?\n> {{explicit}}\n\nA separate paragraph with {{implicit}}."
	contexts := Extract(md)

	assert.Len(t, contexts, 2)
	assert.True(t, contexts[0].IsExplicit)
	assert.False(t, contexts[1].IsExplicit)
}

func TestExtractOrderedByStartLine(t *testing.T) {
	md := "First {{a}}.\n\nSecond {{b}}.\n\nThird {{c}}."
	contexts := Extract(md)

	assert.Len(t, contexts, 3)
	for i := 1; i < len(contexts); i++ {
		assert.Less(t, contexts[i-1].StartLine, contexts[i].StartLine)
	}
}

func TestExtractParagraphWithoutClozeIsIgnored(t *testing.T) {
	md := "Just prose, no clozes here.\n\nAnother paragraph with {{a cloze}}."
	contexts := Extract(md)

	assert.Len(t, contexts, 1)
	assert.Contains(t, contexts[0].Content, "a cloze")
}
