package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnmd-tools/mnmdsync/cloze"
	"github.com/mnmd-tools/mnmdsync/prompt"
)

func TestBodySingleClozeFragment(t *testing.T) {
	p := prompt.Prompt{
		Primary:      cloze.Cloze{Answer: "Paris"},
		BodyTemplate: "The capital of France is __CLOZE__.",
	}
	out, err := Body(p)
	require.NoError(t, err)
	assert.Contains(t, out, "{{c1::Paris}}")
}

func TestBodyHintIsIncludedInFragment(t *testing.T) {
	hint := "city of light"
	p := prompt.Prompt{
		Primary:      cloze.Cloze{Answer: "Paris", Hint: &hint},
		BodyTemplate: "__CLOZE__",
	}
	out, err := Body(p)
	require.NoError(t, err)
	assert.Contains(t, out, "{{c1::Paris::city of light}}")
}

func TestBodyGroupSlotsMapToMembers(t *testing.T) {
	members := []cloze.Cloze{
		{Answer: "Paris"},
		{Answer: "France"},
	}
	p := prompt.Prompt{
		Primary:      members[0],
		BodyTemplate: "__CLOZE_0__ is the capital of __CLOZE_1__.",
		GroupMembers: members,
	}
	out, err := Body(p)
	require.NoError(t, err)
	assert.Contains(t, out, "{{c1::Paris}}")
	assert.Contains(t, out, "{{c1::France}}")
}

func TestBodyDisplayMathConvertedToBracketDelimiters(t *testing.T) {
	p := prompt.Prompt{
		Primary:      cloze.Cloze{Answer: "x"},
		BodyTemplate: "Consider $$a^2 + b^2 = c^2$$ then solve for __CLOZE__.",
	}
	out, err := Body(p)
	require.NoError(t, err)
	assert.Contains(t, out, `\[a^2 + b^2 = c^2\]`)
}

func TestBodyInlineMathConvertedToParenDelimiters(t *testing.T) {
	p := prompt.Prompt{
		Primary:      cloze.Cloze{Answer: "x"},
		BodyTemplate: "Solve $x + 1 = 2$ for __CLOZE__.",
	}
	out, err := Body(p)
	require.NoError(t, err)
	assert.Contains(t, out, `\(x + 1 = 2\)`)
}

func TestBodyMathInAnswerIsConverted(t *testing.T) {
	p := prompt.Prompt{
		Primary:      cloze.Cloze{Answer: `$\frac{a}{b}$`},
		BodyTemplate: "__CLOZE__",
	}
	out, err := Body(p)
	require.NoError(t, err)
	assert.Contains(t, out, `{{c1::\(\frac{a}{b}\)}}`)
}

func TestBodySingleParagraphWrapperIsStripped(t *testing.T) {
	p := prompt.Prompt{
		Primary:      cloze.Cloze{Answer: "x"},
		BodyTemplate: "Just one paragraph with __CLOZE__.",
	}
	out, err := Body(p)
	require.NoError(t, err)
	assert.NotContains(t, out, "<p>")
	assert.NotContains(t, out, "</p>")
}

func TestBodyRendersMarkdownEmphasis(t *testing.T) {
	p := prompt.Prompt{
		Primary:      cloze.Cloze{Answer: "x"},
		BodyTemplate: "This is **bold** and __CLOZE__.",
	}
	out, err := Body(p)
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>bold</strong>")
}
