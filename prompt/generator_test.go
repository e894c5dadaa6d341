package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnmd-tools/mnmdsync/cloze"
	mnmdcontext "github.com/mnmd-tools/mnmdsync/context"
)

// buildPrompts runs a document through Extract+Tokenize+GeneratePrompts
// exactly as the sync driver does, returning the prompts of the first
// context that contains any clozes.
func buildPrompts(t *testing.T, doc string) []Prompt {
	t.Helper()
	contexts := mnmdcontext.Extract(doc)
	require.NotEmpty(t, contexts)

	for i := range contexts {
		contexts[i].Clozes = cloze.Tokenize(contexts[i].Content, contexts[i].StartLine)
		if len(contexts[i].Clozes) > 0 {
			return GeneratePrompts(contexts[i], "doc.md", doc)
		}
	}
	t.Fatal("no context contained clozes")
	return nil
}

func TestGenerateSingleBasicPrompt(t *testing.T) {
	doc := "The capital of France is {{Paris}}."
	prompts := buildPrompts(t, doc)

	require.Len(t, prompts, 1)
	assert.Equal(t, "Paris", prompts[0].Primary.Answer)
	assert.Contains(t, prompts[0].BodyTemplate, "__CLOZE__")
	assert.NotContains(t, prompts[0].BodyTemplate, "Paris")
	assert.Empty(t, prompts[0].GroupMembers)
}

func TestGenerateTwoBasicClozesProduceTwoPrompts(t *testing.T) {
	doc := "{{Paris}} is in {{France}}."
	prompts := buildPrompts(t, doc)

	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[0].BodyTemplate, "__CLOZE__")
	assert.Contains(t, prompts[0].BodyTemplate, "France")
	assert.Contains(t, prompts[1].BodyTemplate, "__CLOZE__")
	assert.Contains(t, prompts[1].BodyTemplate, "Paris")
}

func TestGenerateGroupedClozesProduceOnePromptWithSlots(t *testing.T) {
	doc := "{{1>Paris}} is the capital of {{1>France}}."
	prompts := buildPrompts(t, doc)

	require.Len(t, prompts, 1)
	p := prompts[0]
	assert.Len(t, p.GroupMembers, 2)
	assert.Contains(t, p.BodyTemplate, "__CLOZE_0__")
	assert.Contains(t, p.BodyTemplate, "__CLOZE_1__")
	assert.NotContains(t, p.BodyTemplate, "Paris")
	assert.NotContains(t, p.BodyTemplate, "France")
}

func TestGenerateSequenceProducesOnePromptPerStepWithProgressiveReveal(t *testing.T) {
	doc := "Steps: {{1.1>first}}, then {{1.2>second}}, then {{1.3>third}}."
	prompts := buildPrompts(t, doc)

	require.Len(t, prompts, 3)

	// Step 1: nothing else revealed yet.
	assert.Contains(t, prompts[0].BodyTemplate, "__CLOZE__")
	assert.Contains(t, prompts[0].BodyTemplate, "...")
	assert.NotContains(t, prompts[0].BodyTemplate, "second")
	assert.NotContains(t, prompts[0].BodyTemplate, "third")

	// Step 2: first is revealed, third is still masked.
	assert.Contains(t, prompts[1].BodyTemplate, "first")
	assert.Contains(t, prompts[1].BodyTemplate, "__CLOZE__")
	assert.Contains(t, prompts[1].BodyTemplate, "...")

	// Step 3: first and second both revealed.
	assert.Contains(t, prompts[2].BodyTemplate, "first")
	assert.Contains(t, prompts[2].BodyTemplate, "second")
	assert.Contains(t, prompts[2].BodyTemplate, "__CLOZE__")
}

func TestGenerateSequenceOrdersByDeclaredOrderNotSourceOrder(t *testing.T) {
	// second (.2) appears in source before first (.1).
	doc := "{{1.2>second}} comes after {{1.1>first}}."
	prompts := buildPrompts(t, doc)

	require.Len(t, prompts, 2)
	assert.Equal(t, "second", prompts[0].Primary.Answer)
	assert.Equal(t, "first", prompts[1].Primary.Answer)
}

func TestGenerateNoClozesReturnsNil(t *testing.T) {
	ctx := mnmdcontext.CardContext{Content: "no clozes here"}
	assert.Nil(t, GeneratePrompts(ctx, "doc.md", "no clozes here"))
}

func TestGenerateDistinctGroupsAreMaskedIndependently(t *testing.T) {
	doc := "{{1>Paris}} and {{1>France}}, also {{2>Berlin}} and {{2>Germany}}."
	prompts := buildPrompts(t, doc)

	require.Len(t, prompts, 2)
	// Group 1's prompt should show group 2's answers unmasked, and vice versa.
	assert.Contains(t, prompts[0].BodyTemplate, "Berlin")
	assert.Contains(t, prompts[0].BodyTemplate, "Germany")
	assert.Contains(t, prompts[1].BodyTemplate, "Paris")
	assert.Contains(t, prompts[1].BodyTemplate, "France")
}

func TestGeneratePromptCarriesFilePathAndLineNumber(t *testing.T) {
	doc := "line0\nline1\n{{answer}} on line 2"
	prompts := buildPrompts(t, doc)

	require.Len(t, prompts, 1)
	assert.Equal(t, "doc.md", prompts[0].FilePath)
	assert.Equal(t, 2, prompts[0].LineNumber)
}
