package anki

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	modelNames       []string
	createdName      string
	createdFields    []string
	createdTemplates []CardTemplate
	createdCSS       string
	styling          string
	templates        map[string]CardTemplate
	updatedTemplates map[string]CardTemplate
}

func (f *fakeClient) ModelNames() ([]string, error) { return f.modelNames, nil }

func (f *fakeClient) CreateModel(name string, fields []string, templates []CardTemplate, css string) error {
	f.createdName = name
	f.createdFields = fields
	f.createdTemplates = templates
	f.createdCSS = css
	return nil
}

func (f *fakeClient) ModelTemplates(name string) (map[string]CardTemplate, error) {
	return f.templates, nil
}

func (f *fakeClient) UpdateModelStyling(name, css string) error {
	f.styling = css
	return nil
}

func (f *fakeClient) UpdateModelTemplates(name string, templates map[string]CardTemplate) error {
	f.updatedTemplates = templates
	return nil
}

func (f *fakeClient) AddNote(deck, model string, fields map[string]string, tags []string) (int64, error) {
	return 0, nil
}
func (f *fakeClient) UpdateNoteFields(noteID int64, fields map[string]string) error { return nil }
func (f *fakeClient) NotesExist(noteIDs []int64) (map[int64]bool, error)            { return nil, nil }
func (f *fakeClient) FindNotes(query string) ([]int64, error)                       { return nil, nil }
func (f *fakeClient) AddTags(noteIDs []int64, tags string) error                    { return nil }
func (f *fakeClient) DeleteNotes(noteIDs []int64) error                             { return nil }

func TestEnsureNoteTypeCreatesWhenAbsent(t *testing.T) {
	f := &fakeClient{modelNames: []string{"Basic"}}
	require.NoError(t, EnsureNoteType(f))

	assert.Equal(t, NoteTypeName, f.createdName)
	assert.Equal(t, noteTypeFields, f.createdFields)
	require.Len(t, f.createdTemplates, 1)
	assert.Equal(t, noteTypeFront, f.createdTemplates[0].Front)
	assert.Equal(t, noteTypeBack, f.createdTemplates[0].Back)
}

func TestEnsureNoteTypeUpdatesWhenPresent(t *testing.T) {
	f := &fakeClient{
		modelNames: []string{"Basic", NoteTypeName},
		templates: map[string]CardTemplate{
			"Cloze": {Name: "Cloze", Front: "old front", Back: "old back"},
		},
	}
	require.NoError(t, EnsureNoteType(f))

	assert.Equal(t, noteTypeCSS, f.styling)
	require.Contains(t, f.updatedTemplates, "Cloze")
	assert.Equal(t, noteTypeFront, f.updatedTemplates["Cloze"].Front)
	assert.Equal(t, noteTypeBack, f.updatedTemplates["Cloze"].Back)
	assert.Empty(t, f.createdName)
}

func TestEnsureNoteTypeUpdatePreservesRemoteTemplateName(t *testing.T) {
	f := &fakeClient{
		modelNames: []string{NoteTypeName},
		templates: map[string]CardTemplate{
			"Card 1": {Name: "Card 1", Front: "old", Back: "old"},
		},
	}
	require.NoError(t, EnsureNoteType(f))

	require.Contains(t, f.updatedTemplates, "Card 1")
	assert.NotContains(t, f.updatedTemplates, "Cloze")
}
