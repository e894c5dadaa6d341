package anki

import "github.com/mnmd-tools/mnmdsync/util"

// NoteTypeName is the note type the sync driver owns end to end: it is
// created once, then has its styling and single card template
// overwritten on every sync.
const NoteTypeName = "MNMD Cloze"

// Field names of NoteTypeName.
const (
	FieldText   = "Text"
	FieldExtra  = "Extra"
	FieldSource = "Source"
)

var noteTypeFields = []string{FieldText, FieldExtra, FieldSource}

const noteTypeCSS = `.card {
  font-family: arial;
  font-size: 20px;
  text-align: left;
  color: black;
  background-color: white;
}
.cloze {
  font-weight: bold;
  color: blue;
}
.source {
  margin-top: 1em;
  font-size: 12px;
  color: #888;
}`

const noteTypeFront = "{{cloze:Text}}"

const noteTypeBack = `{{cloze:Text}}
<hr id=answer>
{{Extra}}
<div class="source">{{Source}}</div>`

// EnsureNoteType makes sure the remote has NoteTypeName with the
// required fields, creating it on first sync and otherwise overwriting
// its styling and whichever single card template the remote reports.
// The field list of an existing model is never altered: AnkiConnect
// has no such operation, and nothing here depends on this being the
// only caller that ever touches the model.
func EnsureNoteType(client Client) error {
	names, err := client.ModelNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		if name == NoteTypeName {
			return updateNoteType(client)
		}
	}

	return client.CreateModel(NoteTypeName, noteTypeFields, []CardTemplate{{
		Name:  "Cloze",
		Front: noteTypeFront,
		Back:  noteTypeBack,
	}}, noteTypeCSS)
}

func updateNoteType(client Client) error {
	if err := client.UpdateModelStyling(NoteTypeName, noteTypeCSS); err != nil {
		return err
	}

	templates, err := client.ModelTemplates(NoteTypeName)
	if err != nil {
		return err
	}

	// Overwrite the templates of whatever single template the remote
	// reports: keep its name, replace its content. Iterated in
	// canonical order so behavior is deterministic on the rare remote
	// that reports more than one.
	for templateName := range util.CanonicalMapIter(templates) {
		return client.UpdateModelTemplates(NoteTypeName, map[string]CardTemplate{
			templateName: {Name: templateName, Front: noteTypeFront, Back: noteTypeBack},
		})
	}
	return nil
}
