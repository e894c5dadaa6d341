package anki

// CardTemplate is one card template of a note type: its front and back
// HTML, keyed by template name.
type CardTemplate struct {
	Name  string
	Front string
	Back  string
}

// Client is everything the sync driver needs from the study
// application. ConnectClient is the only production implementation;
// tests use a fake.
type Client interface {
	// ModelNames lists every note type name the remote knows about.
	ModelNames() ([]string, error)

	// CreateModel creates a new note type with the given fields,
	// templates, and shared CSS.
	CreateModel(name string, fields []string, templates []CardTemplate, css string) error

	// ModelTemplates returns the remote's current card templates for a
	// note type, keyed by template name.
	ModelTemplates(name string) (map[string]CardTemplate, error)

	// UpdateModelStyling replaces a note type's CSS.
	UpdateModelStyling(name, css string) error

	// UpdateModelTemplates replaces a note type's card templates.
	UpdateModelTemplates(name string, templates map[string]CardTemplate) error

	// AddNote creates a note and returns its remote ID.
	AddNote(deck, model string, fields map[string]string, tags []string) (int64, error)

	// UpdateNoteFields overwrites a note's field values.
	UpdateNoteFields(noteID int64, fields map[string]string) error

	// NotesExist reports, for each requested ID, whether the remote
	// still has a note with that ID. notes-info's record contents are
	// never inspected; only presence matters.
	NotesExist(noteIDs []int64) (map[int64]bool, error)

	// FindNotes returns every note ID matching an Anki search query.
	FindNotes(query string) ([]int64, error)

	// AddTags adds a space-separated tag string to every given note.
	AddTags(noteIDs []int64, tags string) error

	// DeleteNotes deletes notes by ID.
	DeleteNotes(noteIDs []int64) error
}
