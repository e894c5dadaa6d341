// Package sync implements the sync driver: it ties the
// parser/prompt/render pipeline together with the remote client and the
// ID writer into one per-file, single-threaded pass.
package sync

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mnmd-tools/mnmdsync/anki"
	"github.com/mnmd-tools/mnmdsync/cloze"
	"github.com/mnmd-tools/mnmdsync/config"
	mnmdcontext "github.com/mnmd-tools/mnmdsync/context"
	"github.com/mnmd-tools/mnmdsync/prompt"
	"github.com/mnmd-tools/mnmdsync/render"
)

// Syncer holds everything one sync run needs to process files.
type Syncer struct {
	Client         anki.Client
	Deck           string
	Tags           []string
	EditorProtocol string
	DryRun         bool
}

// New builds a Syncer from a loaded config, with CLI overrides applied
// where non-zero.
func New(client anki.Client, cfg config.Config, deck, editorProtocol string, tags []string, dryRun bool) *Syncer {
	s := &Syncer{
		Client:         client,
		Deck:           cfg.DefaultDeck,
		EditorProtocol: cfg.EditorProtocol,
		Tags:           cfg.DefaultTags,
		DryRun:         dryRun,
	}
	if deck != "" {
		s.Deck = deck
	}
	if editorProtocol != "" {
		s.EditorProtocol = editorProtocol
	}
	if len(tags) > 0 {
		s.Tags = tags
	}
	return s
}

// FileResult summarizes one file's sync, for the CLI's per-file output.
type FileResult struct {
	Path    string
	Created int
	Updated int
	Skipped int
	Deleted int
	Err     error
}

// SyncFile runs the full sync driver pipeline on one file. A connection
// failure or source I/O failure aborts the file and is reported via
// FileResult.Err; per-note failures are counted as skipped and
// processing continues.
func (s *Syncer) SyncFile(path string) FileResult {
	result := FileResult{Path: path}

	fileID, err := EnsureFileID(path)
	if err != nil {
		result.Err = err
		return result
	}

	if !s.DryRun {
		if err := anki.EnsureNoteType(s.Client); err != nil {
			result.Err = err
			return result
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}
	source := string(content)

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	fileTag := "mnmd-file-" + fileID
	tags := append([]string{fileTag}, s.Tags...)

	seen := make(map[int64]bool)
	var assignments []Assignment

	for _, ctx := range mnmdcontext.Extract(source) {
		ctx.Clozes = cloze.Tokenize(ctx.Content, ctx.StartLine)
		if len(ctx.Clozes) == 0 {
			continue
		}

		for _, p := range prompt.GeneratePrompts(ctx, path, source) {
			if err := s.syncPrompt(p, absPath, tags, fileTag, seen, &assignments, &result); err != nil {
				result.Err = err
				return result
			}
		}
	}

	if !s.DryRun {
		s.sweepOrphans(fileTag, seen, &result)
	}

	if len(assignments) > 0 && !s.DryRun {
		rewritten := RewriteSource(source, assignments)
		if err := WriteSource(path, rewritten); err != nil {
			result.Err = err
		}
	}

	return result
}

// syncPrompt creates or updates the one note p describes. A returned
// error is a ConnectionError that aborts the whole file; every other
// remote failure is logged and counted as a skip so the rest of the
// file still syncs.
func (s *Syncer) syncPrompt(p prompt.Prompt, absPath string, tags []string, fileTag string, seen map[int64]bool, assignments *[]Assignment, result *FileResult) error {
	text, err := render.Body(p)
	if err != nil {
		slog.Warn("sync: rendering prompt failed, skipping", "file", p.FilePath, "line", p.LineNumber, "err", err)
		result.Skipped++
		return nil
	}

	extra := ""
	if p.Primary.Extra != nil {
		extra = *p.Primary.Extra
	}
	fields := map[string]string{
		anki.FieldText:   text,
		anki.FieldExtra:  extra,
		anki.FieldSource: config.BuildSourceLink(s.EditorProtocol, absPath, p.LineNumber+1),
	}

	if p.Primary.NoteIDCode != nil {
		noteID, err := cloze.DecodeID(*p.Primary.NoteIDCode)
		if err != nil {
			verr := &anki.ValidationError{Reason: fmt.Sprintf("note_id_code %q: %v", *p.Primary.NoteIDCode, err)}
			slog.Debug("sync: invalid note_id_code, treating as absent", "file", p.FilePath, "line", p.LineNumber, "err", verr)
		} else {
			handled, err := s.updateExisting(int64(noteID), fields, tags, seen, result)
			if err != nil {
				return err
			}
			if handled {
				return nil
			}
			// Missing on the remote: fall through to create.
		}
	}

	return s.createNote(p, fields, tags, seen, assignments, result)
}

// updateExisting updates a note believed to already exist. It reports
// whether the note was found and handled; false means the caller should
// fall through to creating a new note. A ConnectionError is returned to
// the caller so it can abort the file; every other failure is logged
// and counted as a skip.
func (s *Syncer) updateExisting(noteID int64, fields map[string]string, tags []string, seen map[int64]bool, result *FileResult) (bool, error) {
	exists, err := s.Client.NotesExist([]int64{noteID})
	if err != nil {
		var connErr *anki.ConnectionError
		if errors.As(err, &connErr) {
			return true, err
		}
		slog.Warn("sync: checking note existence failed, skipping", "note_id", noteID, "err", err)
		result.Skipped++
		return true, nil
	}
	if !exists[noteID] {
		return false, nil
	}

	if s.DryRun {
		seen[noteID] = true
		result.Updated++
		return true, nil
	}

	if err := s.Client.UpdateNoteFields(noteID, fields); err != nil {
		var connErr *anki.ConnectionError
		if errors.As(err, &connErr) {
			return true, err
		}
		slog.Warn("sync: updating note failed, skipping", "note_id", noteID, "err", err)
		result.Skipped++
		return true, nil
	}
	if err := s.Client.AddTags([]int64{noteID}, strings.Join(tags, " ")); err != nil {
		slog.Warn("sync: tagging note failed", "note_id", noteID, "err", err)
	}

	seen[noteID] = true
	result.Updated++
	return true, nil
}

// createNote creates a new note for p. A ConnectionError is returned to
// the caller so it can abort the file; every other failure is logged
// and counted as a skip.
func (s *Syncer) createNote(p prompt.Prompt, fields map[string]string, tags []string, seen map[int64]bool, assignments *[]Assignment, result *FileResult) error {
	if s.DryRun {
		result.Created++
		return nil
	}

	newID, err := s.Client.AddNote(s.Deck, anki.NoteTypeName, fields, tags)
	if err != nil {
		var connErr *anki.ConnectionError
		if errors.As(err, &connErr) {
			return err
		}
		slog.Warn("sync: creating note failed, skipping", "file", p.FilePath, "line", p.LineNumber, "err", err)
		result.Skipped++
		return nil
	}

	code, err := cloze.EncodeID(int(newID))
	if err != nil {
		slog.Warn("sync: encoding new note id failed, skipping rewrite", "note_id", newID, "err", err)
		result.Skipped++
		return nil
	}

	seen[newID] = true
	*assignments = append(*assignments, Assignment{Cloze: p.Primary, Code: code})
	for _, m := range p.GroupMembers {
		*assignments = append(*assignments, Assignment{Cloze: m, Code: code})
	}
	result.Created++
	return nil
}

// sweepOrphans deletes any note carrying fileTag that wasn't touched
// this sync. Best-effort: an enumeration failure is a warning, not a
// file-aborting error.
func (s *Syncer) sweepOrphans(fileTag string, seen map[int64]bool, result *FileResult) {
	remoteIDs, err := s.Client.FindNotes("tag:" + fileTag)
	if err != nil {
		slog.Warn("sync: orphan sweep enumeration failed, continuing", "tag", fileTag, "err", err)
		return
	}

	var orphans []int64
	for _, id := range remoteIDs {
		if !seen[id] {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) == 0 {
		return
	}

	if err := s.Client.DeleteNotes(orphans); err != nil {
		slog.Warn("sync: deleting orphan notes failed", "tag", fileTag, "err", err)
		return
	}
	result.Deleted = len(orphans)
}

// ErrPartialFailure names the case of a batch in which at least one
// file failed. Nothing in this module returns it: mnmdsync.Run reports
// that case as exit code 1 instead.
var ErrPartialFailure = errors.New("sync: one or more files failed")
