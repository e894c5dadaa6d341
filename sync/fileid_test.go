package sync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestEnsureFileIDReturnsExistingID(t *testing.T) {
	path := writeTempFile(t, "---\nmnmd_file_id: abc12345\ntitle: x\n---\n\nSome text.")

	id, err := EnsureFileID(path)
	require.NoError(t, err)
	assert.Equal(t, "abc12345", id)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "---\nmnmd_file_id: abc12345\ntitle: x\n---\n\nSome text.", string(after))
}

func TestEnsureFileIDInsertsIntoExistingFrontMatter(t *testing.T) {
	path := writeTempFile(t, "---\ntitle: x\n---\n\nSome text.")

	id, err := EnsureFileID(path)
	require.NoError(t, err)
	assert.Len(t, id, 8)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(after), "mnmd_file_id: "+id)
	assert.Contains(t, string(after), "title: x")
	assert.Contains(t, string(after), "Some text.")
}

func TestEnsureFileIDCreatesFrontMatterWhenAbsent(t *testing.T) {
	path := writeTempFile(t, "Some text with {{a cloze}}.")

	id, err := EnsureFileID(path)
	require.NoError(t, err)
	assert.Len(t, id, 8)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "---\nmnmd_file_id: "+id+"\n---\n\nSome text with {{a cloze}}.", string(after))
}

func TestEnsureFileIDIsIdempotent(t *testing.T) {
	path := writeTempFile(t, "Some text with {{a cloze}}.")

	first, err := EnsureFileID(path)
	require.NoError(t, err)

	second, err := EnsureFileID(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
