package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	assert.Equal(t, defaults(), cfg)
}

func TestLoadMalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".mnmdrc")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid: yaml"), 0644))

	cfg := Load(path)
	assert.Equal(t, defaults(), cfg)
}

func TestLoadValidFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".mnmdrc")
	content := "editor_protocol: nvim\nanki_url: http://localhost:9999\ndefault_deck: MyDeck\ndefault_tags:\n  - mnmd\n  - flashcards\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := Load(path)
	assert.Equal(t, "nvim", cfg.EditorProtocol)
	assert.Equal(t, "http://localhost:9999", cfg.AnkiURL)
	assert.Equal(t, "MyDeck", cfg.DefaultDeck)
	assert.Equal(t, []string{"mnmd", "flashcards"}, cfg.DefaultTags)
}

func TestBuildSourceLinkVSCode(t *testing.T) {
	link := BuildSourceLink("vscode", "/home/user/notes.md", 5)
	assert.Equal(t, `<a href="vscode://file/home/user/notes.md:5:1">Open in VS Code</a>`, link)
}

func TestBuildSourceLinkObsidianIgnoresLine(t *testing.T) {
	link := BuildSourceLink("obsidian", "/vault/notes.md", 5)
	assert.Equal(t, `<a href="obsidian://open?path=/vault/notes.md">Open in Obsidian</a>`, link)
}

func TestBuildSourceLinkUnknownProtocolFallsBackToFile(t *testing.T) {
	link := BuildSourceLink("not-a-real-protocol", "/home/user/notes.md", 5)
	assert.Equal(t, `<a href="file:///home/user/notes.md">Open File</a>`, link)
}

func TestBuildSourceLinkEscapesPathCharacters(t *testing.T) {
	link := BuildSourceLink("file", `/home/user/<notes & "stuff">.md`, 1)
	assert.Contains(t, link, "&lt;notes")
	assert.Contains(t, link, "&amp;")
	assert.NotContains(t, link, `<notes`)
}
