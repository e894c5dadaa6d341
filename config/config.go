// Package config loads the optional ~/.mnmdrc YAML configuration and
// builds editor source links.
package config

import (
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/mnmd-tools/mnmdsync/anki"
)

// Config holds the user-configurable defaults a sync run falls back to
// when the CLI doesn't override them.
type Config struct {
	EditorProtocol string   `yaml:"editor_protocol"`
	AnkiURL        string   `yaml:"anki_url"`
	DefaultDeck    string   `yaml:"default_deck"`
	DefaultTags    []string `yaml:"default_tags"`
}

// Built-in defaults, used whenever ~/.mnmdrc is absent, unreadable, or
// malformed: warn and fall back rather than aborting.
func defaults() Config {
	return Config{
		EditorProtocol: "file",
		AnkiURL:        "http://127.0.0.1:8765",
		DefaultDeck:    "Default",
		DefaultTags:    nil,
	}
}

// LoadDefault loads ~/.mnmdrc, falling back to built-in defaults: with a
// warning if the file can't be read or fails to parse, silently if it
// is absent.
func LoadDefault() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("config: could not determine home directory, using defaults", "err", err)
		return defaults()
	}
	return Load(filepath.Join(home, ".mnmdrc"))
}

// Load loads a config file at path. A valid file's fields override the
// built-in defaults, and fields it leaves unset keep their defaults; an
// absent or invalid file yields the defaults alone.
func Load(path string) Config {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			cfgErr := &anki.ConfigError{Reason: fmt.Sprintf("reading %s: %v", path, err)}
			slog.Warn("config: could not read config file, using defaults", "path", path, "err", cfgErr)
		}
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		cfgErr := &anki.ConfigError{Reason: fmt.Sprintf("parsing %s: %v", path, err)}
		slog.Warn("config: could not parse config file, using defaults", "path", path, "err", cfgErr)
		return defaults()
	}
	return cfg
}

// editorTemplate describes one --editor protocol's URL form and the
// human-readable text shown for its link.
type editorTemplate struct {
	url   func(absPath string, line int) string
	label string
}

var editorTemplates = map[string]editorTemplate{
	"vscode": {
		func(p string, l int) string { return fmt.Sprintf("vscode://file%s:%d:1", p, l) },
		"Open in VS Code",
	},
	"vscodium": {
		func(p string, l int) string { return fmt.Sprintf("vscodium://file%s:%d:1", p, l) },
		"Open in VSCodium",
	},
	"nvim": {
		func(p string, l int) string { return fmt.Sprintf("nvim://open?file=%s&line=%d", p, l) },
		"Open in Neovim",
	},
	"obsidian": {
		func(p string, _ int) string { return fmt.Sprintf("obsidian://open?path=%s", p) },
		"Open in Obsidian",
	},
	"file": {
		func(p string, _ int) string { return fmt.Sprintf("file://%s", p) },
		"Open File",
	},
}

// BuildSourceLink renders an HTML anchor to absPath at line (1-based),
// using protocol's URL template. An unknown protocol falls back to
// "file". Both URL and visible text are HTML-escaped.
func BuildSourceLink(protocol, absPath string, line int) string {
	tmpl, ok := editorTemplates[protocol]
	if !ok {
		slog.Warn("config: unknown editor protocol, falling back to file", "protocol", protocol)
		tmpl = editorTemplates["file"]
	}

	url := tmpl.url(absPath, line)
	return `<a href="` + html.EscapeString(url) + `">` + html.EscapeString(tmpl.label) + `</a>`
}
