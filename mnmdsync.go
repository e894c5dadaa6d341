// Package mnmdsync ties configuration, the remote client, and the sync
// driver together into the operations the CLI exposes (see
// sync/syncer.go for the per-file pipeline itself).
package mnmdsync

import (
	"fmt"
	"os"

	"github.com/mnmd-tools/mnmdsync/anki"
	"github.com/mnmd-tools/mnmdsync/cloze"
	"github.com/mnmd-tools/mnmdsync/config"
	mnmdcontext "github.com/mnmd-tools/mnmdsync/context"
	"github.com/mnmd-tools/mnmdsync/prompt"
	"github.com/mnmd-tools/mnmdsync/sync"
)

// Options configures one sync run, mirroring the `sync` command's flags.
type Options struct {
	Deck           string
	Tags           []string
	EditorProtocol string
	AnkiURL        string
	DryRun         bool
}

// Run syncs every file in files and returns the process exit code: 0 if
// every file synced without error, 1 if any file failed.
func Run(files []string, options *Options) int {
	cfg := config.LoadDefault()
	if options.AnkiURL != "" {
		cfg.AnkiURL = options.AnkiURL
	}

	client := anki.NewConnectClient(cfg.AnkiURL)
	syncer := sync.New(client, cfg, options.Deck, options.EditorProtocol, options.Tags, options.DryRun)

	exitCode := 0
	for _, file := range files {
		result := syncer.SyncFile(file)
		printFileResult(result)
		if result.Err != nil {
			exitCode = 1
		}
	}
	return exitCode
}

func printFileResult(r sync.FileResult) {
	if r.Err != nil {
		fmt.Printf("%s: FAILED: %v\n", r.Path, r.Err)
		return
	}
	fmt.Printf("%s: %d created, %d updated, %d skipped, %d deleted\n", r.Path, r.Created, r.Updated, r.Skipped, r.Deleted)
}

// FileReport is one file's validation outcome: no remote calls, just
// what the parser/prompt pipeline would do.
type FileReport struct {
	Path     string
	Contexts int
	Clozes   int
	Prompts  int
	Err      error
}

// Validate parses every file without touching the remote, reporting how
// many contexts, clozes, and prompts each would produce. This backs the
// `validate` command.
func Validate(files []string) []FileReport {
	reports := make([]FileReport, 0, len(files))
	for _, path := range files {
		reports = append(reports, validateFile(path))
	}
	return reports
}

func validateFile(path string) FileReport {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileReport{Path: path, Err: err}
	}
	content := string(data)

	report := FileReport{Path: path}
	for _, ctx := range mnmdcontext.Extract(content) {
		ctx.Clozes = cloze.Tokenize(ctx.Content, ctx.StartLine)
		if len(ctx.Clozes) == 0 {
			continue
		}
		report.Contexts++
		report.Clozes += len(ctx.Clozes)
		report.Prompts += len(prompt.GeneratePrompts(ctx, path, content))
	}
	return report
}
