package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"

	mnmdsync "github.com/mnmd-tools/mnmdsync"
	"github.com/mnmd-tools/mnmdsync/util"
)

func runSync(args []string) int {
	var opts struct {
		Deck     string `short:"d" long:"deck" description:"Anki deck to file new notes into" value-name:"deck_name"`
		Tags     string `short:"t" long:"tags" description:"Comma-separated tags added to every note" value-name:"tags"`
		Editor   string `short:"e" long:"editor" description:"Editor protocol for source links: vscode, vscodium, nvim, obsidian, file" value-name:"protocol"`
		AnkiURL  string `long:"anki-url" description:"AnkiConnect URL" value-name:"url"`
		DryRun   bool   `long:"dry-run" description:"Report what would change without changing notes or the note type in Anki or writing note ids into files (existing notes are still looked up, and a missing file id is still added)"`
		Help     bool   `long:"help" description:"Show this help"`
	}

	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "sync [options] <files...>"
	files, err := parser.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if opts.Help {
		parser.WriteHelp(os.Stdout)
		return 0
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "mnmd sync: no files given")
		parser.WriteHelp(os.Stderr)
		return 1
	}

	var tags []string
	if opts.Tags != "" {
		for _, t := range util.TransformSlice(strings.Split(opts.Tags, ","), strings.TrimSpace) {
			if t != "" {
				tags = append(tags, t)
			}
		}
	}

	return mnmdsync.Run(files, &mnmdsync.Options{
		Deck:           opts.Deck,
		Tags:           tags,
		EditorProtocol: opts.Editor,
		AnkiURL:        opts.AnkiURL,
		DryRun:         opts.DryRun,
	})
}
