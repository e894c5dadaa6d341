// Command mnmd parses MNMD cloze syntax out of Markdown source files and
// syncs it to a locally running Anki instance via AnkiConnect.
package main

import (
	"fmt"
	"os"

	"github.com/mnmd-tools/mnmdsync/util"
)

func main() {
	util.InitSlog()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	verb, args := os.Args[1], os.Args[2:]
	switch verb {
	case "sync":
		os.Exit(runSync(args))
	case "validate":
		os.Exit(runValidate(args))
	case "syntax":
		os.Exit(runSyntax(args))
	case "version":
		os.Exit(runVersion(args))
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "mnmd: unknown command %q\n\n", verb)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: mnmd <command> [options]

Commands:
  sync <files...>      Sync cloze notes in the given files to Anki
  validate <files...>  Parse the given files and report what would sync, without touching Anki
  syntax               Print the MNMD cloze syntax reference
  version              Print the mnmd version`)
}
