package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"

	mnmdsync "github.com/mnmd-tools/mnmdsync"
)

func runValidate(args []string) int {
	var opts struct {
		Verbose bool `short:"v" long:"verbose" description:"Also pretty-print each file's report (its counts; individual contexts and clozes are not listed)"`
		Help    bool `long:"help" description:"Show this help"`
	}

	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "validate [options] <files...>"
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
		fmt.Fprintln(os.Stderr, "mnmd validate: no files given")
		parser.WriteHelp(os.Stderr)
		return 1
	}

	exitCode := 0
	for _, report := range mnmdsync.Validate(files) {
		if report.Err != nil {
			fmt.Printf("%s: FAILED: %v\n", report.Path, report.Err)
			exitCode = 1
			continue
		}
		fmt.Printf("%s: %d contexts, %d clozes, %d prompts\n", report.Path, report.Contexts, report.Clozes, report.Prompts)
		if opts.Verbose {
			pp.Println(report)
		}
	}
	return exitCode
}
