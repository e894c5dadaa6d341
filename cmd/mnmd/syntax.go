package main

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/term"
)

//go:embed syntax-notes.md
var syntaxNotes string

func runSyntax(args []string) int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(syntaxNotes)
		return 0
	}

	if pager := pagerCommand(); pager != nil {
		if r := fileReaderFor(syntaxNotes); r != nil {
			pager.Stdin = r
			pager.Stdout = os.Stdout
			pager.Stderr = os.Stderr
			if err := pager.Run(); err == nil {
				return 0
			}
		}
	}

	fmt.Print(syntaxNotes)
	return 0
}

func pagerCommand() *exec.Cmd {
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = "less"
	}
	path, err := exec.LookPath(pager)
	if err != nil {
		return nil
	}
	return exec.Command(path)
}

func fileReaderFor(text string) *os.File {
	r, w, err := os.Pipe()
	if err != nil {
		return nil
	}
	go func() {
		defer w.Close()
		w.WriteString(text)
	}()
	return r
}
