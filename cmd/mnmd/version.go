package main

import "fmt"

// version is set via -ldflags "-X main.version=..." at release build
// time; "dev" otherwise.
var version = "dev"

func runVersion(args []string) int {
	fmt.Println(version)
	return 0
}
