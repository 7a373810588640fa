package main

import (
	"fmt"
	"os"

	"github.com/temirov/gitship/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main validates and records a git commit.
func main() {
	if executionError := cli.ExecuteCommit(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
