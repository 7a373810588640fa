package main

import (
	"fmt"
	"os"

	"github.com/temirov/gitship/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main pushes the current branch and opens a GitHub pull request.
func main() {
	if executionError := cli.ExecutePullRequest(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
