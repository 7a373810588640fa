// Package dependencies builds the default collaborators shared by the command builders.
package dependencies

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/gitship/internal/execshell"
	"github.com/temirov/gitship/internal/filesystem"
	"github.com/temirov/gitship/internal/ui"
)

// CommandExecutor runs both git and gh invocations.
type CommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileReader reads whole files.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// ResolveCommandExecutor returns the provided executor or constructs a shell-backed default
// whose progress lines and streamed output go to outputWriter and errorWriter.
func ResolveCommandExecutor(existing CommandExecutor, logger *zap.Logger, outputWriter io.Writer, errorWriter io.Writer) (CommandExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	commandRunner.StandardOutputSink = outputWriter
	commandRunner.StandardErrorSink = errorWriter

	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, ui.NewProgressReporter(outputWriter, errorWriter))
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveFileReader returns the provided reader or an OS-backed default.
func ResolveFileReader(existing FileReader) FileReader {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}
