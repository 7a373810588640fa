package ui

import (
	"io"
	"os"
	"strings"

	"github.com/temirov/gitship/internal/execshell"
)

const (
	startedLineTemplateConstant   = "🔄 %s...\n"
	succeededLineTemplateConstant = "✅ %s\n"
	outputLineTemplateConstant    = "   %s\n"
	failedLineTemplateConstant    = "❌ %s\n"
	outputLineSeparatorConstant   = "\n"
)

// ProgressReporter prints one line per command lifecycle event.
// Starts and successes go to the output writer, failures to the error writer.
type ProgressReporter struct {
	output    Reporter
	errors    Reporter
	formatter execshell.CommandMessageFormatter
}

// NewProgressReporter constructs a ProgressReporter. Nil writers fall back to os.Stdout and os.Stderr.
func NewProgressReporter(outputWriter io.Writer, errorWriter io.Writer) *ProgressReporter {
	if errorWriter == nil {
		errorWriter = os.Stderr
	}
	return &ProgressReporter{
		output:    NewWriterReporter(outputWriter),
		errors:    NewWriterReporter(errorWriter),
		formatter: execshell.CommandMessageFormatter{},
	}
}

// CommandStarted implements execshell.CommandEventObserver.
func (reporter *ProgressReporter) CommandStarted(command execshell.ShellCommand) {
	if reporter == nil {
		return
	}
	reporter.output.Printf(startedLineTemplateConstant, reporter.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver.
func (reporter *ProgressReporter) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if reporter == nil {
		return
	}
	if result.ExitCode != 0 {
		reporter.errors.Printf(failedLineTemplateConstant, reporter.formatter.BuildFailureMessage(command, result))
		return
	}

	reporter.output.Printf(succeededLineTemplateConstant, reporter.formatter.BuildSuccessMessage(command))
	if !reporter.formatter.ShouldDisplayOutput(command) {
		return
	}
	for _, outputLine := range strings.Split(result.OutputMessage(), outputLineSeparatorConstant) {
		trimmedLine := strings.TrimRight(outputLine, " \r\t")
		if len(strings.TrimSpace(trimmedLine)) == 0 {
			continue
		}
		reporter.output.Printf(outputLineTemplateConstant, trimmedLine)
	}
}

// CommandExecutionFailed implements execshell.CommandEventObserver.
func (reporter *ProgressReporter) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if reporter == nil {
		return
	}
	reporter.errors.Printf(failedLineTemplateConstant, reporter.formatter.BuildExecutionFailureMessage(command, failure))
}
