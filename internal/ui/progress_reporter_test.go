package ui_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitship/internal/execshell"
	"github.com/temirov/gitship/internal/ui"
)

const (
	testCommitMessageConstant          = "feat: 로그인 추가"
	testCommitOutputConstant           = "[main 1a2b3c4] feat: 로그인 추가\n 1 file changed, 2 insertions(+)\n"
	testCommitFailureOutputConstant    = "nothing to commit, working tree clean"
	testExecutionFailureReasonConstant = "exec: \"git\": executable file not found in $PATH"
	testAuthStatusOutputConstant       = "github.com\n  ✓ Logged in to github.com account octocat\n"
	testPushRejectedOutputConstant     = " ! [rejected]        feature -> feature (fetch first)\n"
)

func TestProgressReporterRendersLifecycleEvents(testInstance *testing.T) {
	commitCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"commit", "-m", testCommitMessageConstant}},
	}
	authStatusCommand := execshell.ShellCommand{
		Name:    execshell.CommandGitHub,
		Details: execshell.CommandDetails{Arguments: []string{"auth", "status"}},
	}
	pushCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"push", "--set-upstream", "origin", "feature"}, StreamOutput: true},
	}
	statusCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"status", "--porcelain"}},
	}

	testCases := []struct {
		name           string
		invoke         func(reporter *ui.ProgressReporter)
		expectedOutput string
		expectedErrors string
	}{
		{
			name: "command_started",
			invoke: func(reporter *ui.ProgressReporter) {
				reporter.CommandStarted(commitCommand)
			},
			expectedOutput: "🔄 Creating commit with message \"feat: 로그인 추가\"...\n",
		},
		{
			name: "command_completed_with_output",
			invoke: func(reporter *ui.ProgressReporter) {
				reporter.CommandCompleted(commitCommand, execshell.ExecutionResult{StandardOutput: testCommitOutputConstant})
			},
			expectedOutput: "✅ Created commit with message \"feat: 로그인 추가\"\n   [main 1a2b3c4] feat: 로그인 추가\n    1 file changed, 2 insertions(+)\n",
		},
		{
			name: "command_completed_with_error_stream_output",
			invoke: func(reporter *ui.ProgressReporter) {
				reporter.CommandCompleted(authStatusCommand, execshell.ExecutionResult{StandardError: testAuthStatusOutputConstant})
			},
			expectedOutput: "✅ GitHub CLI is authenticated\n   github.com\n     ✓ Logged in to github.com account octocat\n",
		},
		{
			name: "command_completed_with_hidden_output",
			invoke: func(reporter *ui.ProgressReporter) {
				reporter.CommandCompleted(statusCommand, execshell.ExecutionResult{StandardOutput: " M main.go\n"})
			},
			expectedOutput: "✅ Reviewed working tree status\n",
		},
		{
			name: "command_completed_with_failure",
			invoke: func(reporter *ui.ProgressReporter) {
				reporter.CommandCompleted(commitCommand, execshell.ExecutionResult{StandardOutput: testCommitFailureOutputConstant, ExitCode: 1})
			},
			expectedErrors: "❌ Failed to create commit with message \"feat: 로그인 추가\" (exit code 1: nothing to commit, working tree clean)\n",
		},
		{
			name: "streamed_command_failure_omits_output",
			invoke: func(reporter *ui.ProgressReporter) {
				reporter.CommandCompleted(pushCommand, execshell.ExecutionResult{StandardError: testPushRejectedOutputConstant, ExitCode: 1})
			},
			expectedErrors: "❌ Failed to push branch 'feature' to origin (exit code 1)\n",
		},
		{
			name: "command_execution_failed",
			invoke: func(reporter *ui.ProgressReporter) {
				reporter.CommandExecutionFailed(commitCommand, errors.New(testExecutionFailureReasonConstant))
			},
			expectedErrors: "❌ Unable to create commit with message \"feat: 로그인 추가\": " + testExecutionFailureReasonConstant + "\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			errorBuffer := &bytes.Buffer{}
			reporter := ui.NewProgressReporter(outputBuffer, errorBuffer)

			testCase.invoke(reporter)

			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())
			require.Equal(testInstance, testCase.expectedErrors, errorBuffer.String())
		})
	}
}

func TestWriterReporterFormatsLines(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	reporter := ui.NewWriterReporter(outputBuffer)

	reporter.Printf("⚠️  Warning: %s\n", "empty body")

	require.Equal(testInstance, "⚠️  Warning: empty body\n", outputBuffer.String())
}
