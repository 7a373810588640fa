package commit_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitship/internal/commit"
)

func executeCommitCommand(testInstance *testing.T, builder *commit.CommandBuilder, arguments []string) (string, string, error) {
	testInstance.Helper()

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(errorBuffer)
	command.SetArgs(arguments)
	command.SilenceUsage = true
	command.SilenceErrors = true

	executionError := command.ExecuteContext(context.Background())
	return outputBuffer.String(), errorBuffer.String(), executionError
}

func TestCommandPrintsSummaryOnSuccess(testInstance *testing.T) {
	executor := &recordingGitExecutor{outputs: map[string]string{"rev-parse": testRevisionConstant}}
	builder := &commit.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		Executor:       executor,
	}

	output, _, executionError := executeCommitCommand(testInstance, builder, []string{"--files", "src/a.ts src/b.ts", "--message", testValidMessageConstant})
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, []string{"add", "commit", "rev-parse"}, executor.subcommands())
	require.Contains(testInstance, output, "📝 Starting git commit")
	require.Contains(testInstance, output, "   Files: src/a.ts, src/b.ts\n")
	require.Contains(testInstance, output, "✨ Commit complete! (revision: "+testRevisionConstant+")")
	require.Contains(testInstance, output, "   Message: "+testValidMessageConstant+"\n")
	require.Contains(testInstance, output, "🎉 All steps completed successfully!")
}

func TestCommandValidationFailureRunsNoGitCommand(testInstance *testing.T) {
	executor := &recordingGitExecutor{}
	builder := &commit.CommandBuilder{Executor: executor}

	output, errorOutput, executionError := executeCommitCommand(testInstance, builder, []string{"--files", "a.go", "--message", "feat: add login"})

	require.Error(testInstance, executionError)
	require.IsType(testInstance, commit.ValidationFailedError{}, executionError)
	require.Empty(testInstance, executor.recordedDetails)
	require.Contains(testInstance, errorOutput, "⚠️  Warning: commit message description is not written in Korean")
	require.Contains(testInstance, output, "Use --skip-validation to commit anyway.")
}

func TestCommandSkipValidationSources(testInstance *testing.T) {
	testCases := []struct {
		name                string
		configuration       commit.CommandConfiguration
		arguments           []string
		expectedSubcommands []string
		expectError         bool
	}{
		{
			name:                "flag_skips_validation",
			arguments:           []string{"--files", "a.go", "--message", "wip", "--skip-validation"},
			expectedSubcommands: []string{"add", "commit", "rev-parse"},
		},
		{
			name:                "configuration_skips_validation",
			configuration:       commit.CommandConfiguration{SkipValidation: true},
			arguments:           []string{"--files", "a.go", "--message", "wip"},
			expectedSubcommands: []string{"add", "commit", "rev-parse"},
		},
		{
			name:                "flag_overrides_configuration",
			configuration:       commit.CommandConfiguration{SkipValidation: true},
			arguments:           []string{"--files", "a.go", "--message", "wip", "--skip-validation=false"},
			expectedSubcommands: []string{},
			expectError:         true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &recordingGitExecutor{outputs: map[string]string{"rev-parse": testRevisionConstant}}
			configuration := testCase.configuration
			builder := &commit.CommandBuilder{
				Executor:              executor,
				ConfigurationProvider: func() commit.CommandConfiguration { return configuration },
			}

			_, _, executionError := executeCommitCommand(testInstance, builder, testCase.arguments)
			if testCase.expectError {
				require.Error(testInstance, executionError)
			} else {
				require.NoError(testInstance, executionError)
			}
			require.Equal(testInstance, testCase.expectedSubcommands, executor.subcommands())
		})
	}
}

func TestCommandReportsFailedStep(testInstance *testing.T) {
	executor := &recordingGitExecutor{failures: map[string]error{"commit": newGitFailure("nothing to commit, working tree clean")}}
	builder := &commit.CommandBuilder{Executor: executor}

	output, _, executionError := executeCommitCommand(testInstance, builder, []string{"--files", "a.go", "--message", testValidMessageConstant})

	require.EqualError(testInstance, executionError, "commit step failed: nothing to commit, working tree clean")
	require.Contains(testInstance, output, "❌ Commit failed")
	require.NotContains(testInstance, output, "🎉")
}

func TestCommandArgumentValidation(testInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "missing_files", arguments: []string{"--message", testValidMessageConstant}},
		{name: "missing_message", arguments: []string{"--files", "a.go"}},
		{name: "positional_argument", arguments: []string{"--files", "a.go", "--message", testValidMessageConstant, "extra"}},
		{name: "blank_files", arguments: []string{"--files", "   ", "--message", testValidMessageConstant}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &recordingGitExecutor{}
			builder := &commit.CommandBuilder{Executor: executor}

			_, _, executionError := executeCommitCommand(testInstance, builder, testCase.arguments)
			require.Error(testInstance, executionError)
			require.Empty(testInstance, executor.recordedDetails)
		})
	}
}
