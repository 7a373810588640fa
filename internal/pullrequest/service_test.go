package pullrequest_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gitship/internal/execshell"
	"github.com/temirov/gitship/internal/pullrequest"
	"github.com/temirov/gitship/internal/ui"
)

const (
	testFeatureBranchConstant    = "feature/search"
	testBaseBranchConstant       = "main"
	testRemoteNameConstant       = "origin"
	testKoreanTitleConstant      = "영화 검색 기능 추가"
	testBodyConstant             = "## 변경 사항\n- 검색 추가"
	testPullRequestURLConstant   = "https://github.com/example/repo/pull/42"
	testBodyFilePathConstant     = "/tmp/pr_body.md"
	testWorkingDirectoryConstant = "/workspace/example"
	gitStepKeyPrefixConstant     = "git "
	githubStepKeyPrefixConstant  = "gh "
)

type recordingCommandExecutor struct {
	outputs         map[string]string
	failures        map[string]error
	recordedSteps   []string
	recordedDetails []execshell.CommandDetails
}

func newRecordingCommandExecutor(branch string) *recordingCommandExecutor {
	return &recordingCommandExecutor{
		outputs: map[string]string{
			"git branch": branch + "\n",
			"gh pr":      "Creating pull request for " + branch + " into main\n\n" + testPullRequestURLConstant + "\n",
		},
		failures: map[string]error{},
	}
}

func (executor *recordingCommandExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.record(gitStepKeyPrefixConstant, details)
}

func (executor *recordingCommandExecutor) ExecuteGitHubCLI(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return executor.record(githubStepKeyPrefixConstant, details)
}

func (executor *recordingCommandExecutor) record(prefix string, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	stepKey := prefix + details.Arguments[0]
	executor.recordedSteps = append(executor.recordedSteps, stepKey)
	executor.recordedDetails = append(executor.recordedDetails, details)
	if failure, failed := executor.failures[stepKey]; failed {
		return execshell.ExecutionResult{}, failure
	}
	return execshell.ExecutionResult{StandardOutput: executor.outputs[stepKey]}, nil
}

func (executor *recordingCommandExecutor) argumentsFor(stepKey string) []string {
	for index, recordedStep := range executor.recordedSteps {
		if recordedStep == stepKey {
			return executor.recordedDetails[index].Arguments
		}
	}
	return nil
}

type stubFileReader struct {
	contents map[string][]byte
	failure  error
}

func (reader stubFileReader) ReadFile(path string) ([]byte, error) {
	if reader.failure != nil {
		return nil, reader.failure
	}
	contents, exists := reader.contents[path]
	if !exists {
		return nil, fs.ErrNotExist
	}
	return contents, nil
}

func newFailure(name execshell.CommandName, standardError string) error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: name},
		Result:  execshell.ExecutionResult{StandardError: standardError, ExitCode: 1},
	}
}

func TestNewServiceValidation(testInstance *testing.T) {
	executor := newRecordingCommandExecutor(testFeatureBranchConstant)

	_, loggerError := pullrequest.NewService(nil, executor, stubFileReader{}, nil, nil)
	require.ErrorIs(testInstance, loggerError, pullrequest.ErrLoggerNotConfigured)

	_, executorError := pullrequest.NewService(zap.NewNop(), nil, stubFileReader{}, nil, nil)
	require.ErrorIs(testInstance, executorError, pullrequest.ErrExecutorNotConfigured)

	_, readerError := pullrequest.NewService(zap.NewNop(), executor, nil, nil, nil)
	require.ErrorIs(testInstance, readerError, pullrequest.ErrFileReaderNotConfigured)
}

func TestServiceCreateScenarios(testInstance *testing.T) {
	defaultOptions := func() pullrequest.Options {
		return pullrequest.Options{
			BaseBranch:       testBaseBranchConstant,
			Title:            testKoreanTitleConstant,
			Body:             pullrequest.InlineBodySource{Text: testBodyConstant},
			RemoteName:       testRemoteNameConstant,
			WorkingDirectory: testWorkingDirectoryConstant,
		}
	}

	testCases := []struct {
		name          string
		branch        string
		configure     func(executor *recordingCommandExecutor, options *pullrequest.Options)
		fileReader    stubFileReader
		expectedSteps []string
		verify        func(testInstance *testing.T, executor *recordingCommandExecutor, result pullrequest.Result)
		verifyError   func(testInstance *testing.T, createError error)
	}{
		{
			name:          "pushes_then_creates",
			branch:        testFeatureBranchConstant,
			expectedSteps: []string{"git branch", "git status", "gh auth", "git push", "gh pr"},
			verify: func(testInstance *testing.T, executor *recordingCommandExecutor, result pullrequest.Result) {
				require.Equal(testInstance, []string{"push", "--set-upstream", testRemoteNameConstant, testFeatureBranchConstant}, executor.argumentsFor("git push"))
				require.Equal(testInstance, []string{"pr", "create", "--base", testBaseBranchConstant, "--title", testKoreanTitleConstant, "--body", testBodyConstant}, executor.argumentsFor("gh pr"))
				require.Equal(testInstance, testPullRequestURLConstant, result.URL)
				require.Equal(testInstance, testFeatureBranchConstant, result.Branch)
				require.Equal(testInstance, testBaseBranchConstant, result.BaseBranch)
				require.Empty(testInstance, result.Warnings)
			},
		},
		{
			name:   "force_push_uses_lease",
			branch: testFeatureBranchConstant,
			configure: func(_ *recordingCommandExecutor, options *pullrequest.Options) {
				options.ForcePush = true
				options.Draft = true
			},
			expectedSteps: []string{"git branch", "git status", "gh auth", "git push", "gh pr"},
			verify: func(testInstance *testing.T, executor *recordingCommandExecutor, _ pullrequest.Result) {
				pushArguments := executor.argumentsFor("git push")
				require.Contains(testInstance, pushArguments, "--force-with-lease")
				require.NotContains(testInstance, pushArguments, "--force")
				require.Contains(testInstance, executor.argumentsFor("gh pr"), "--draft")
			},
		},
		{
			name:   "skip_push",
			branch: testFeatureBranchConstant,
			configure: func(_ *recordingCommandExecutor, options *pullrequest.Options) {
				options.SkipPush = true
			},
			expectedSteps: []string{"git branch", "git status", "gh auth", "gh pr"},
		},
		{
			name:          "same_branch_stops_after_branch_query",
			branch:        testBaseBranchConstant,
			expectedSteps: []string{"git branch"},
			verifyError: func(testInstance *testing.T, createError error) {
				var sameBranchError pullrequest.SameBranchError
				require.ErrorAs(testInstance, createError, &sameBranchError)
				require.Equal(testInstance, testBaseBranchConstant, sameBranchError.Branch)
			},
		},
		{
			name:   "branch_query_failure",
			branch: testFeatureBranchConstant,
			configure: func(executor *recordingCommandExecutor, _ *pullrequest.Options) {
				executor.failures["git branch"] = newFailure(execshell.CommandGit, "fatal: not a git repository")
			},
			expectedSteps: []string{"git branch"},
			verifyError: func(testInstance *testing.T, createError error) {
				require.ErrorIs(testInstance, createError, pullrequest.ErrCurrentBranchUnknown)
			},
		},
		{
			name:   "status_failure_is_ignored",
			branch: testFeatureBranchConstant,
			configure: func(executor *recordingCommandExecutor, _ *pullrequest.Options) {
				executor.failures["git status"] = newFailure(execshell.CommandGit, "fatal: index locked")
			},
			expectedSteps: []string{"git branch", "git status", "gh auth", "git push", "gh pr"},
		},
		{
			name:   "authentication_failure_stops_before_push",
			branch: testFeatureBranchConstant,
			configure: func(executor *recordingCommandExecutor, _ *pullrequest.Options) {
				executor.failures["gh auth"] = newFailure(execshell.CommandGitHub, "You are not logged into any GitHub hosts.")
			},
			expectedSteps: []string{"git branch", "git status", "gh auth"},
			verifyError: func(testInstance *testing.T, createError error) {
				require.ErrorIs(testInstance, createError, pullrequest.ErrNotAuthenticated)
			},
		},
		{
			name:   "push_failure_skips_creation",
			branch: testFeatureBranchConstant,
			configure: func(executor *recordingCommandExecutor, _ *pullrequest.Options) {
				executor.failures["git push"] = newFailure(execshell.CommandGit, "! [rejected] feature/search (fetch first)")
			},
			expectedSteps: []string{"git branch", "git status", "gh auth", "git push"},
			verifyError: func(testInstance *testing.T, createError error) {
				var stepError pullrequest.StepError
				require.ErrorAs(testInstance, createError, &stepError)
				require.Equal(testInstance, pullrequest.StepPush, stepError.Step)
				require.EqualError(testInstance, createError, "push step failed: ! [rejected] feature/search (fetch first)")
			},
		},
		{
			name:   "create_failure",
			branch: testFeatureBranchConstant,
			configure: func(executor *recordingCommandExecutor, _ *pullrequest.Options) {
				executor.failures["gh pr"] = newFailure(execshell.CommandGitHub, "a pull request for branch \"feature/search\" already exists")
			},
			expectedSteps: []string{"git branch", "git status", "gh auth", "git push", "gh pr"},
			verifyError: func(testInstance *testing.T, createError error) {
				var stepError pullrequest.StepError
				require.ErrorAs(testInstance, createError, &stepError)
				require.Equal(testInstance, pullrequest.StepCreate, stepError.Step)
			},
		},
		{
			name:   "body_file_is_read_and_trimmed",
			branch: testFeatureBranchConstant,
			configure: func(_ *recordingCommandExecutor, options *pullrequest.Options) {
				options.Body = pullrequest.FileBodySource{Path: testBodyFilePathConstant}
			},
			fileReader:    stubFileReader{contents: map[string][]byte{testBodyFilePathConstant: []byte("\n" + testBodyConstant + "\n\n")}},
			expectedSteps: []string{"git branch", "git status", "gh auth", "git push", "gh pr"},
			verify: func(testInstance *testing.T, executor *recordingCommandExecutor, _ pullrequest.Result) {
				createArguments := executor.argumentsFor("gh pr")
				require.Equal(testInstance, testBodyConstant, createArguments[len(createArguments)-1])
			},
		},
		{
			name:   "missing_body_file_stops_before_push",
			branch: testFeatureBranchConstant,
			configure: func(_ *recordingCommandExecutor, options *pullrequest.Options) {
				options.Body = pullrequest.FileBodySource{Path: testBodyFilePathConstant}
			},
			expectedSteps: []string{"git branch", "git status", "gh auth"},
			verifyError: func(testInstance *testing.T, createError error) {
				var notFoundError pullrequest.BodyFileNotFoundError
				require.ErrorAs(testInstance, createError, &notFoundError)
				require.Equal(testInstance, testBodyFilePathConstant, notFoundError.Path)
			},
		},
		{
			name:   "missing_body_source",
			branch: testFeatureBranchConstant,
			configure: func(_ *recordingCommandExecutor, options *pullrequest.Options) {
				options.Body = nil
			},
			expectedSteps: []string{"git branch", "git status", "gh auth"},
			verifyError: func(testInstance *testing.T, createError error) {
				require.ErrorIs(testInstance, createError, pullrequest.ErrBodySourceMissing)
			},
		},
		{
			name:   "blank_title_stops_before_push",
			branch: testFeatureBranchConstant,
			configure: func(_ *recordingCommandExecutor, options *pullrequest.Options) {
				options.Title = "   "
			},
			expectedSteps: []string{"git branch", "git status", "gh auth"},
			verifyError: func(testInstance *testing.T, createError error) {
				require.ErrorIs(testInstance, createError, pullrequest.ErrEmptyTitle)
			},
		},
		{
			name:   "warnings_do_not_block",
			branch: testFeatureBranchConstant,
			configure: func(_ *recordingCommandExecutor, options *pullrequest.Options) {
				options.Title = "Add search"
				options.Body = pullrequest.InlineBodySource{Text: ""}
			},
			expectedSteps: []string{"git branch", "git status", "gh auth", "git push", "gh pr"},
			verify: func(testInstance *testing.T, _ *recordingCommandExecutor, result pullrequest.Result) {
				require.Len(testInstance, result.Warnings, 2)
				require.Equal(testInstance, pullrequest.WarningTitleMissingHangul, result.Warnings[0].Kind)
				require.Equal(testInstance, pullrequest.WarningEmptyBody, result.Warnings[1].Kind)
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := newRecordingCommandExecutor(testCase.branch)
			options := defaultOptions()
			if testCase.configure != nil {
				testCase.configure(executor, &options)
			}

			service, serviceError := pullrequest.NewService(zap.NewNop(), executor, testCase.fileReader, nil, nil)
			require.NoError(testInstance, serviceError)

			result, createError := service.Create(context.Background(), options)
			require.Equal(testInstance, testCase.expectedSteps, executor.recordedSteps)

			if testCase.verifyError != nil {
				require.Error(testInstance, createError)
				testCase.verifyError(testInstance, createError)
				return
			}

			require.NoError(testInstance, createError)
			for stepIndex, details := range executor.recordedDetails {
				if executor.recordedSteps[stepIndex] == "gh auth" {
					continue
				}
				require.Equal(testInstance, testWorkingDirectoryConstant, details.WorkingDirectory)
			}
			if testCase.verify != nil {
				testCase.verify(testInstance, executor, result)
			}
		})
	}
}

func TestServiceReportsProgressAndWarnings(testInstance *testing.T) {
	executor := newRecordingCommandExecutor(testFeatureBranchConstant)
	executor.outputs["git status"] = " M README.md\n"

	outputBuffer := &bytes.Buffer{}
	warningBuffer := &bytes.Buffer{}
	service, serviceError := pullrequest.NewService(zap.NewNop(), executor, stubFileReader{}, ui.NewWriterReporter(outputBuffer), ui.NewWriterReporter(warningBuffer))
	require.NoError(testInstance, serviceError)

	_, createError := service.Create(context.Background(), pullrequest.Options{
		BaseBranch: testBaseBranchConstant,
		Title:      "Add search " + strings.Repeat("x", pullrequest.MaximumTitleLength),
		Body:       pullrequest.InlineBodySource{Text: testBodyConstant},
		SkipPush:   true,
		RemoteName: testRemoteNameConstant,
	})
	require.NoError(testInstance, createError)

	output := outputBuffer.String()
	require.Contains(testInstance, output, "   Current branch: "+testFeatureBranchConstant+"\n")
	require.Contains(testInstance, output, "   Base branch: "+testBaseBranchConstant+"\n")
	require.Contains(testInstance, output, "⚠️  Warning: there are uncommitted changes.")
	require.Contains(testInstance, output, "⏭️  Skipping push")

	warnings := warningBuffer.String()
	require.Contains(testInstance, warnings, "⚠️  Warning: pull request title is too long (211 characters); keep it within 200\n")
	require.Contains(testInstance, warnings, "⚠️  Warning: pull request title is not written in Korean\n")
}

func TestBodyFileErrorsAreClassified(testInstance *testing.T) {
	testCases := []struct {
		name        string
		fileReader  stubFileReader
		verifyError func(testInstance *testing.T, resolveError error)
	}{
		{
			name:       "not_found",
			fileReader: stubFileReader{},
			verifyError: func(testInstance *testing.T, resolveError error) {
				require.IsType(testInstance, pullrequest.BodyFileNotFoundError{}, resolveError)
				require.EqualError(testInstance, resolveError, "body file not found: "+testBodyFilePathConstant)
			},
		},
		{
			name:       "invalid_encoding",
			fileReader: stubFileReader{contents: map[string][]byte{testBodyFilePathConstant: {0xff, 0xfe, 0xfd}}},
			verifyError: func(testInstance *testing.T, resolveError error) {
				require.IsType(testInstance, pullrequest.BodyFileEncodingError{}, resolveError)
			},
		},
		{
			name:       "permission_denied",
			fileReader: stubFileReader{failure: fs.ErrPermission},
			verifyError: func(testInstance *testing.T, resolveError error) {
				var readError pullrequest.BodyFileReadError
				require.ErrorAs(testInstance, resolveError, &readError)
				require.True(testInstance, errors.Is(resolveError, fs.ErrPermission))
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, resolveError := pullrequest.FileBodySource{Path: testBodyFilePathConstant}.Resolve(testCase.fileReader)
			require.Error(testInstance, resolveError)
			testCase.verifyError(testInstance, resolveError)
		})
	}
}

func TestInlineBodySourceKeepsTextVerbatim(testInstance *testing.T) {
	body, resolveError := pullrequest.InlineBodySource{Text: "  본문  \n"}.Resolve(nil)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, "  본문  \n", body)
}

func TestServiceLogsIgnoredStatusFailure(testInstance *testing.T) {
	executor := newRecordingCommandExecutor(testFeatureBranchConstant)
	executor.failures["git status"] = newFailure(execshell.CommandGit, "fatal: index file corrupt")

	observedCore, observedLogs := observer.New(zapcore.DebugLevel)
	service, serviceError := pullrequest.NewService(zap.New(observedCore), executor, stubFileReader{}, nil, nil)
	require.NoError(testInstance, serviceError)

	result, createError := service.Create(context.Background(), pullrequest.Options{
		BaseBranch: testBaseBranchConstant,
		Title:      testKoreanTitleConstant,
		Body:       pullrequest.InlineBodySource{Text: testBodyConstant},
		RemoteName: testRemoteNameConstant,
	})
	require.NoError(testInstance, createError)
	require.Equal(testInstance, testPullRequestURLConstant, result.URL)

	warningEntries := observedLogs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(testInstance, warningEntries, 1)
	require.Equal(testInstance, "fatal: index file corrupt", warningEntries[0].ContextMap()["reason"])

	createdEntries := observedLogs.FilterMessage("pull request created").All()
	require.Len(testInstance, createdEntries, 1)
	require.Equal(testInstance, testPullRequestURLConstant, createdEntries[0].ContextMap()["url"])
}
