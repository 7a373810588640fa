package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
	singleFileLabelConstant                 = "1 file"
	multipleFilesLabelTemplateConstant      = "%d files"
)

const (
	gitAddSubcommandNameConstant      = "add"
	gitCommitSubcommandNameConstant   = "commit"
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitBranchSubcommandNameConstant   = "branch"
	gitStatusSubcommandNameConstant   = "status"
	gitPushSubcommandNameConstant     = "push"
	gitMessageFlagConstant            = "-m"
	gitForceWithLeaseFlagConstant     = "--force-with-lease"
)

const (
	gitAddStartTemplateConstant                      = "Staging %s"
	gitAddSuccessTemplateConstant                    = "Staged %s"
	gitAddFailureTemplateConstant                    = "Failed to stage %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant           = "Unable to stage %s: %s"
	gitCommitStartTemplateConstant                   = "Creating commit with message %q"
	gitCommitSuccessTemplateConstant                 = "Created commit with message %q"
	gitCommitFailureTemplateConstant                 = "Failed to create commit with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant        = "Unable to create commit with message %q: %s"
	gitRevisionStartTemplateConstant                 = "Resolving %s"
	gitRevisionSuccessTemplateConstant               = "Resolved %s"
	gitRevisionFailureTemplateConstant               = "Failed to resolve %s (exit code %d%s)"
	gitRevisionExecutionFailureTemplateConstant      = "Unable to resolve %s: %s"
	gitCurrentBranchStartTemplateConstant            = "Identifying current branch"
	gitCurrentBranchSuccessTemplateConstant          = "Identified current branch"
	gitCurrentBranchFailureTemplateConstant          = "Failed to identify current branch (exit code %d%s)"
	gitCurrentBranchExecutionFailureTemplateConstant = "Unable to identify current branch: %s"
	gitStatusStartTemplateConstant                   = "Reviewing working tree status"
	gitStatusSuccessTemplateConstant                 = "Reviewed working tree status"
	gitStatusFailureTemplateConstant                 = "Failed to review working tree status (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant        = "Unable to review working tree status: %s"
	gitPushStartTemplateConstant                     = "Pushing branch '%s' to %s"
	gitForcePushStartTemplateConstant                = "Force pushing branch '%s' to %s with lease"
	gitPushSuccessTemplateConstant                   = "Pushed branch '%s' to %s"
	gitPushFailureTemplateConstant                   = "Failed to push branch '%s' to %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant          = "Unable to push branch '%s' to %s: %s"
	gitShortRevisionLabelTemplateConstant            = "short revision of %s"
	gitRevisionLabelTemplateConstant                 = "revision %s"
	gitShortFlagConstant                             = "--short"
	gitShowCurrentFlagConstant                       = "--show-current"
	gitRevisionReferenceFallbackConstant             = "HEAD"
	gitSubcommandArgumentIndexConstant               = 0
)

const (
	githubAuthSubcommandNameConstant                        = "auth"
	githubAuthStatusSubcommandNameConstant                  = "status"
	githubPullRequestSubcommandNameConstant                 = "pr"
	githubPullRequestCreateSubcommandNameConstant           = "create"
	githubBaseFlagConstant                                  = "--base"
	githubDraftFlagConstant                                 = "--draft"
	githubAuthStatusStartTemplateConstant                   = "Checking GitHub CLI authentication"
	githubAuthStatusSuccessTemplateConstant                 = "GitHub CLI is authenticated"
	githubAuthStatusFailureTemplateConstant                 = "GitHub CLI authentication check failed (exit code %d%s)"
	githubAuthStatusExecutionFailureTemplateConstant        = "Unable to check GitHub CLI authentication: %s"
	githubPullRequestCreateStartTemplateConstant            = "Creating pull request into %s"
	githubDraftPullRequestCreateStartTemplateConstant       = "Creating draft pull request into %s"
	githubPullRequestCreateSuccessTemplateConstant          = "Created pull request into %s"
	githubPullRequestCreateFailureTemplateConstant          = "Failed to create pull request into %s (exit code %d%s)"
	githubPullRequestCreateExecutionFailureTemplateConstant = "Unable to create pull request into %s: %s"
	githubSubcommandPairMinimumArgumentCountConstant        = 2
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// ShouldDisplayOutput reports whether captured output of a successful command is worth echoing.
func (formatter CommandMessageFormatter) ShouldDisplayOutput(command ShellCommand) bool {
	if command.Details.StreamOutput {
		return false
	}
	if command.Name == CommandGit && formatter.argumentAtIndex(command.Details.Arguments, gitSubcommandArgumentIndexConstant) == gitStatusSubcommandNameConstant {
		return false
	}
	return true
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Details.StreamOutput {
		// streamed output already reached the terminal
		result = ExecutionResult{ExitCode: result.ExitCode}
	}
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[gitSubcommandArgumentIndexConstant])
	switch subcommand {
	case gitAddSubcommandNameConstant:
		return formatter.describeGitAddMessage(command, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		if containsArgument(command.Details.Arguments, gitShowCurrentFlagConstant) {
			return formatter.describeGitCurrentBranchMessage(result, failure, stage)
		}
		return formatter.buildGenericMessage(command, result, failure, stage)
	case gitStatusSubcommandNameConstant:
		return formatter.describeGitStatusMessage(result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitAddMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	filesLabel := formatter.describeFileCount(len(formatter.nonFlagArguments(command.Details.Arguments[1:])))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitAddStartTemplateConstant, filesLabel)
	case messageStageSuccess:
		return fmt.Sprintf(gitAddSuccessTemplateConstant, filesLabel)
	case messageStageFailure:
		return fmt.Sprintf(gitAddFailureTemplateConstant, filesLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitAddExecutionFailureTemplateConstant, filesLabel, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commitMessage := findFlagValue(command.Details.Arguments, gitMessageFlagConstant)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCommitStartTemplateConstant, commitMessage)
	case messageStageSuccess:
		return fmt.Sprintf(gitCommitSuccessTemplateConstant, commitMessage)
	case messageStageFailure:
		return fmt.Sprintf(gitCommitFailureTemplateConstant, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCommitExecutionFailureTemplateConstant, commitMessage, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	reference := formatter.ensureValue(formatter.argumentAtIndex(arguments, len(arguments)-1))
	if strings.HasPrefix(reference, "-") {
		reference = gitRevisionReferenceFallbackConstant
	}

	revisionLabel := fmt.Sprintf(gitRevisionLabelTemplateConstant, reference)
	if containsArgument(arguments, gitShortFlagConstant) {
		revisionLabel = fmt.Sprintf(gitShortRevisionLabelTemplateConstant, reference)
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRevisionStartTemplateConstant, revisionLabel)
	case messageStageSuccess:
		return fmt.Sprintf(gitRevisionSuccessTemplateConstant, revisionLabel)
	case messageStageFailure:
		return fmt.Sprintf(gitRevisionFailureTemplateConstant, revisionLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRevisionExecutionFailureTemplateConstant, revisionLabel, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCurrentBranchMessage(result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return gitCurrentBranchStartTemplateConstant
	case messageStageSuccess:
		return gitCurrentBranchSuccessTemplateConstant
	case messageStageFailure:
		return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result))
	default:
		return fmt.Sprintf(gitCurrentBranchExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitStatusMessage(result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return gitStatusStartTemplateConstant
	case messageStageSuccess:
		return gitStatusSuccessTemplateConstant
	case messageStageFailure:
		return fmt.Sprintf(gitStatusFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result))
	default:
		return fmt.Sprintf(gitStatusExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	positionalArguments := formatter.nonFlagArguments(arguments[1:])
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 0))
	branchName := formatter.ensureValue(formatter.argumentAtIndex(positionalArguments, 1))

	switch stage {
	case messageStageStart:
		if containsArgument(arguments, gitForceWithLeaseFlagConstant) {
			return fmt.Sprintf(gitForcePushStartTemplateConstant, branchName, remoteName)
		}
		return fmt.Sprintf(gitPushStartTemplateConstant, branchName, remoteName)
	case messageStageSuccess:
		return fmt.Sprintf(gitPushSuccessTemplateConstant, branchName, remoteName)
	case messageStageFailure:
		return fmt.Sprintf(gitPushFailureTemplateConstant, branchName, remoteName, result.ExitCode, formatter.formatStandardErrorSuffix(result))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitPushExecutionFailureTemplateConstant, branchName, remoteName, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < githubSubcommandPairMinimumArgumentCountConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	primary := strings.TrimSpace(arguments[0])
	secondary := strings.TrimSpace(arguments[1])
	switch {
	case primary == githubAuthSubcommandNameConstant && secondary == githubAuthStatusSubcommandNameConstant:
		return formatter.describeGitHubAuthStatusMessage(result, failure, stage)
	case primary == githubPullRequestSubcommandNameConstant && secondary == githubPullRequestCreateSubcommandNameConstant:
		return formatter.describeGitHubPullRequestCreateMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubAuthStatusMessage(result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return githubAuthStatusStartTemplateConstant
	case messageStageSuccess:
		return githubAuthStatusSuccessTemplateConstant
	case messageStageFailure:
		return fmt.Sprintf(githubAuthStatusFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result))
	default:
		return fmt.Sprintf(githubAuthStatusExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitHubPullRequestCreateMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	baseBranch := formatter.ensureValue(findFlagValue(arguments, githubBaseFlagConstant))

	switch stage {
	case messageStageStart:
		if containsArgument(arguments, githubDraftFlagConstant) {
			return fmt.Sprintf(githubDraftPullRequestCreateStartTemplateConstant, baseBranch)
		}
		return fmt.Sprintf(githubPullRequestCreateStartTemplateConstant, baseBranch)
	case messageStageSuccess:
		return fmt.Sprintf(githubPullRequestCreateSuccessTemplateConstant, baseBranch)
	case messageStageFailure:
		return fmt.Sprintf(githubPullRequestCreateFailureTemplateConstant, baseBranch, result.ExitCode, formatter.formatStandardErrorSuffix(result))
	case messageStageExecutionFailure:
		return fmt.Sprintf(githubPullRequestCreateExecutionFailureTemplateConstant, baseBranch, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(result ExecutionResult) string {
	errorMessage := result.ErrorMessage()
	if len(errorMessage) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, errorMessage)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) describeFileCount(fileCount int) string {
	if fileCount == 1 {
		return singleFileLabelConstant
	}
	return fmt.Sprintf(multipleFilesLabelTemplateConstant, fileCount)
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return strings.TrimSpace(arguments[index])
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

// nonFlagArguments drops flags; flags consuming a value are not expected in the inspected ranges.
func (formatter CommandMessageFormatter) nonFlagArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, "-") {
			continue
		}
		positional = append(positional, trimmed)
	}
	return positional
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments)-1; index++ {
		if strings.TrimSpace(arguments[index]) == flag {
			return arguments[index+1]
		}
	}
	return emptyStringConstant
}
