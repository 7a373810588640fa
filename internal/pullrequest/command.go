package pullrequest

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitship/internal/dependencies"
	"github.com/temirov/gitship/internal/ui"
	pathutils "github.com/temirov/gitship/internal/utils/path"
)

const (
	commandUseConstant                 = "pr"
	commandShortDescriptionConstant    = "Push the current branch and open a GitHub pull request"
	commandLongDescriptionConstant     = "pr pushes the current branch with an upstream, validates the title and body, and opens a pull request with the GitHub CLI."
	commandExampleConstant             = "  git-pr --base main --title \"영화 검색 기능 추가\" --body-file /tmp/pr_body.md\n  git-pr --base develop --title \"버그 수정\" --body \"로그인 버그를 수정했습니다.\"\n  git-pr --title \"새 기능\" --body-file pr.md --draft"
	unexpectedArgumentsMessageConstant = "pr does not accept positional arguments"
	flagBaseNameConstant               = "base"
	flagBaseDescriptionConstant        = "Branch the pull request merges into"
	flagTitleNameConstant              = "title"
	flagTitleDescriptionConstant       = "Pull request title, preferably in Korean"
	flagBodyFileNameConstant           = "body-file"
	flagBodyFileDescriptionConstant    = "Path of a UTF-8 file holding the pull request body"
	flagBodyNameConstant               = "body"
	flagBodyDescriptionConstant        = "Pull request body text"
	flagDraftNameConstant              = "draft"
	flagDraftDescriptionConstant       = "Open the pull request as a draft"
	flagForcePushNameConstant          = "force-push"
	flagForcePushDescriptionConstant   = "Push with --force-with-lease"
	flagSkipPushNameConstant           = "skip-push"
	flagSkipPushDescriptionConstant    = "Open the pull request without pushing first"
	startMessageConstant               = "\n📝 Starting GitHub pull request creation\n\n"
	currentBranchUnknownReportConstant = "❌ Unable to determine the current branch.\n"
	sameBranchReportTemplateConstant   = "❌ The current branch is the base branch (%s).\n   Work on a different branch.\n"
	notAuthenticatedReportConstant     = "\n❌ GitHub CLI authentication is required.\n   Authenticate with: gh auth login\n"
	inputErrorReportTemplateConstant   = "❌ %s\n"
	pushFailedReportConstant           = "\n❌ Push failed\n"
	createFailedReportConstant         = "\n❌ Pull request creation failed\n\nPlease check:\n  1. GitHub CLI is authenticated (gh auth status)\n  2. The remote repository is configured (git remote -v)\n  3. No pull request is already open for this branch (gh pr list)\n"
	createdReportConstant              = "\n✨ Pull request created successfully!\n"
	createdURLReportTemplateConstant   = "\n📎 PR URL: %s\n"
	nextStepsReportConstant            = "\nNext steps:\n  1. Review the pull request and revise it if needed\n  2. Assign suitable reviewers\n  3. Add labels and a milestone (optional)\n\n"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for opening pull requests.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	Executor              CommandExecutor
	FileReader            FileReader
	ConfigurationProvider func() CommandConfiguration
	WorkingDirectory      string
}

// Build constructs the pr command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		RunE:    builder.run,
	}

	command.Flags().String(flagBaseNameConstant, defaultBaseBranchConstant, flagBaseDescriptionConstant)
	command.Flags().String(flagTitleNameConstant, "", flagTitleDescriptionConstant)
	command.Flags().String(flagBodyFileNameConstant, "", flagBodyFileDescriptionConstant)
	command.Flags().String(flagBodyNameConstant, "", flagBodyDescriptionConstant)
	command.Flags().Bool(flagDraftNameConstant, false, flagDraftDescriptionConstant)
	command.Flags().Bool(flagForcePushNameConstant, false, flagForcePushDescriptionConstant)
	command.Flags().Bool(flagSkipPushNameConstant, false, flagSkipPushDescriptionConstant)

	if markError := command.MarkFlagRequired(flagTitleNameConstant); markError != nil {
		return nil, markError
	}
	command.MarkFlagsMutuallyExclusive(flagBodyFileNameConstant, flagBodyNameConstant)
	command.MarkFlagsOneRequired(flagBodyFileNameConstant, flagBodyNameConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	options := builder.parseOptions(command)
	outputWriter := command.OutOrStdout()
	errorWriter := command.ErrOrStderr()
	outputReporter := ui.NewWriterReporter(outputWriter)
	errorReporter := ui.NewWriterReporter(errorWriter)

	outputReporter.Printf(startMessageConstant)

	logger := builder.resolveLogger()
	executor, executorError := builder.resolveExecutor(logger, outputWriter, errorWriter)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(logger, executor, dependencies.ResolveFileReader(builder.FileReader), outputReporter, errorReporter)
	if serviceError != nil {
		return serviceError
	}

	result, createError := service.Create(command.Context(), options)
	if createError != nil {
		builder.reportFailure(outputReporter, errorReporter, createError)
		return createError
	}

	outputReporter.Printf(createdReportConstant)
	outputReporter.Printf(createdURLReportTemplateConstant, result.URL)
	outputReporter.Printf(nextStepsReportConstant)
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) Options {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	configuration = configuration.sanitize()

	baseBranch := configuration.BaseBranch
	if command.Flags().Changed(flagBaseNameConstant) {
		baseBranchValue, _ := command.Flags().GetString(flagBaseNameConstant)
		if trimmedBaseBranch := strings.TrimSpace(baseBranchValue); len(trimmedBaseBranch) > 0 {
			baseBranch = trimmedBaseBranch
		}
	}

	draft := configuration.Draft
	if command.Flags().Changed(flagDraftNameConstant) {
		draft, _ = command.Flags().GetBool(flagDraftNameConstant)
	}

	titleValue, _ := command.Flags().GetString(flagTitleNameConstant)
	forcePushValue, _ := command.Flags().GetBool(flagForcePushNameConstant)
	skipPushValue, _ := command.Flags().GetBool(flagSkipPushNameConstant)

	return Options{
		BaseBranch:       baseBranch,
		Title:            titleValue,
		Body:             builder.parseBodySource(command),
		Draft:            draft,
		ForcePush:        forcePushValue,
		SkipPush:         skipPushValue,
		RemoteName:       configuration.RemoteName,
		WorkingDirectory: builder.WorkingDirectory,
	}
}

func (builder *CommandBuilder) parseBodySource(command *cobra.Command) BodySource {
	if command.Flags().Changed(flagBodyFileNameConstant) {
		bodyFileValue, _ := command.Flags().GetString(flagBodyFileNameConstant)
		return FileBodySource{Path: pathutils.NewHomeExpander().Expand(strings.TrimSpace(bodyFileValue))}
	}
	if command.Flags().Changed(flagBodyNameConstant) {
		bodyValue, _ := command.Flags().GetString(flagBodyNameConstant)
		return InlineBodySource{Text: bodyValue}
	}
	return nil
}

func (builder *CommandBuilder) reportFailure(outputReporter ui.Reporter, errorReporter ui.Reporter, failure error) {
	var sameBranchError SameBranchError
	var stepError StepError
	switch {
	case errors.Is(failure, ErrCurrentBranchUnknown):
		outputReporter.Printf(currentBranchUnknownReportConstant)
	case errors.As(failure, &sameBranchError):
		outputReporter.Printf(sameBranchReportTemplateConstant, sameBranchError.Branch)
	case errors.Is(failure, ErrNotAuthenticated):
		outputReporter.Printf(notAuthenticatedReportConstant)
	case errors.As(failure, &stepError) && stepError.Step == StepPush:
		outputReporter.Printf(pushFailedReportConstant)
	case errors.As(failure, &stepError) && stepError.Step == StepCreate:
		outputReporter.Printf(createFailedReportConstant)
	default:
		errorReporter.Printf(inputErrorReportTemplateConstant, failure.Error())
	}
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger, outputWriter io.Writer, errorWriter io.Writer) (CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}
	return dependencies.ResolveCommandExecutor(nil, logger, outputWriter, errorWriter)
}
