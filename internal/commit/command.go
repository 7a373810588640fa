package commit

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitship/internal/dependencies"
	"github.com/temirov/gitship/internal/gitrepo"
	"github.com/temirov/gitship/internal/ui"
)

const (
	commandUseConstant                    = "commit"
	commandShortDescriptionConstant       = "Stage files and commit them with a Korean conventional commit message"
	commandLongDescriptionConstant        = "commit validates a message of the form type(scope): 설명, stages the listed files, commits them, and prints the new revision."
	commandExampleConstant                = "  git-commit --files \"src/app.ts\" --message \"feat(app): 앱 초기화 로직 추가\"\n  git-commit --files \"src/a.ts src/b.ts\" --message \"fix(api): API 호출 오류 수정\""
	unexpectedArgumentsMessageConstant    = "commit does not accept positional arguments"
	flagFilesNameConstant                 = "files"
	flagFilesDescriptionConstant          = "Space separated paths of the files to commit"
	flagMessageNameConstant               = "message"
	flagMessageDescriptionConstant        = "Commit message in Korean conventional commit format"
	flagSkipValidationNameConstant        = "skip-validation"
	flagSkipValidationDescriptionConstant = "Commit without validating the message format"
	bannerHeaderConstant                  = "\n📝 Starting git commit\n"
	bannerFilesTemplateConstant           = "   Files: %s\n"
	bannerMessageTemplateConstant         = "   Message: %s\n\n"
	bannerFilesSeparatorConstant          = ", "
	validationWarningTemplateConstant     = "⚠️  Warning: %s\n"
	validationHintConstant                = "\n⚠️  The commit message does not follow the Korean conventional commit format.\n   Use --skip-validation to commit anyway.\n"
	stageFailedMessageConstant            = "\n❌ Staging failed\n"
	commitFailedMessageConstant           = "\n❌ Commit failed\n"
	commitCompleteTemplateConstant        = "\n✨ Commit complete! (revision: %s)\n"
	commitMessageTemplateConstant         = "   Message: %s\n"
	allStepsCompletedMessageConstant      = "\n🎉 All steps completed successfully!\n\n"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for committing files.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	Executor              gitrepo.GitExecutor
	ConfigurationProvider func() CommandConfiguration
	WorkingDirectory      string
}

// Build constructs the commit command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		RunE:    builder.run,
	}

	command.Flags().String(flagFilesNameConstant, "", flagFilesDescriptionConstant)
	command.Flags().String(flagMessageNameConstant, "", flagMessageDescriptionConstant)
	command.Flags().Bool(flagSkipValidationNameConstant, false, flagSkipValidationDescriptionConstant)

	for _, requiredFlagName := range []string{flagFilesNameConstant, flagMessageNameConstant} {
		if markError := command.MarkFlagRequired(requiredFlagName); markError != nil {
			return nil, markError
		}
	}

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

	outputReporter.Printf(bannerHeaderConstant)
	outputReporter.Printf(bannerFilesTemplateConstant, strings.Join(options.Files, bannerFilesSeparatorConstant))
	outputReporter.Printf(bannerMessageTemplateConstant, options.Message)

	logger := builder.resolveLogger()
	executor, executorError := builder.resolveExecutor(logger, outputWriter, errorWriter)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(logger, executor)
	if serviceError != nil {
		return serviceError
	}

	result, commitError := service.Commit(command.Context(), options)
	if commitError != nil {
		builder.reportFailure(outputReporter, ui.NewWriterReporter(errorWriter), commitError)
		return commitError
	}

	outputReporter.Printf(commitCompleteTemplateConstant, result.Revision)
	outputReporter.Printf(commitMessageTemplateConstant, result.Message)
	outputReporter.Printf(allStepsCompletedMessageConstant)
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) Options {
	filesValue, _ := command.Flags().GetString(flagFilesNameConstant)
	messageValue, _ := command.Flags().GetString(flagMessageNameConstant)

	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	skipValidation := configuration.SkipValidation
	if command.Flags().Changed(flagSkipValidationNameConstant) {
		skipValidation, _ = command.Flags().GetBool(flagSkipValidationNameConstant)
	}

	return Options{
		Files:            SplitFileList(filesValue),
		Message:          messageValue,
		SkipValidation:   skipValidation,
		WorkingDirectory: builder.WorkingDirectory,
	}
}

func (builder *CommandBuilder) reportFailure(outputReporter ui.Reporter, errorReporter ui.Reporter, failure error) {
	var validationError ValidationFailedError
	if errors.As(failure, &validationError) {
		errorReporter.Printf(validationWarningTemplateConstant, validationError.Cause.Error())
		outputReporter.Printf(validationHintConstant)
		return
	}

	var stepError StepError
	if !errors.As(failure, &stepError) {
		return
	}
	switch stepError.Step {
	case StepStage:
		outputReporter.Printf(stageFailedMessageConstant)
	case StepCommit:
		outputReporter.Printf(commitFailedMessageConstant)
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

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger, outputWriter io.Writer, errorWriter io.Writer) (gitrepo.GitExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}
	return dependencies.ResolveCommandExecutor(nil, logger, outputWriter, errorWriter)
}
