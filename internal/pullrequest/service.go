package pullrequest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/gitship/internal/execshell"
	"github.com/temirov/gitship/internal/githubcli"
	"github.com/temirov/gitship/internal/gitrepo"
	"github.com/temirov/gitship/internal/ui"
)

const (
	loggerNotConfiguredMessageConstant     = "pull request service logger not configured"
	executorNotConfiguredMessageConstant   = "pull request service command executor not configured"
	fileReaderNotConfiguredMessageConstant = "pull request service file reader not configured"
	wrappedCauseTemplateConstant           = "%w: %w"
	branchDetailsTemplateConstant          = "   Current branch: %s\n   Base branch: %s\n   Title: %s\n\n"
	uncommittedChangesWarningConstant      = "⚠️  Warning: there are uncommitted changes.\n   Commit everything before opening a pull request.\n\n"
	validationWarningTemplateConstant      = "⚠️  Warning: %s\n"
	skippingPushMessageConstant            = "⏭️  Skipping push\n"
	pullRequestSpacerConstant              = "\n"
	statusCheckFailedLogMessageConstant    = "working tree status unavailable"
	titleWarningLogMessageConstant         = "pull request input warning"
	pullRequestCreatedLogMessageConstant   = "pull request created"
	logFieldReasonConstant                 = "reason"
	logFieldKindConstant                   = "kind"
	logFieldBranchConstant                 = "branch"
	logFieldBaseBranchConstant             = "base_branch"
	logFieldURLConstant                    = "url"
)

var (
	// ErrLoggerNotConfigured indicates the service was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrExecutorNotConfigured indicates the service was constructed without a command executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrFileReaderNotConfigured indicates the service was constructed without a file reader.
	ErrFileReaderNotConfigured = errors.New(fileReaderNotConfiguredMessageConstant)
)

// CommandExecutor runs both git and gh invocations.
type CommandExecutor interface {
	gitrepo.GitExecutor
	githubcli.GitHubCommandExecutor
}

// Options configures a single pull request.
type Options struct {
	BaseBranch string
	Title      string
	Body       BodySource
	Draft      bool
	// ForcePush pushes with --force-with-lease; a plain --force is never used.
	ForcePush  bool
	SkipPush   bool
	RemoteName string
	// WorkingDirectory selects the repository; empty means the process working directory.
	WorkingDirectory string
}

// Result describes an opened pull request.
type Result struct {
	Branch     string
	BaseBranch string
	URL        string
	Warnings   []Warning
}

// Service runs the push-and-review pipeline.
type Service struct {
	logger          *zap.Logger
	executor        CommandExecutor
	fileReader      FileReader
	outputReporter  ui.Reporter
	warningReporter ui.Reporter
}

// NewService constructs a Service. Nil reporters discard their output.
func NewService(logger *zap.Logger, executor CommandExecutor, fileReader FileReader, outputReporter ui.Reporter, warningReporter ui.Reporter) (*Service, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if fileReader == nil {
		return nil, ErrFileReaderNotConfigured
	}
	if outputReporter == nil {
		outputReporter = ui.NewDiscardReporter()
	}
	if warningReporter == nil {
		warningReporter = ui.NewDiscardReporter()
	}

	return &Service{
		logger:          logger,
		executor:        executor,
		fileReader:      fileReader,
		outputReporter:  outputReporter,
		warningReporter: warningReporter,
	}, nil
}

// Create opens a pull request from the current branch into options.BaseBranch.
// It refuses to run from the base branch, requires gh authentication, and pushes
// before creating unless options.SkipPush is set. Every failure ends the run.
func (service *Service) Create(executionContext context.Context, options Options) (Result, error) {
	repository, repositoryError := gitrepo.NewClient(service.executor, options.WorkingDirectory)
	if repositoryError != nil {
		return Result{}, repositoryError
	}
	github, githubError := githubcli.NewClient(service.executor)
	if githubError != nil {
		return Result{}, githubError
	}

	currentBranch, branchError := repository.CurrentBranch(executionContext)
	if branchError != nil {
		return Result{}, fmt.Errorf(wrappedCauseTemplateConstant, ErrCurrentBranchUnknown, branchError)
	}

	service.outputReporter.Printf(branchDetailsTemplateConstant, currentBranch, options.BaseBranch, options.Title)

	if currentBranch == options.BaseBranch {
		return Result{}, SameBranchError{Branch: currentBranch}
	}

	hasChanges, statusError := repository.HasUncommittedChanges(executionContext)
	switch {
	case statusError != nil:
		service.logger.Warn(statusCheckFailedLogMessageConstant, zap.String(logFieldReasonConstant, execshell.FailureMessage(statusError)))
	case hasChanges:
		service.outputReporter.Printf(uncommittedChangesWarningConstant)
	}

	if authenticationError := github.CheckAuthentication(executionContext); authenticationError != nil {
		return Result{}, fmt.Errorf(wrappedCauseTemplateConstant, ErrNotAuthenticated, authenticationError)
	}

	body, bodyError := resolveBody(options.Body, service.fileReader)
	if bodyError != nil {
		return Result{}, bodyError
	}

	warnings, validationError := ValidateTitleAndBody(options.Title, body)
	if validationError != nil {
		return Result{}, validationError
	}
	for _, warning := range warnings {
		service.logger.Debug(titleWarningLogMessageConstant, zap.String(logFieldKindConstant, string(warning.Kind)))
		service.warningReporter.Printf(validationWarningTemplateConstant, warning.Message)
	}

	if options.SkipPush {
		service.outputReporter.Printf(skippingPushMessageConstant)
	} else {
		pushOptions := gitrepo.PushOptions{
			RemoteName:     options.RemoteName,
			BranchName:     currentBranch,
			ForceWithLease: options.ForcePush,
		}
		if pushError := repository.PushBranch(executionContext, pushOptions); pushError != nil {
			return Result{}, StepError{Step: StepPush, Cause: pushError}
		}
	}

	service.outputReporter.Printf(pullRequestSpacerConstant)
	createResult, createError := github.CreatePullRequest(executionContext, githubcli.PullRequestCreateOptions{
		BaseBranch:       options.BaseBranch,
		Title:            options.Title,
		Body:             body,
		Draft:            options.Draft,
		WorkingDirectory: options.WorkingDirectory,
	})
	if createError != nil {
		return Result{}, StepError{Step: StepCreate, Cause: createError}
	}

	service.logger.Info(
		pullRequestCreatedLogMessageConstant,
		zap.String(logFieldBranchConstant, currentBranch),
		zap.String(logFieldBaseBranchConstant, options.BaseBranch),
		zap.String(logFieldURLConstant, createResult.URL),
	)

	return Result{
		Branch:     currentBranch,
		BaseBranch: options.BaseBranch,
		URL:        createResult.URL,
		Warnings:   warnings,
	}, nil
}
