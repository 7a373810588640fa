package commit

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gitship/internal/conventional"
	"github.com/temirov/gitship/internal/execshell"
	"github.com/temirov/gitship/internal/gitrepo"
)

// UnknownRevision is reported when the new commit's hash cannot be read back.
const UnknownRevision = "unknown"

const (
	loggerNotConfiguredMessageConstant     = "commit service logger not configured"
	executorNotConfiguredMessageConstant   = "commit service git executor not configured"
	revisionLookupFailedLogMessageConstant = "unable to resolve revision of new commit"
	validationSkippedLogMessageConstant    = "commit message validation skipped"
	logFieldFilesConstant                  = "files"
	logFieldRevisionConstant               = "revision"
	logFieldReasonConstant                 = "reason"
	validationRejectedLogMessageConstant   = "commit message rejected"
	commitCreatedLogMessageConstant        = "commit created"
)

var (
	// ErrLoggerNotConfigured indicates the service was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrExecutorNotConfigured indicates the service was constructed without a git executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// Options configures a single commit.
type Options struct {
	Files          []string
	Message        string
	SkipValidation bool
	// WorkingDirectory selects the repository; empty means the process working directory.
	WorkingDirectory string
}

// Result describes a recorded commit.
type Result struct {
	Files    []string
	Message  string
	Revision string
}

// Service runs the validate, stage, commit pipeline.
type Service struct {
	logger   *zap.Logger
	executor gitrepo.GitExecutor
}

// NewService constructs a Service.
func NewService(logger *zap.Logger, executor gitrepo.GitExecutor) (*Service, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Service{logger: logger, executor: executor}, nil
}

// SplitFileList splits a whitespace separated file argument. Paths containing spaces are not supported.
func SplitFileList(rawFiles string) []string {
	return strings.Fields(rawFiles)
}

// Commit validates the message, stages every file in one git add, commits, and reads back the short revision.
// Each failure stops the pipeline; a failed revision lookup only yields UnknownRevision.
func (service *Service) Commit(executionContext context.Context, options Options) (Result, error) {
	if len(options.Files) == 0 {
		return Result{}, ErrNoFiles
	}

	if options.SkipValidation {
		service.logger.Debug(validationSkippedLogMessageConstant)
	} else if validationError := conventional.ValidateCommitMessage(options.Message); validationError != nil {
		var typedError conventional.ValidationError
		if !errors.As(validationError, &typedError) {
			return Result{}, validationError
		}
		service.logger.Debug(validationRejectedLogMessageConstant, zap.String(logFieldReasonConstant, string(typedError.Reason)))
		return Result{}, ValidationFailedError{Cause: typedError}
	}

	repository, repositoryError := gitrepo.NewClient(service.executor, options.WorkingDirectory)
	if repositoryError != nil {
		return Result{}, repositoryError
	}

	if stageError := repository.StageFiles(executionContext, options.Files); stageError != nil {
		return Result{}, StepError{Step: StepStage, Cause: stageError}
	}

	if commitError := repository.Commit(executionContext, options.Message); commitError != nil {
		return Result{}, StepError{Step: StepCommit, Cause: commitError}
	}

	revision, revisionError := repository.ShortRevision(executionContext)
	if revisionError != nil || len(revision) == 0 {
		service.logger.Warn(revisionLookupFailedLogMessageConstant, zap.String(logFieldReasonConstant, execshell.FailureMessage(revisionError)))
		revision = UnknownRevision
	}

	service.logger.Info(commitCreatedLogMessageConstant, zap.Strings(logFieldFilesConstant, options.Files), zap.String(logFieldRevisionConstant, revision))

	return Result{
		Files:    append([]string(nil), options.Files...),
		Message:  options.Message,
		Revision: revision,
	}, nil
}
