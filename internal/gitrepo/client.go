package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gitship/internal/execshell"
)

const (
	addSubcommandConstant                   = "add"
	commitSubcommandConstant                = "commit"
	branchSubcommandConstant                = "branch"
	statusSubcommandConstant                = "status"
	revParseSubcommandConstant              = "rev-parse"
	pushSubcommandConstant                  = "push"
	endOfOptionsConstant                    = "--"
	messageFlagConstant                     = "-m"
	showCurrentFlagConstant                 = "--show-current"
	porcelainFlagConstant                   = "--porcelain"
	shortFlagConstant                       = "--short"
	headReferenceConstant                   = "HEAD"
	forceWithLeaseFlagConstant              = "--force-with-lease"
	setUpstreamFlagConstant                 = "--set-upstream"
	filesFieldNameConstant                  = "files"
	messageFieldNameConstant                = "message"
	remoteNameFieldNameConstant             = "remote_name"
	branchNameFieldNameConstant             = "branch_name"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "git executor not configured"
	detachedHeadMessageConstant             = "no branch is checked out"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	stageFilesOperationNameConstant         = OperationName("StageFiles")
	commitOperationNameConstant             = OperationName("Commit")
	shortRevisionOperationNameConstant      = OperationName("ShortRevision")
	currentBranchOperationNameConstant      = OperationName("CurrentBranch")
	workingTreeStatusOperationNameConstant  = OperationName("WorkingTreeStatus")
	pushBranchOperationNameConstant         = OperationName("PushBranch")
)

// OperationName describes a named git workflow supported by the client.
type OperationName string

// GitExecutor is the minimal interface required from execshell.ShellExecutor.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// PushOptions configures PushBranch.
type PushOptions struct {
	RemoteName string
	BranchName string
	// ForceWithLease rewrites the remote branch only if it still matches the local tracking ref.
	ForceWithLease bool
}

// Client coordinates git invocations in a single repository.
type Client struct {
	executor       GitExecutor
	repositoryPath string
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrDetachedHead indicates git reported no current branch.
	ErrDetachedHead = errors.New(detachedHeadMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for git operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// NewClient constructs a git client. An empty repositoryPath runs git in the process working directory.
func NewClient(executor GitExecutor, repositoryPath string) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor, repositoryPath: strings.TrimSpace(repositoryPath)}, nil
}

// StageFiles adds every file in a single git add invocation.
func (client *Client) StageFiles(executionContext context.Context, files []string) error {
	if len(files) == 0 {
		return InvalidInputError{FieldName: filesFieldNameConstant, Message: requiredValueMessageConstant}
	}

	arguments := append([]string{addSubcommandConstant, endOfOptionsConstant}, files...)
	if _, executionError := client.execute(executionContext, arguments); executionError != nil {
		return OperationError{Operation: stageFilesOperationNameConstant, Cause: executionError}
	}
	return nil
}

// Commit records staged changes with message as-is.
func (client *Client) Commit(executionContext context.Context, message string) error {
	if len(strings.TrimSpace(message)) == 0 {
		return InvalidInputError{FieldName: messageFieldNameConstant, Message: requiredValueMessageConstant}
	}

	if _, executionError := client.execute(executionContext, []string{commitSubcommandConstant, messageFlagConstant, message}); executionError != nil {
		return OperationError{Operation: commitOperationNameConstant, Cause: executionError}
	}
	return nil
}

// ShortRevision returns the abbreviated hash of HEAD.
func (client *Client) ShortRevision(executionContext context.Context) (string, error) {
	executionResult, executionError := client.execute(executionContext, []string{revParseSubcommandConstant, shortFlagConstant, headReferenceConstant})
	if executionError != nil {
		return "", OperationError{Operation: shortRevisionOperationNameConstant, Cause: executionError}
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CurrentBranch returns the checked out branch name; a detached HEAD yields ErrDetachedHead.
func (client *Client) CurrentBranch(executionContext context.Context) (string, error) {
	executionResult, executionError := client.execute(executionContext, []string{branchSubcommandConstant, showCurrentFlagConstant})
	if executionError != nil {
		return "", OperationError{Operation: currentBranchOperationNameConstant, Cause: executionError}
	}

	branchName := strings.TrimSpace(executionResult.StandardOutput)
	if len(branchName) == 0 {
		return "", OperationError{Operation: currentBranchOperationNameConstant, Cause: ErrDetachedHead}
	}
	return branchName, nil
}

// HasUncommittedChanges reports whether git status --porcelain lists any entry, untracked files included.
func (client *Client) HasUncommittedChanges(executionContext context.Context) (bool, error) {
	executionResult, executionError := client.execute(executionContext, []string{statusSubcommandConstant, porcelainFlagConstant})
	if executionError != nil {
		return false, OperationError{Operation: workingTreeStatusOperationNameConstant, Cause: executionError}
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) > 0, nil
}

// PushBranch pushes the branch and records the remote as its upstream.
// Git output is streamed to the terminal because pushes may prompt or report progress.
func (client *Client) PushBranch(executionContext context.Context, options PushOptions) error {
	remoteName := strings.TrimSpace(options.RemoteName)
	if len(remoteName) == 0 {
		return InvalidInputError{FieldName: remoteNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	branchName := strings.TrimSpace(options.BranchName)
	if len(branchName) == 0 {
		return InvalidInputError{FieldName: branchNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	arguments := []string{pushSubcommandConstant, setUpstreamFlagConstant, remoteName, branchName}
	if options.ForceWithLease {
		arguments = append(arguments, forceWithLeaseFlagConstant)
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: client.repositoryPath,
		StreamOutput:     true,
	}
	if _, executionError := client.executor.ExecuteGit(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: pushBranchOperationNameConstant, Cause: executionError}
	}
	return nil
}

func (client *Client) execute(executionContext context.Context, arguments []string) (execshell.ExecutionResult, error) {
	return client.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: client.repositoryPath,
	})
}
