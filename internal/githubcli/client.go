package githubcli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/gitship/internal/execshell"
	"github.com/temirov/gitship/internal/githubauth"
)

const (
	authSubcommandConstant                   = "auth"
	statusSubcommandConstant                 = "status"
	pullRequestSubcommandConstant            = "pr"
	createSubcommandConstant                 = "create"
	baseFlagConstant                         = "--base"
	titleFlagConstant                        = "--title"
	bodyFlagConstant                         = "--body"
	draftFlagConstant                        = "--draft"
	baseBranchFieldNameConstant              = "base_branch"
	titleFieldNameConstant                   = "title"
	requiredValueMessageConstant             = "value required"
	executorNotConfiguredMessageConstant     = "github cli executor not configured"
	operationErrorMessageTemplateConstant    = "%s operation failed"
	operationErrorWithCauseTemplateConstant  = "%s operation failed: %s"
	invalidInputErrorTemplateConstant        = "%s: %s"
	outputLineSeparatorConstant              = "\n"
	checkAuthenticationOperationNameConstant = OperationName("CheckAuthentication")
	createPullRequestOperationNameConstant   = OperationName("CreatePullRequest")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// PullRequestCreateOptions configures CreatePullRequest.
type PullRequestCreateOptions struct {
	BaseBranch       string
	Title            string
	Body             string
	Draft            bool
	WorkingDirectory string
}

// PullRequestCreateResult describes a pull request opened by gh.
type PullRequestCreateResult struct {
	// URL is empty when gh printed nothing on standard output.
	URL string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor          GitHubCommandExecutor
	environmentLookup githubauth.EnvironmentLookup
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
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

// OperationError wraps execution issues for GitHub CLI operations.
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

// NewClient constructs a GitHub CLI client reading tokens from the process environment.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	return NewClientWithEnvironment(executor, os.LookupEnv)
}

// NewClientWithEnvironment constructs a GitHub CLI client reading tokens through environmentLookup.
func NewClientWithEnvironment(executor GitHubCommandExecutor, environmentLookup githubauth.EnvironmentLookup) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor, environmentLookup: environmentLookup}, nil
}

// CheckAuthentication runs gh auth status; any failure means gh cannot act on the user's behalf.
func (client *Client) CheckAuthentication(executionContext context.Context) error {
	commandDetails := execshell.CommandDetails{
		Arguments:            []string{authSubcommandConstant, statusSubcommandConstant},
		EnvironmentVariables: githubauth.CLIEnvironment(client.environmentLookup),
	}

	if _, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: checkAuthenticationOperationNameConstant, Cause: executionError}
	}
	return nil
}

// CreatePullRequest opens a pull request from the checked out branch into options.BaseBranch.
// The title and body are passed through unchanged; an empty body is accepted.
func (client *Client) CreatePullRequest(executionContext context.Context, options PullRequestCreateOptions) (PullRequestCreateResult, error) {
	baseBranch := strings.TrimSpace(options.BaseBranch)
	if len(baseBranch) == 0 {
		return PullRequestCreateResult{}, InvalidInputError{FieldName: baseBranchFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.Title)) == 0 {
		return PullRequestCreateResult{}, InvalidInputError{FieldName: titleFieldNameConstant, Message: requiredValueMessageConstant}
	}

	arguments := []string{
		pullRequestSubcommandConstant,
		createSubcommandConstant,
		baseFlagConstant,
		baseBranch,
		titleFlagConstant,
		options.Title,
		bodyFlagConstant,
		options.Body,
	}
	if options.Draft {
		arguments = append(arguments, draftFlagConstant)
	}

	commandDetails := execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     options.WorkingDirectory,
		EnvironmentVariables: githubauth.CLIEnvironment(client.environmentLookup),
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return PullRequestCreateResult{}, OperationError{Operation: createPullRequestOperationNameConstant, Cause: executionError}
	}

	return PullRequestCreateResult{URL: lastNonEmptyLine(executionResult.StandardOutput)}, nil
}

// lastNonEmptyLine picks the pull request URL, which gh prints after any progress chatter.
func lastNonEmptyLine(output string) string {
	outputLines := strings.Split(output, outputLineSeparatorConstant)
	for lineIndex := len(outputLines) - 1; lineIndex >= 0; lineIndex-- {
		trimmedLine := strings.TrimSpace(outputLines[lineIndex])
		if len(trimmedLine) > 0 {
			return trimmedLine
		}
	}
	return ""
}
