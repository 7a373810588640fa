package pullrequest

import (
	"errors"
	"fmt"

	"github.com/temirov/gitship/internal/execshell"
)

const (
	currentBranchUnknownMessageConstant     = "unable to determine the current branch"
	notAuthenticatedMessageConstant         = "github cli is not authenticated"
	bodySourceMissingMessageConstant        = "pull request body source not provided"
	emptyTitleMessageConstant               = "pull request title is empty"
	sameBranchMessageTemplateConstant       = "current branch %q is the base branch"
	bodyFileNotFoundMessageTemplateConstant = "body file not found: %s"
	bodyFileEncodingMessageTemplateConstant = "body file is not valid UTF-8: %s"
	bodyFileReadMessageTemplateConstant     = "unable to read body file %s: %s"
	stepErrorMessageTemplateConstant        = "%s step failed: %s"
)

// Step names an external invocation within the pull request pipeline.
type Step string

// Pipeline steps whose failure aborts the run.
const (
	StepPush   Step = "push"
	StepCreate Step = "create"
)

var (
	// ErrCurrentBranchUnknown indicates git did not report a checked out branch.
	ErrCurrentBranchUnknown = errors.New(currentBranchUnknownMessageConstant)
	// ErrNotAuthenticated indicates gh auth status failed.
	ErrNotAuthenticated = errors.New(notAuthenticatedMessageConstant)
	// ErrBodySourceMissing indicates neither a body file nor inline text was supplied.
	ErrBodySourceMissing = errors.New(bodySourceMissingMessageConstant)
	// ErrEmptyTitle indicates a blank pull request title.
	ErrEmptyTitle = errors.New(emptyTitleMessageConstant)
)

// SameBranchError reports an attempt to open a pull request from the base branch into itself.
type SameBranchError struct {
	Branch string
}

// Error describes the conflict.
func (sameBranchError SameBranchError) Error() string {
	return fmt.Sprintf(sameBranchMessageTemplateConstant, sameBranchError.Branch)
}

// BodyFileNotFoundError reports a body file path that does not exist.
type BodyFileNotFoundError struct {
	Path string
}

// Error describes the missing file.
func (notFoundError BodyFileNotFoundError) Error() string {
	return fmt.Sprintf(bodyFileNotFoundMessageTemplateConstant, notFoundError.Path)
}

// BodyFileEncodingError reports a body file whose contents are not UTF-8.
type BodyFileEncodingError struct {
	Path string
}

// Error describes the encoding problem.
func (encodingError BodyFileEncodingError) Error() string {
	return fmt.Sprintf(bodyFileEncodingMessageTemplateConstant, encodingError.Path)
}

// BodyFileReadError reports any other failure to read the body file.
type BodyFileReadError struct {
	Path  string
	Cause error
}

// Error describes the read failure.
func (readError BodyFileReadError) Error() string {
	return fmt.Sprintf(bodyFileReadMessageTemplateConstant, readError.Path, readError.Cause)
}

// Unwrap exposes the filesystem error.
func (readError BodyFileReadError) Unwrap() error {
	return readError.Cause
}

// StepError reports a push or pull request creation that failed.
type StepError struct {
	Step  Step
	Cause error
}

// Error describes the failed step with the trimmed tool output.
func (stepError StepError) Error() string {
	return fmt.Sprintf(stepErrorMessageTemplateConstant, stepError.Step, execshell.FailureMessage(stepError.Cause))
}

// Unwrap exposes the underlying failure.
func (stepError StepError) Unwrap() error {
	return stepError.Cause
}
