package commit

import (
	"errors"
	"fmt"

	"github.com/temirov/gitship/internal/conventional"
	"github.com/temirov/gitship/internal/execshell"
)

const (
	noFilesMessageConstant                  = "no files to commit"
	validationFailedMessageTemplateConstant = "commit message does not follow the Korean conventional commit format: %s"
	stepErrorMessageTemplateConstant        = "%s step failed: %s"
)

// Step names a git invocation within the commit pipeline.
type Step string

// Pipeline steps whose failure aborts the commit.
const (
	StepStage  Step = "stage"
	StepCommit Step = "commit"
)

// ErrNoFiles indicates the files argument contained only whitespace.
var ErrNoFiles = errors.New(noFilesMessageConstant)

// ValidationFailedError reports a rejected commit message. No git command runs after it.
type ValidationFailedError struct {
	Cause conventional.ValidationError
}

// Error describes the validation failure.
func (validationError ValidationFailedError) Error() string {
	return fmt.Sprintf(validationFailedMessageTemplateConstant, validationError.Cause.Error())
}

// Unwrap exposes the validator's error.
func (validationError ValidationFailedError) Unwrap() error {
	return validationError.Cause
}

// StepError reports a git invocation that failed.
type StepError struct {
	Step  Step
	Cause error
}

// Error describes the failed step with the trimmed git output.
func (stepError StepError) Error() string {
	return fmt.Sprintf(stepErrorMessageTemplateConstant, stepError.Step, execshell.FailureMessage(stepError.Cause))
}

// Unwrap exposes the underlying git failure.
func (stepError StepError) Unwrap() error {
	return stepError.Cause
}
