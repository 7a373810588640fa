package pullrequest

import "strings"

const (
	defaultBaseBranchConstant = "main"
	defaultRemoteNameConstant = "origin"
)

// CommandConfiguration captures configuration values for the pull request command.
type CommandConfiguration struct {
	BaseBranch string `mapstructure:"base"`
	RemoteName string `mapstructure:"remote"`
	Draft      bool   `mapstructure:"draft"`
}

// DefaultCommandConfiguration targets main on origin with a ready-for-review pull request.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		BaseBranch: defaultBaseBranchConstant,
		RemoteName: defaultRemoteNameConstant,
		Draft:      false,
	}
}

// sanitize trims values and restores defaults for blank entries.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.BaseBranch = strings.TrimSpace(configuration.BaseBranch)
	if len(sanitized.BaseBranch) == 0 {
		sanitized.BaseBranch = defaultBaseBranchConstant
	}

	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if len(sanitized.RemoteName) == 0 {
		sanitized.RemoteName = defaultRemoteNameConstant
	}

	return sanitized
}
