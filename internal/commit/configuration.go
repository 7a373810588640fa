package commit

// CommandConfiguration captures configuration values for the commit command.
type CommandConfiguration struct {
	SkipValidation bool `mapstructure:"skip_validation"`
}

// DefaultCommandConfiguration validates every message unless configured otherwise.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{SkipValidation: false}
}
