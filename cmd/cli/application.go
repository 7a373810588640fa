package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gitship/internal/commit"
	"github.com/temirov/gitship/internal/pullrequest"
	"github.com/temirov/gitship/internal/utils"
	flagutils "github.com/temirov/gitship/internal/utils/flags"
	pathutils "github.com/temirov/gitship/internal/utils/path"
)

const (
	applicationNameConstant                 = "gitship"
	applicationShortDescriptionConstant     = "Korean-friendly helpers for git commits and GitHub pull requests"
	applicationLongDescriptionConstant      = "gitship wraps git and the GitHub CLI: commit validates a conventional commit message before committing, and pr pushes the current branch and opens a pull request."
	commitApplicationNameConstant           = "git-commit"
	pullRequestApplicationNameConstant      = "git-pr"
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	toolsConfigurationKeyConstant           = "tools"
	commitConfigurationKeyConstant          = toolsConfigurationKeyConstant + ".commit"
	commitSkipValidationConfigKeyConstant   = commitConfigurationKeyConstant + ".skip_validation"
	pullRequestConfigurationKeyConstant     = toolsConfigurationKeyConstant + ".pr"
	pullRequestBaseConfigKeyConstant        = pullRequestConfigurationKeyConstant + ".base"
	pullRequestRemoteConfigKeyConstant      = pullRequestConfigurationKeyConstant + ".remote"
	pullRequestDraftConfigKeyConstant       = pullRequestConfigurationKeyConstant + ".draft"
	environmentPrefixConstant               = "GITSHIP"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandInfoMessageConstant          = "gitship CLI executed"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationSearchPathConstant     = "~/.gitship"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoints.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds per-tool configuration.
type ApplicationToolsConfiguration struct {
	Commit      commit.CommandConfiguration      `mapstructure:"commit"`
	PullRequest pullrequest.CommandConfiguration `mapstructure:"pr"`
}

// Application wires a Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	workingDirectory      string
}

// NewApplication assembles the combined gitship CLI with the commit and pr subcommands.
func NewApplication() *Application {
	application := newApplication()

	rootCommand := &cobra.Command{
		Use:   applicationNameConstant,
		Short: applicationShortDescriptionConstant,
		Long:  applicationLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	if commitCommand, commitBuildError := application.buildCommitCommand(); commitBuildError == nil {
		rootCommand.AddCommand(commitCommand)
	}
	if pullRequestCommand, pullRequestBuildError := application.buildPullRequestCommand(); pullRequestBuildError == nil {
		rootCommand.AddCommand(pullRequestCommand)
	}

	application.attachRootCommand(rootCommand)
	return application
}

// NewCommitApplication assembles the standalone git-commit CLI.
func NewCommitApplication() (*Application, error) {
	application := newApplication()

	commitCommand, buildError := application.buildCommitCommand()
	if buildError != nil {
		return nil, buildError
	}
	commitCommand.Use = commitApplicationNameConstant

	application.attachRootCommand(commitCommand)
	return application, nil
}

// NewPullRequestApplication assembles the standalone git-pr CLI.
func NewPullRequestApplication() (*Application, error) {
	application := newApplication()

	pullRequestCommand, buildError := application.buildPullRequestCommand()
	if buildError != nil {
		return nil, buildError
	}
	pullRequestCommand.Use = pullRequestApplicationNameConstant

	application.attachRootCommand(pullRequestCommand)
	return application, nil
}

func newApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant, pathutils.NewHomeExpander().Expand(userConfigurationSearchPathConstant)},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
	}
	if workingDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
		application.workingDirectory = workingDirectory
	}

	return application
}

func (application *Application) attachRootCommand(rootCommand *cobra.Command) {
	rootCommand.SilenceUsage = true
	rootCommand.SilenceErrors = true
	rootCommand.PersistentPreRunE = func(command *cobra.Command, arguments []string) error {
		return application.initializeConfiguration(command)
	}

	rootCommand.SetContext(context.Background())
	rootCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	rootCommand.PersistentFlags().StringVar(
		&application.logLevelFlagValue,
		logLevelFlagNameConstant,
		"",
		flagutils.FormatChoiceUsage(string(utils.DefaultLogLevel), utils.SupportedLogLevels(), logLevelFlagUsageConstant),
	)
	rootCommand.PersistentFlags().StringVar(
		&application.logFormatFlagValue,
		logFormatFlagNameConstant,
		"",
		flagutils.FormatChoiceUsage(string(utils.DefaultLogFormat), utils.SupportedLogFormats(), logFormatFlagUsageConstant),
	)

	application.rootCommand = rootCommand
}

func (application *Application) buildCommitCommand() (*cobra.Command, error) {
	commitBuilder := commit.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() commit.CommandConfiguration {
			return application.configuration.Tools.Commit
		},
		WorkingDirectory: application.workingDirectory,
	}
	return commitBuilder.Build()
}

func (application *Application) buildPullRequestCommand() (*cobra.Command, error) {
	pullRequestBuilder := pullrequest.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() pullrequest.CommandConfiguration {
			return application.configuration.Tools.PullRequest
		},
		WorkingDirectory: application.workingDirectory,
	}
	return pullRequestBuilder.Build()
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds the combined application and executes it.
func Execute() error {
	return NewApplication().Execute()
}

// ExecuteCommit builds the standalone git-commit application and executes it.
func ExecuteCommit() error {
	application, buildError := NewCommitApplication()
	if buildError != nil {
		return buildError
	}
	return application.Execute()
}

// ExecutePullRequest builds the standalone git-pr application and executes it.
func ExecutePullRequest() error {
	application, buildError := NewPullRequestApplication()
	if buildError != nil {
		return buildError
	}
	return application.Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultCommitConfiguration := commit.DefaultCommandConfiguration()
	defaultPullRequestConfiguration := pullrequest.DefaultCommandConfiguration()
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:       string(utils.DefaultLogLevel),
		commonLogFormatConfigKeyConstant:      string(utils.DefaultLogFormat),
		commitSkipValidationConfigKeyConstant: defaultCommitConfiguration.SkipValidation,
		pullRequestBaseConfigKeyConstant:      defaultPullRequestConfiguration.BaseBranch,
		pullRequestRemoteConfigKeyConstant:    defaultPullRequestConfiguration.RemoteName,
		pullRequestDraftConfigKeyConstant:     defaultPullRequestConfiguration.Draft,
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Debug(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	return command.Help()
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
