// Package utils exposes reusable helpers consumed by both git tools.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// GITSHIP_ environment variables through Viper. LoggerFactory builds zap
// loggers, and FlushingWriter keeps terminal output unbuffered.
package utils
