// Package githubcli wraps the GitHub CLI subcommands used to open pull requests.
//
// Calls go through execshell so tests can substitute a recording executor.
package githubcli
