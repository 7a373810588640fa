// Package gitrepo runs the git subcommands both tools depend on.
//
// Client stages and commits files, reads the current branch and working
// tree status, and pushes branches. Every call goes through execshell.
package gitrepo
