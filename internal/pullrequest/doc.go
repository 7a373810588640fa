// Package pullrequest pushes the current branch and opens a GitHub pull request through gh.
//
// Service runs the checks and invocations in order and stops at the first
// failure. The title and body are validated locally; only an empty title is
// fatal, other findings surface as warnings.
package pullrequest
