// Package commit stages files and records them with a validated Korean
// conventional commit message.
package commit
