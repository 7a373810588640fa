// Package cli constructs the gitship command-line interfaces. It wires the
// Cobra command hierarchy, the configuration loader, and structured logging
// for the combined gitship binary and the standalone git-commit and git-pr
// entrypoints.
package cli
