// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with structured logging and lifecycle
// notifications, OSCommandRunner executes processes through os/exec, and
// CommandMessageFormatter turns git and gh invocations into human-readable
// progress descriptions.
package execshell
