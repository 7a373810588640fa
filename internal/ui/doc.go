// Package ui renders command progress and warnings for people at a terminal.
//
// Structured telemetry flows through zap; this package owns the short,
// emoji-prefixed lines that describe each git or gh step as it happens.
package ui
