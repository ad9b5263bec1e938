// Package ui renders the interactive and human-readable parts of a cleanup run.
//
// TerminalBranchSelector drives the bubbletea multi-select prompt, ConsoleReporter
// prints colored progress lines, and ConsoleCommandEventLogger turns git lifecycle
// events into concise console log entries.
package ui
