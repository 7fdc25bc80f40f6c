// Package logging assembles the structured slog loggers used across
// RoomAssistant components.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so flow code can tag log lines
// with gateway correlation ids. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
package logging
