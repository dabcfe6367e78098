// Package logging assembles structured slog loggers and formatting helpers used
// across transcriber.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with run identifiers and input files. The package also provides a
// no-op logger for tests and library code that was not handed a logger.
package logging
