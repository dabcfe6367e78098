// Package logs reads the transcriber log file for the CLI.
//
// Tail returns the last N lines (optionally filtered to one run id) together
// with the byte offset reached, so follow mode can resume from there without
// rereading. Memory stays bounded by the requested line count.
package logs
