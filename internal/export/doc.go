// Package export writes transcripts and chunks to disk.
//
// Subtitle formats (SRT, WebVTT) are rendered from segments, the full
// transcript is written as an indented JSON document, and chunks are written
// as JSON Lines for bulk ingestion into retrieval systems. File writes are
// atomic. The package can also read SRT files and JSON transcripts back so
// existing output can be re-chunked without running speech recognition.
package export
