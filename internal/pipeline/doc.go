// Package pipeline turns recordings into exported transcripts and RAG chunks.
//
// A run walks one input through fixed stages:
//
//	validate -> probe -> transcribe -> normalize -> chunk -> export -> record
//
// Probing is best effort: when ffprobe is missing or fails, the run continues
// without a duration and progress is reported as unknown. Every other stage
// failure aborts the run and is recorded in the catalog with a failure kind
// from services.FailureKind.
//
// Batch processes a directory in sorted order under an exclusive lock on the
// output directory, skipping inputs the catalog already lists as completed.
// A failed file does not stop the batch.
package pipeline
