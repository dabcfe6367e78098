// Package main hosts the transcriber CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into pipeline runs:
// transcribing a single media file, batch-processing a directory, re-chunking
// an existing transcript, listing the run catalog, and checking the local
// toolchain. Configuration resolution, logger setup, and flag overrides live
// here so the internal packages stay free of CLI concerns.
package main
