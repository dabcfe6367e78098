// Package services holds helpers shared by the adapters that shell out to
// external tools (ffmpeg, ffprobe, WhisperX).
//
// Errors crossing a service boundary are tagged with one of the sentinel
// markers via Wrap so the pipeline can record a failure kind in the catalog
// without string matching.
package services
