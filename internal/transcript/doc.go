// Package transcript defines the segment, chunk, and transcript records that
// flow between the transcription engine, the normalizer, the chunker, and the
// exporters.
//
// Segments arrive from the engine and may have their text rewritten by the
// normalizer before chunking. Chunks are created only by the chunking package
// and are treated as immutable afterwards. The JSON field names on these types
// are part of the export contract consumed by subtitle and ingestion tooling.
package transcript
