// Package chunking splits transcript segments into overlapping character
// windows for retrieval ingestion while keeping the time range and segment
// provenance of every window.
//
// Segment text is joined with single trailing spaces into one string and a
// fixed-size window slides across it by a constant stride (target minus
// overlap). Each emitted chunk records the ids of every segment whose text
// intersects the window, sorted by id, and takes its start and end times from
// the first and last of those segments. Offsets are measured in runes so
// multi-byte text never splits inside a character.
//
// A Chunker holds only its configuration and may be shared between
// goroutines.
package chunking
