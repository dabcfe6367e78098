// Package catalog persists one record per transcription run in SQLite.
//
// The catalog answers two questions: which inputs have already been
// processed (so batch runs can skip them) and what happened on previous runs
// (the history command). A run is identified by a random UUID and keyed to
// its input by absolute path, size, and modification time, so an edited or
// replaced recording is processed again.
//
// The schema is embedded and versioned; a version mismatch fails Open with
// ErrSchemaMismatch rather than migrating, since the catalog only holds
// derived bookkeeping that can be rebuilt by reprocessing.
package catalog
