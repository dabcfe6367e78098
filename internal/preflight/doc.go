// Package preflight provides readiness checks for the external tools and
// filesystem paths the transcriber depends on.
//
// These checks run in two contexts:
//   - The pipeline calls RunAll before a batch so a missing tool or an
//     unwritable output directory fails fast instead of after the first
//     multi-minute transcription.
//   - The CLI "transcriber check" command renders every result as a table.
package preflight
