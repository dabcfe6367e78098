// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Info: the flattened summary logged before transcription
//
// Inspect executes ffprobe and returns the parsed Result. ValidateFile performs
// the cheap filesystem checks that run before any external tool is started.
package ffprobe
