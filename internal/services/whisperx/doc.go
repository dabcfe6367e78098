// Package whisperx runs WhisperX speech recognition through uvx and converts
// its JSON output into a transcript.Transcript.
//
// A transcription extracts the selected audio stream to mono 16 kHz WAV with
// ffmpeg, invokes WhisperX on the WAV inside a throwaway work directory, and
// reads back the JSON result. Segments get sequential ids and trimmed text,
// the detected language is mapped to ISO 639-1, and the transcript duration is
// the end of the last segment.
//
// Configuration options (model, device, compute type, beam size, VAD) are
// passed via Config. Command execution is injectable for tests.
package whisperx
