// Package audio picks the audio stream fed to speech recognition.
//
// Training recordings usually carry one dialogue track, but screen captures
// and re-muxed lectures may add commentary, audio description, or foreign
// dubs. SelectSpeech ranks candidates by:
//  1. Language match against the requested transcription language
//  2. Titles that do not mark commentary or description tracks
//  3. The default disposition flag
//  4. Container order
//
// Channel layout is irrelevant here since audio is downmixed to mono
// before transcription.
package audio
