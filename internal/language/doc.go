// Package language maps the language spellings seen in config files, ffprobe
// tags, and WhisperX output onto ISO 639-1 codes.
package language
