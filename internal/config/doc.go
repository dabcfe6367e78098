// Package config loads, normalizes, and validates transcriber configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// HF_TOKEN and TRANSCRIBER_OUTPUT_DIR. The Config type centralizes every knob
// the CLI needs: transcription model settings, normalization, chunk window
// sizes, export formats, and batch behaviour.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
