package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"transcriber/internal/language"
)

var (
	supportedModels       = []string{"tiny", "base", "small", "medium", "large", "large-v2", "large-v3", "large-v3-turbo"}
	supportedComputeTypes = []string{"", "int8", "int8_float16", "float16", "float32"}
	supportedVADMethods   = []string{"silero", "pyannote"}
	supportedFormats      = []string{"all", "srt", "vtt", "json", "jsonl"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateChunking(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	t := c.Transcription
	if !slices.Contains(supportedModels, t.Model) {
		return fmt.Errorf("transcription.model %q is not supported (choose one of %s)", t.Model, strings.Join(supportedModels, ", "))
	}
	if !slices.Contains(supportedComputeTypes, t.ComputeType) {
		return fmt.Errorf("transcription.compute_type %q is not supported", t.ComputeType)
	}
	if t.Language != "" && !language.Known(t.Language) && len(t.Language) != 2 {
		return fmt.Errorf("transcription.language %q is not a recognized language code", t.Language)
	}
	if t.BeamSize <= 0 {
		return errors.New("transcription.beam_size must be positive")
	}
	if !slices.Contains(supportedVADMethods, t.VADMethod) {
		return fmt.Errorf("transcription.vad_method %q is not supported (choose silero or pyannote)", t.VADMethod)
	}
	if t.VAD && t.VADMethod == "pyannote" && t.HFToken == "" {
		return errors.New("transcription.hf_token must be set when transcription.vad_method is pyannote (or set HF_TOKEN)")
	}
	return nil
}

func (c *Config) validateChunking() error {
	if c.Chunking.TargetChars <= 0 {
		return errors.New("chunking.target_chars must be positive")
	}
	if c.Chunking.OverlapChars < 0 {
		return errors.New("chunking.overlap_chars must be >= 0")
	}
	if c.Chunking.OverlapChars >= c.Chunking.TargetChars {
		return fmt.Errorf("chunking.overlap_chars (%d) must be less than chunking.target_chars (%d)", c.Chunking.OverlapChars, c.Chunking.TargetChars)
	}
	return nil
}

func (c *Config) validateExport() error {
	for _, format := range c.Export.Formats {
		if !slices.Contains(supportedFormats, format) {
			return fmt.Errorf("export.formats: unsupported format %q", format)
		}
	}
	if strings.ContainsAny(c.Export.NamePrefix, `/\`) {
		return errors.New("export.name_prefix must not contain path separators")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if _, err := filepath.Match(c.Batch.Pattern, ""); err != nil {
		return fmt.Errorf("batch.pattern %q: %w", c.Batch.Pattern, err)
	}
	return nil
}
