package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscription()
	if err := c.normalizeNormalize(); err != nil {
		return err
	}
	c.normalizeExport()
	c.normalizeBatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("TRANSCRIBER_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.CatalogPath, err = expandPath(c.Paths.CatalogPath); err != nil {
		return fmt.Errorf("paths.catalog_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscription() {
	if value, ok := os.LookupEnv("TRANSCRIBER_MODEL"); ok && strings.TrimSpace(value) != "" {
		c.Transcription.Model = value
	}
	c.Transcription.Model = strings.ToLower(strings.TrimSpace(c.Transcription.Model))
	if c.Transcription.Model == "" {
		c.Transcription.Model = defaultModel
	}
	c.Transcription.Language = strings.ToLower(strings.TrimSpace(c.Transcription.Language))
	c.Transcription.ComputeType = strings.ToLower(strings.TrimSpace(c.Transcription.ComputeType))
	if c.Transcription.BeamSize == 0 {
		c.Transcription.BeamSize = defaultBeamSize
	}
	c.Transcription.VADMethod = strings.ToLower(strings.TrimSpace(c.Transcription.VADMethod))
	if c.Transcription.VADMethod == "" {
		c.Transcription.VADMethod = defaultVADMethod
	}
	c.Transcription.HFToken = strings.TrimSpace(c.Transcription.HFToken)
	for _, key := range []string{"HUGGING_FACE_HUB_TOKEN", "HF_TOKEN"} {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			c.Transcription.HFToken = value
			break
		}
	}
}

func (c *Config) normalizeNormalize() error {
	c.Normalize.GlossaryPath = strings.TrimSpace(c.Normalize.GlossaryPath)
	if c.Normalize.GlossaryPath == "" {
		return nil
	}
	var err error
	if c.Normalize.GlossaryPath, err = expandPath(c.Normalize.GlossaryPath); err != nil {
		return fmt.Errorf("normalize.glossary_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeExport() {
	formats := make([]string, 0, len(c.Export.Formats))
	seen := make(map[string]struct{}, len(c.Export.Formats))
	for _, format := range c.Export.Formats {
		normalized := strings.ToLower(strings.TrimSpace(format))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		formats = append(formats, normalized)
	}
	if len(formats) == 0 {
		formats = []string{defaultExportFormats}
	}
	c.Export.Formats = formats
	c.Export.NamePrefix = strings.TrimSpace(c.Export.NamePrefix)
}

func (c *Config) normalizeBatch() {
	c.Batch.Pattern = strings.TrimSpace(c.Batch.Pattern)
	if c.Batch.Pattern == "" {
		c.Batch.Pattern = defaultBatchPattern
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
