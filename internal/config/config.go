package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir   string `toml:"output_dir"`
	LogDir      string `toml:"log_dir"`
	CatalogPath string `toml:"catalog_path"`
}

// Transcription contains configuration for the WhisperX speech recognizer.
type Transcription struct {
	Model       string `toml:"model"`
	Language    string `toml:"language"`
	ComputeType string `toml:"compute_type"`
	BeamSize    int    `toml:"beam_size"`
	VAD         bool   `toml:"vad"`
	VADMethod   string `toml:"vad_method"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	HFToken     string `toml:"hf_token"`
}

// Normalize contains configuration for transcript text cleanup.
type Normalize struct {
	Enabled       bool   `toml:"enabled"`
	GlossaryPath  string `toml:"glossary_path"`
	RemoveFillers bool   `toml:"remove_fillers"`
}

// Chunking contains the sliding window sizes, measured in characters.
type Chunking struct {
	TargetChars  int `toml:"target_chars"`
	OverlapChars int `toml:"overlap_chars"`
}

// Export contains configuration for written artifacts.
type Export struct {
	Formats    []string `toml:"formats"`
	NamePrefix string   `toml:"name_prefix"`
}

// Batch contains configuration for directory processing.
type Batch struct {
	Pattern       string `toml:"pattern"`
	SkipProcessed bool   `toml:"skip_processed"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for transcriber.
//
// Configuration sections by subsystem:
//   - Paths: output, log, and catalog locations
//   - Transcription: WhisperX model and decoding settings
//   - Normalize: glossary and filler-word cleanup
//   - Chunking: RAG chunk window sizes
//   - Export: artifact formats and file naming
//   - Batch: directory scan pattern and skip behaviour
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Transcription Transcription `toml:"transcription"`
	Normalize     Normalize     `toml:"normalize"`
	Chunking      Chunking      `toml:"chunking"`
	Export        Export        `toml:"export"`
	Batch         Batch         `toml:"batch"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dir := filepath.Dir(c.Paths.CatalogPath); strings.TrimSpace(c.Paths.CatalogPath) != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

// FFmpegBinary returns the ffmpeg executable name used for audio extraction.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// WhisperXBinary returns the launcher used to run WhisperX.
func (c *Config) WhisperXBinary() string {
	return "uvx"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
