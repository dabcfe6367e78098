package config

const (
	defaultConfigPath    = "~/.config/transcriber/config.toml"
	projectConfigName    = "transcriber.toml"
	defaultOutputDir     = "data/output"
	defaultLogDir        = "~/.local/share/transcriber/logs"
	defaultCatalogPath   = "~/.local/share/transcriber/catalog.db"
	defaultModel         = "medium"
	defaultBeamSize      = 5
	defaultVADMethod     = "silero"
	defaultTargetChars   = 1200
	defaultOverlapChars  = 200
	defaultNamePrefix    = "tcpcm_"
	defaultBatchPattern  = "*.mp4"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultExportFormats = "all"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:   defaultOutputDir,
			LogDir:      defaultLogDir,
			CatalogPath: defaultCatalogPath,
		},
		Transcription: Transcription{
			Model:     defaultModel,
			BeamSize:  defaultBeamSize,
			VAD:       true,
			VADMethod: defaultVADMethod,
		},
		Normalize: Normalize{
			Enabled:       true,
			RemoveFillers: true,
		},
		Chunking: Chunking{
			TargetChars:  defaultTargetChars,
			OverlapChars: defaultOverlapChars,
		},
		Export: Export{
			Formats:    []string{defaultExportFormats},
			NamePrefix: defaultNamePrefix,
		},
		Batch: Batch{
			Pattern:       defaultBatchPattern,
			SkipProcessed: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
