package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"transcriber/internal/config"
	"transcriber/internal/services/whisperx"
)

// runFlags holds per-invocation overrides of the loaded configuration. Only
// flags the user actually set are applied.
type runFlags struct {
	outputDir    string
	model        string
	language     string
	computeType  string
	beamSize     int
	vad          bool
	noVAD        bool
	cuda         bool
	normalize    bool
	noNormalize  bool
	glossary     string
	targetChars  int
	overlapChars int
	formats      []string
	prefix       string
}

func (f *runFlags) registerOutput(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outputDir, "out", "o", "", "Output directory (overrides paths.output_dir)")
	cmd.Flags().StringSliceVar(&f.formats, "format", nil, "Export formats: srt, vtt, json, jsonl, or all (repeatable)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Output file name prefix (overrides export.name_prefix)")
}

func (f *runFlags) registerText(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.normalize, "normalize", false, "Apply glossary normalization and filler removal")
	cmd.Flags().BoolVar(&f.noNormalize, "no-normalize", false, "Disable text normalization")
	cmd.Flags().StringVar(&f.glossary, "glossary", "", "Glossary JSON file (replaces the bundled glossary)")
	cmd.Flags().IntVar(&f.targetChars, "target-chars", 0, "Target characters per chunk")
	cmd.Flags().IntVar(&f.overlapChars, "overlap-chars", 0, "Characters shared by consecutive chunks")
	cmd.MarkFlagsMutuallyExclusive("normalize", "no-normalize")
}

func (f *runFlags) registerTranscription(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "WhisperX model (tiny, base, small, medium, large-v3, ...)")
	cmd.Flags().StringVar(&f.language, "language", "", "Spoken language code; empty auto-detects")
	cmd.Flags().StringVar(&f.computeType, "compute-type", "", "Compute type (int8, int8_float16, float16, float32)")
	cmd.Flags().IntVar(&f.beamSize, "beam-size", 0, "Decoder beam width")
	cmd.Flags().BoolVar(&f.vad, "vad", false, "Enable voice activity detection")
	cmd.Flags().BoolVar(&f.noVAD, "no-vad", false, "Disable voice activity detection")
	cmd.Flags().BoolVar(&f.cuda, "cuda", false, "Run WhisperX on CUDA")
	cmd.MarkFlagsMutuallyExclusive("vad", "no-vad")
}

// apply returns a validated copy of base with every changed flag applied.
func (f *runFlags) apply(cmd *cobra.Command, base *config.Config) (*config.Config, error) {
	cfg := *base
	changed := cmd.Flags().Changed

	if changed("out") {
		dir, err := config.ExpandPath(f.outputDir)
		if err != nil {
			return nil, fmt.Errorf("resolve output directory: %w", err)
		}
		cfg.Paths.OutputDir = dir
	}
	if changed("format") {
		cfg.Export.Formats = append([]string(nil), f.formats...)
	}
	if changed("prefix") {
		cfg.Export.NamePrefix = f.prefix
	}
	if changed("model") {
		cfg.Transcription.Model = f.model
	}
	if changed("language") {
		cfg.Transcription.Language = f.language
	}
	if changed("compute-type") {
		cfg.Transcription.ComputeType = f.computeType
	}
	if changed("beam-size") {
		cfg.Transcription.BeamSize = f.beamSize
	}
	if changed("vad") {
		cfg.Transcription.VAD = f.vad
	}
	if changed("no-vad") && f.noVAD {
		cfg.Transcription.VAD = false
	}
	if changed("cuda") {
		cfg.Transcription.CUDAEnabled = f.cuda
	}
	if changed("normalize") {
		cfg.Normalize.Enabled = f.normalize
	}
	if changed("no-normalize") && f.noNormalize {
		cfg.Normalize.Enabled = false
	}
	if changed("glossary") {
		path, err := config.ExpandPath(f.glossary)
		if err != nil {
			return nil, fmt.Errorf("resolve glossary path: %w", err)
		}
		cfg.Normalize.GlossaryPath = path
	}
	if changed("target-chars") {
		cfg.Chunking.TargetChars = f.targetChars
	}
	if changed("overlap-chars") {
		cfg.Chunking.OverlapChars = f.overlapChars
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newEngine(cfg *config.Config, logger *slog.Logger) *whisperx.Service {
	t := cfg.Transcription
	return whisperx.NewService(whisperx.Config{
		Model:       t.Model,
		CUDAEnabled: t.CUDAEnabled,
		ComputeType: t.ComputeType,
		BeamSize:    t.BeamSize,
		VAD:         t.VAD,
		VADMethod:   t.VADMethod,
		HFToken:     t.HFToken,
	}, cfg.FFmpegBinary(), logger)
}
