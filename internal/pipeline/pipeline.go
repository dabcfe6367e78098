package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"transcriber/internal/catalog"
	"transcriber/internal/chunking"
	"transcriber/internal/config"
	"transcriber/internal/export"
	"transcriber/internal/logging"
	"transcriber/internal/media/audio"
	"transcriber/internal/media/ffprobe"
	"transcriber/internal/normalize"
	"transcriber/internal/services"
	"transcriber/internal/services/whisperx"
	"transcriber/internal/transcript"
)

// Engine produces a transcript for a media file.
type Engine interface {
	Transcribe(ctx context.Context, path string, req whisperx.Request) (transcript.Transcript, error)
}

// ProbeFunc inspects a media file.
type ProbeFunc func(ctx context.Context, path string) (ffprobe.Result, error)

// Stage names reported through Progress.
const (
	StageProbe      = "probe"
	StageTranscribe = "transcribe"
	StageNormalize  = "normalize"
	StageChunk      = "chunk"
	StageExport     = "export"
	StageDone       = "done"
)

// Progress describes where a run currently is.
type Progress struct {
	Input string
	Stage string
	// Percent is the transcription progress in [0,100], or -1 when unknown.
	Percent  float64
	Segments int
	// Index and Total locate the input within a batch; both are zero for
	// single-file runs.
	Index int
	Total int
}

// Options wires a Pipeline.
type Options struct {
	Config *config.Config
	Engine Engine
	// Probe defaults to ffprobe.Inspect with the configured binary. Set
	// DisableProbe to skip probing entirely.
	Probe        ProbeFunc
	DisableProbe bool
	// Catalog is optional; without it runs are not recorded and batches
	// never skip.
	Catalog    *catalog.Store
	Logger     *slog.Logger
	OnProgress func(Progress)
}

// Pipeline processes inputs according to a fixed configuration. It is safe
// to reuse across inputs but runs one input at a time.
type Pipeline struct {
	cfg        *config.Config
	engine     Engine
	probe      ProbeFunc
	catalog    *catalog.Store
	logger     *slog.Logger
	normalizer *normalize.Normalizer
	chunker    *chunking.Chunker
	formats    []export.Format
	onProgress func(Progress)
}

// Result summarizes one processed input.
type Result struct {
	RunID      string
	Input      string
	OutputBase string
	Media      *ffprobe.Info
	Audio      audio.Selection
	Transcript transcript.Transcript
	Chunks     []transcript.Chunk
	Outputs    map[export.Format]string
	Elapsed    time.Duration
}

// New validates the configuration and builds a Pipeline. Chunk window
// errors surface as *chunking.ConfigurationError tagged with
// services.ErrConfiguration.
func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil {
		return nil, errors.New("pipeline: config is required")
	}
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	chunker, err := chunking.New(cfg.Chunking.TargetChars, cfg.Chunking.OverlapChars,
		chunking.WithLogger(logging.NewComponentLogger(logger, "chunking")))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "chunker", "", err)
	}
	formats, err := export.ParseFormats(cfg.Export.Formats)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "formats", "", err)
	}

	p := &Pipeline{
		cfg:        cfg,
		engine:     opts.Engine,
		probe:      opts.Probe,
		catalog:    opts.Catalog,
		logger:     logger,
		chunker:    chunker,
		formats:    formats,
		onProgress: opts.OnProgress,
	}
	if p.probe == nil && !opts.DisableProbe {
		binary := cfg.FFprobeBinary()
		p.probe = func(ctx context.Context, path string) (ffprobe.Result, error) {
			return ffprobe.Inspect(ctx, binary, path)
		}
	}
	if cfg.Normalize.Enabled {
		p.normalizer = normalize.New(normalize.Options{
			GlossaryPath:  cfg.Normalize.GlossaryPath,
			RemoveFillers: cfg.Normalize.RemoveFillers,
			Logger:        logging.NewComponentLogger(logger, "normalize"),
		})
	}
	return p, nil
}

// Formats returns the export formats this pipeline writes.
func (p *Pipeline) Formats() []export.Format {
	return append([]export.Format(nil), p.formats...)
}

func (p *Pipeline) report(update Progress) {
	if p.onProgress != nil {
		p.onProgress(update)
	}
}
