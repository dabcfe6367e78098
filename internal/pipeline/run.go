package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"transcriber/internal/catalog"
	"transcriber/internal/export"
	"transcriber/internal/logging"
	"transcriber/internal/media/audio"
	"transcriber/internal/media/ffprobe"
	"transcriber/internal/services"
	"transcriber/internal/services/whisperx"
	"transcriber/internal/textutil"
	"transcriber/internal/transcript"
)

// Run processes a single media file end to end and records the outcome in
// the catalog. The returned Result is non-nil even on failure and carries
// whatever the run produced before failing.
func (p *Pipeline) Run(ctx context.Context, input string) (*Result, error) {
	return p.runIndexed(ctx, input, 0, 0)
}

func (p *Pipeline) runIndexed(ctx context.Context, input string, index, total int) (*Result, error) {
	started := time.Now()
	res := &Result{
		RunID:      catalog.NewRunID(),
		Input:      input,
		OutputBase: textutil.OutputBaseName(input, p.cfg.Export.NamePrefix),
		Audio:      audio.Selection{Index: -1},
	}
	ctx = logging.WithRunID(ctx, res.RunID)
	ctx = logging.WithInput(ctx, input)
	logger := logging.WithContext(ctx, p.logger)

	logger.Info("processing started",
		logging.String("output_base", res.OutputBase),
		logging.String("model", p.cfg.Transcription.Model),
	)

	err := p.run(ctx, logger, res, index, total)
	res.Elapsed = time.Since(started)
	p.record(ctx, logger, res, started, err)
	if err != nil {
		logging.ErrorWithContext(logger, "processing failed", "run_failed",
			logging.Error(err),
			logging.String("failure_kind", services.FailureKind(err)),
		)
		return res, err
	}
	logger.Info("processing complete",
		logging.Int("segments", len(res.Transcript.Segments)),
		logging.Int("chunks", len(res.Chunks)),
		logging.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger, res *Result, index, total int) error {
	if p.engine == nil {
		return services.Wrap(services.ErrConfiguration, "transcribe", "", "no transcription engine configured", nil)
	}
	if err := ffprobe.ValidateFile(res.Input); err != nil {
		return services.Wrap(services.ErrValidation, "validate", "", "", err)
	}

	base := Progress{Input: res.Input, Index: index, Total: total, Percent: -1}

	duration := 0.0
	if p.probe != nil {
		stage := base
		stage.Stage = StageProbe
		p.report(stage)
		probed, err := p.probe(ctx, res.Input)
		if err != nil {
			if ctx.Err() != nil {
				return services.Wrap(services.ErrCanceled, "probe", "", "", ctx.Err())
			}
			logging.WarnWithContext(logger, "media probe failed", "media_probe_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "transcription progress percentage unavailable"),
			)
		} else {
			info := probed.Summary()
			res.Media = &info
			if len(probed.Streams) > 0 && !info.HasAudio {
				return services.Wrap(services.ErrValidation, "probe", "", "input has no audio stream", nil)
			}
			res.Audio = audio.SelectSpeech(probed.Streams, p.cfg.Transcription.Language)
			duration = info.Duration
			logger.Info("media probed",
				logging.String("format", info.Format),
				logging.Float64("duration_seconds", info.Duration),
				logging.Int("audio_streams", info.AudioStreams),
				logging.String("audio_track", res.Audio.Label()),
			)
		}
	}

	t, err := p.transcribe(ctx, logger, res, base, duration)
	if err != nil {
		return err
	}
	if duration > 0 {
		media := duration
		t.Duration = &media
	}
	return p.process(ctx, logger, res, t, filepath.Base(res.Input), base)
}

func (p *Pipeline) transcribe(ctx context.Context, logger *slog.Logger, res *Result, base Progress, duration float64) (transcript.Transcript, error) {
	sampler := logging.NewProgressSampler(10)
	stage := base
	stage.Stage = StageTranscribe
	p.report(stage)

	req := whisperx.Request{
		Language:   p.cfg.Transcription.Language,
		AudioIndex: res.Audio.Index,
		Progress: func(currentSec float64, segments int) {
			update := stage
			update.Segments = segments
			if duration > 0 {
				update.Percent = min(currentSec/duration*100, 100)
			}
			if sampler.ShouldLog(update.Percent, StageTranscribe) {
				logger.Info("transcription progress",
					logging.Float64("percent", update.Percent),
					logging.Int("segments", segments),
				)
			}
			p.report(update)
		},
	}

	t, err := p.engine.Transcribe(ctx, res.Input, req)
	if err != nil {
		if ctx.Err() != nil {
			return transcript.Transcript{}, services.Wrap(services.ErrCanceled, "transcribe", "", "", err)
		}
		return transcript.Transcript{}, services.Wrap(nil, "transcribe", "", "", err)
	}
	if err := transcript.ValidateSegments(t.Segments); err != nil {
		return transcript.Transcript{}, services.Wrap(services.ErrValidation, "transcribe", "engine output", "", err)
	}
	if t.Segments == nil {
		t.Segments = []transcript.Segment{}
	}
	if len(t.Segments) == 0 {
		logging.WarnWithContext(logger, "no speech recognized", "empty_transcript",
			logging.String(logging.FieldImpact, "exports will contain no cues or chunks"),
		)
	}
	return t, nil
}

// ProcessInput names an existing transcript for ProcessTranscript.
type ProcessInput struct {
	// SourceFile is stamped on every chunk; empty leaves it unset.
	SourceFile string
	// OutputBase is the artifact base name; empty derives it from SourceFile.
	OutputBase string
}

// ProcessTranscript normalizes, chunks, and exports an already transcribed
// transcript. t is not modified. Nothing is recorded in the catalog.
func (p *Pipeline) ProcessTranscript(ctx context.Context, t transcript.Transcript, in ProcessInput) (*Result, error) {
	started := time.Now()
	if err := transcript.ValidateSegments(t.Segments); err != nil {
		return nil, services.Wrap(services.ErrValidation, "load", "", "", err)
	}
	outputBase := in.OutputBase
	if outputBase == "" {
		outputBase = textutil.OutputBaseName(in.SourceFile, p.cfg.Export.NamePrefix)
	}
	res := &Result{
		RunID:      catalog.NewRunID(),
		Input:      in.SourceFile,
		OutputBase: outputBase,
		Audio:      audio.Selection{Index: -1},
	}
	ctx = logging.WithRunID(ctx, res.RunID)
	logger := logging.WithContext(ctx, p.logger)

	err := p.process(ctx, logger, res, t, in.SourceFile, Progress{Input: in.SourceFile, Percent: -1})
	res.Elapsed = time.Since(started)
	return res, err
}

func (p *Pipeline) process(ctx context.Context, logger *slog.Logger, res *Result, t transcript.Transcript, sourceFile string, base Progress) error {
	if p.normalizer != nil {
		stage := base
		stage.Stage = StageNormalize
		p.report(stage)
		t.Segments = p.normalizer.NormalizeSegments(t.Segments)
		logger.Debug("text normalized", logging.Int("glossary_terms", p.normalizer.Terms()))
	}
	res.Transcript = t

	stage := base
	stage.Stage = StageChunk
	p.report(stage)
	res.Chunks = p.chunker.Chunk(t.Segments, sourceFile)

	if err := ctx.Err(); err != nil {
		return services.Wrap(services.ErrCanceled, "export", "", "", err)
	}
	stage.Stage = StageExport
	p.report(stage)
	outputs, err := export.ExportFormats(t, res.Chunks, p.cfg.Paths.OutputDir, res.OutputBase, p.formats)
	if err != nil {
		return services.Wrap(nil, "export", "", "", err)
	}
	res.Outputs = outputs
	for _, format := range p.formats {
		logger.Debug("artifact written",
			logging.String("format", string(format)),
			logging.String("path", outputs[format]),
		)
	}

	stage.Stage = StageDone
	stage.Percent = 100
	stage.Segments = len(t.Segments)
	p.report(stage)
	return nil
}

func (p *Pipeline) record(ctx context.Context, logger *slog.Logger, res *Result, started time.Time, runErr error) {
	if p.catalog == nil {
		return
	}
	fp, err := catalog.FingerprintFile(res.Input)
	if err != nil {
		fp = catalog.Fingerprint{Path: res.Input}
		if abs, absErr := filepath.Abs(res.Input); absErr == nil {
			fp.Path = abs
		}
	}
	run := &catalog.Run{
		ID:              res.RunID,
		InputPath:       fp.Path,
		InputSize:       fp.Size,
		InputModTime:    fp.ModTime,
		Status:          catalog.StatusCompleted,
		OutputBase:      res.OutputBase,
		Model:           p.cfg.Transcription.Model,
		Language:        res.Transcript.LanguageCode(),
		DurationSeconds: res.Transcript.DurationSeconds(),
		SegmentCount:    len(res.Transcript.Segments),
		ChunkCount:      len(res.Chunks),
		StartedAt:       started,
		FinishedAt:      started.Add(res.Elapsed),
	}
	if len(res.Outputs) > 0 {
		run.Outputs = make(map[string]string, len(res.Outputs))
		for format, path := range res.Outputs {
			run.Outputs[string(format)] = path
		}
	}
	if runErr != nil {
		run.Status = catalog.StatusFailed
		run.FailureKind = services.FailureKind(runErr)
		run.ErrorMessage = runErr.Error()
	}
	if err := p.catalog.Record(context.WithoutCancel(ctx), run); err != nil {
		logging.WarnWithContext(logger, "failed to record run", "catalog_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "the next batch will not skip this file"),
		)
	}
}

// isCanceled reports whether err stems from context cancellation.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, services.ErrCanceled)
}
