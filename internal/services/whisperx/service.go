package whisperx

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	langpkg "transcriber/internal/language"
	"transcriber/internal/logging"
	"transcriber/internal/services"
	"transcriber/internal/transcript"
)

// CommandRunner executes an external command. onLine, when non-nil, receives
// each line the command writes to stdout as it is produced.
type CommandRunner func(ctx context.Context, onLine func(string), name string, args ...string) error

// Request carries per-file transcription options.
type Request struct {
	// Language forces the spoken language; empty lets WhisperX detect it.
	Language string
	// AudioIndex is the absolute stream index to transcribe, or -1 for the
	// first audio stream.
	AudioIndex int
	// Progress is invoked while WhisperX runs, once per decoded segment, with
	// the segment end time and the running segment count.
	Progress func(currentSec float64, segmentCount int)
}

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg           Config
	ffmpegBinary  string
	uvxBinary     string
	commandRunner CommandRunner
	logger        *slog.Logger
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, ffmpegBinary string, logger *slog.Logger) *Service {
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		cfg:          cfg,
		ffmpegBinary: ffmpegBinary,
		uvxBinary:    UVXCommand,
		logger:       logger,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Device returns the inference device WhisperX is asked to use.
func (s *Service) Device() string {
	if s.cfg.CUDAEnabled {
		return CUDADevice
	}
	return CPUDevice
}

// ComputeType returns the configured compute type or the device default.
func (s *Service) ComputeType() string {
	if s.cfg.ComputeType != "" {
		return s.cfg.ComputeType
	}
	if s.cfg.CUDAEnabled {
		return CUDAComputeType
	}
	return CPUComputeType
}

// run executes a command, using the custom runner if set. Stdout is read line
// by line while the command runs; stderr is kept for the error message.
func (s *Service) run(ctx context.Context, onLine func(string), name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, onLine, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	env := os.Environ()
	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		env = append(env, "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}
	// Python block-buffers a piped stdout, which would hold back segment lines.
	cmd.Env = append(env, "PYTHONUNBUFFERED=1")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if onLine != nil {
			onLine(scanner.Text())
		}
	}
	scanErr := scanner.Err()
	if scanErr != nil {
		_, _ = io.Copy(io.Discard, stdout)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, tailText(stderr.String(), maxErrorOutput))
	}
	if scanErr != nil {
		return fmt.Errorf("%s: read output: %w", name, scanErr)
	}
	return nil
}

const maxErrorOutput = 4096

// tailText trims text and keeps at most limit trailing bytes.
func tailText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	return "..." + text[len(text)-limit:]
}

func (s *Service) extractAudio(ctx context.Context, source string, audioIndex int, dest string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, nil, s.ffmpegBinary, buildExtractArgs(source, audioIndex, dest)...)
	}
	return ExtractAudio(ctx, s.ffmpegBinary, source, audioIndex, dest)
}

// Transcribe extracts audio from source, runs WhisperX on it, and returns
// the resulting transcript. Intermediate files live in a temporary work
// directory that is removed before returning.
func (s *Service) Transcribe(ctx context.Context, source string, req Request) (transcript.Transcript, error) {
	if strings.TrimSpace(source) == "" {
		return transcript.Transcript{}, services.Wrap(services.ErrValidation, "transcribe", "", "source path required", nil)
	}

	workDir, err := os.MkdirTemp("", "transcriber-whisperx-*")
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("transcribe: create work dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	audioPath := filepath.Join(workDir, "audio.wav")
	if err := s.extractAudio(ctx, source, req.AudioIndex, audioPath); err != nil {
		return transcript.Transcript{}, services.Wrap(services.ErrExternalTool, "transcribe", "extract audio", "", err)
	}

	args := s.buildArgs(audioPath, workDir, req.Language)
	s.logger.Debug("running whisperx",
		logging.String("model", s.Model()),
		logging.String("device", s.Device()),
		logging.String("compute_type", s.ComputeType()),
		logging.String("input", source),
	)
	decoded := 0
	onLine := func(line string) {
		_, end, ok := ParseSegmentLine(line)
		if !ok {
			return
		}
		decoded++
		if req.Progress != nil {
			req.Progress(end, decoded)
		}
	}
	if err := s.run(ctx, onLine, s.uvxBinary, args...); err != nil {
		return transcript.Transcript{}, services.Wrap(services.ErrExternalTool, "transcribe", "whisperx", "", err)
	}

	result, err := LoadResult(filepath.Join(workDir, "audio.json"))
	if err != nil {
		return transcript.Transcript{}, services.Wrap(services.ErrExternalTool, "transcribe", "read whisperx output", "", err)
	}

	language := langpkg.ToISO2(result.Language)
	if language == "" {
		language = langpkg.ToISO2(req.Language)
	}
	out := ToTranscript(result.Segments, language)
	if req.Progress != nil && len(out.Segments) > 0 && decoded != len(out.Segments) {
		req.Progress(out.DurationSeconds(), len(out.Segments))
	}
	s.logger.Info("whisperx transcription complete",
		logging.Int("segments", len(out.Segments)),
		logging.String("language", out.LanguageCode()),
		logging.Float64("duration_seconds", out.DurationSeconds()),
	)
	return out, nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir, language string) []string {
	args := make([]string, 0, 40)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	beamSize := s.cfg.BeamSize
	if beamSize <= 0 {
		beamSize = DefaultBeamSize
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
		"--chunk_size", ChunkSize,
		"--beam_size", strconv.Itoa(beamSize),
		"--best_of", BestOf,
		"--temperature", Temperature,
		"--patience", Patience,
		"--verbose", Verbose,
	)

	if s.cfg.VAD {
		args = append(args, "--vad_onset", VADOnset, "--vad_offset", VADOffset)
		vadMethod := s.cfg.VADMethod
		if vadMethod == "" {
			vadMethod = VADMethodSilero
		}
		args = append(args, "--vad_method", vadMethod)
		if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
			args = append(args, "--hf_token", s.cfg.HFToken)
		}
	} else {
		args = append(args, "--vad_onset", VADDisabled, "--vad_offset", VADDisabled)
	}

	if lang := langpkg.ToISO2(language); lang != "" {
		args = append(args, "--language", lang)
	}

	args = append(args, "--device", s.Device(), "--compute_type", s.ComputeType())
	return args
}

// Segment represents a transcribed segment from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Result is the subset of the WhisperX JSON document this package reads.
type Result struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// LoadResult loads a WhisperX JSON file.
func LoadResult(jsonPath string) (Result, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return Result{}, err
	}
	var payload Result
	if err := json.Unmarshal(data, &payload); err != nil {
		return Result{}, fmt.Errorf("parse whisperx json: %w", err)
	}
	return payload, nil
}

// ToTranscript converts WhisperX segments into a transcript with sequential
// ids and trimmed text. Duration is the end of the last segment, or 0 for an
// empty result.
func ToTranscript(segments []Segment, language string) transcript.Transcript {
	converted := make([]transcript.Segment, 0, len(segments))
	for i, seg := range segments {
		converted = append(converted, transcript.Segment{
			ID:    i,
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	duration := 0.0
	if n := len(converted); n > 0 {
		duration = converted[n-1].End
	}
	return transcript.New(converted, language, duration)
}

// segmentLinePattern matches the "[start --> end]" prefix WhisperX prints for
// each segment in verbose mode. Times are plain seconds or [HH:]MM:SS.mmm.
var segmentLinePattern = regexp.MustCompile(`\[\s*([0-9][0-9:.]*)\s*-->\s*([0-9][0-9:.]*)\s*\]`)

// ParseSegmentLine extracts the segment times from one line of verbose
// WhisperX output.
func ParseSegmentLine(line string) (start, end float64, ok bool) {
	m := segmentLinePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	start, okStart := parseClock(m[1])
	end, okEnd := parseClock(m[2])
	if !okStart || !okEnd {
		return 0, 0, false
	}
	return start, end, true
}

func parseClock(value string) (float64, bool) {
	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, false
	}
	total := 0.0
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0, false
		}
		total = total*60 + v
	}
	return total, true
}
