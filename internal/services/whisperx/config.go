package whisperx

// Config captures runtime settings for WhisperX operations.
type Config struct {
	// Model is the Whisper model size (e.g., "medium", "large-v3").
	Model string
	// CUDAEnabled enables GPU acceleration.
	CUDAEnabled bool
	// ComputeType overrides the device default when set.
	ComputeType string
	// BeamSize is the decoder beam width; zero uses DefaultBeamSize.
	BeamSize int
	// VAD enables voice activity filtering.
	VAD bool
	// VADMethod selects the voice activity detection method ("silero" or "pyannote").
	VADMethod string
	// HFToken is the Hugging Face token for pyannote VAD.
	HFToken string
}

// WhisperX configuration constants.
const (
	DefaultModel      = "medium"
	DefaultBeamSize   = 5
	CUDAIndexURL      = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL      = "https://pypi.org/simple"
	BatchSize         = "4"
	ChunkSize         = "15"
	VADOnset          = "0.08"
	VADOffset         = "0.07"
	VADDisabled       = "0.0"
	BestOf            = "5"
	Temperature       = "0.0"
	Patience          = "1.0"
	Verbose           = "True"
	SegmentResolution = "sentence"
	OutputFormat      = "json"
	CPUDevice         = "cpu"
	CUDADevice        = "cuda"
	CPUComputeType    = "int8"
	CUDAComputeType   = "int8_float16"
	VADMethodPyannote = "pyannote"
	VADMethodSilero   = "silero"
)

// Command names for external tools.
const (
	UVXCommand    = "uvx"
	FFmpegCommand = "ffmpeg"
)
