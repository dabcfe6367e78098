package catalog

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("catalog: run not found")

// Status is the final state of a run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is a single processed-file record.
type Run struct {
	ID           string    `json:"id"`
	InputPath    string    `json:"input_path"`
	InputSize    int64     `json:"input_size"`
	InputModTime time.Time `json:"input_mod_time"`
	Status       Status    `json:"status"`
	FailureKind  string    `json:"failure_kind,omitempty"`
	ErrorMessage string    `json:"error,omitempty"`
	OutputBase   string    `json:"output_base"`
	// Outputs maps export format names to written file paths.
	Outputs         map[string]string `json:"outputs,omitempty"`
	Model           string            `json:"model"`
	Language        string            `json:"language,omitempty"`
	DurationSeconds float64           `json:"duration_seconds"`
	SegmentCount    int               `json:"segment_count"`
	ChunkCount      int               `json:"chunk_count"`
	StartedAt       time.Time         `json:"started_at"`
	FinishedAt      time.Time         `json:"finished_at"`
}

// Elapsed returns the wall-clock time the run took.
func (r Run) Elapsed() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Fingerprint identifies the input file version a run processed.
type Fingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// ListOptions filters List results.
type ListOptions struct {
	// Limit caps the number of runs returned; zero means no limit.
	Limit int
	// Status restricts results to one status when set.
	Status Status
}
