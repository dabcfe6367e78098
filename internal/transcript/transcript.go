package transcript

import "strings"

// Segment is a timestamped span of recognized speech.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Chunk is an overlapping text window over the concatenated segment text,
// carrying the time range and segment provenance needed to map it back to
// the source media.
type Chunk struct {
	ChunkID    int     `json:"chunk_id"`
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	SegmentIDs []int   `json:"segment_ids"`
	CharCount  int     `json:"char_count"`
	SourceFile *string `json:"source_file"`
}

// Source returns the source file name or an empty string when unset.
func (c Chunk) Source() string {
	if c.SourceFile == nil {
		return ""
	}
	return *c.SourceFile
}

// Transcript bundles the engine output with transcript-level metadata.
type Transcript struct {
	Segments []Segment `json:"segments"`
	Language *string   `json:"language"`
	Duration *float64  `json:"duration"`
}

// New builds a transcript. An empty language and a negative duration are
// recorded as unknown.
func New(segments []Segment, language string, duration float64) Transcript {
	t := Transcript{Segments: segments}
	if segments == nil {
		t.Segments = []Segment{}
	}
	if lang := strings.TrimSpace(language); lang != "" {
		t.Language = &lang
	}
	if duration >= 0 {
		d := duration
		t.Duration = &d
	}
	return t
}

// LanguageCode returns the detected language or an empty string.
func (t Transcript) LanguageCode() string {
	if t.Language == nil {
		return ""
	}
	return *t.Language
}

// DurationSeconds returns the recorded duration, falling back to the end of
// the last segment when no duration was recorded.
func (t Transcript) DurationSeconds() float64 {
	if t.Duration != nil {
		return *t.Duration
	}
	if len(t.Segments) == 0 {
		return 0
	}
	return t.Segments[len(t.Segments)-1].End
}

// Text joins the trimmed text of all non-empty segments with single spaces.
func (t Transcript) Text() string {
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// SegmentByID returns the segment carrying the given id.
func (t Transcript) SegmentByID(id int) (Segment, bool) {
	for _, seg := range t.Segments {
		if seg.ID == id {
			return seg, true
		}
	}
	return Segment{}, false
}

// StringPtr returns a pointer to value, or nil when value is empty.
func StringPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
