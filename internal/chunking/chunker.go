package chunking

import (
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"transcriber/internal/logging"
	"transcriber/internal/transcript"
)

// Default window sizes used by the CLI when nothing is configured.
const (
	DefaultTargetChars  = 1200
	DefaultOverlapChars = 200
)

// Stats summarizes a single chunking call.
type Stats struct {
	Segments   int
	Chunks     int
	Characters int
}

// Option customizes a Chunker.
type Option func(*Chunker)

// WithObserver registers a callback invoked with the stats of every call.
func WithObserver(fn func(Stats)) Option {
	return func(c *Chunker) {
		c.observer = fn
	}
}

// WithLogger logs a summary line after every call.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chunker) {
		c.logger = logger
	}
}

// Chunker produces overlapping, timestamped text windows from segments.
type Chunker struct {
	targetChars  int
	overlapChars int
	stride       int
	observer     func(Stats)
	logger       *slog.Logger
}

// New validates the window sizes and returns a Chunker. It fails with a
// *ConfigurationError when overlapChars is not smaller than targetChars.
func New(targetChars, overlapChars int, opts ...Option) (*Chunker, error) {
	if err := ValidateWindow(targetChars, overlapChars); err != nil {
		return nil, err
	}
	c := &Chunker{
		targetChars:  targetChars,
		overlapChars: overlapChars,
		stride:       targetChars - overlapChars,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	return c, nil
}

// TargetChars returns the window size.
func (c *Chunker) TargetChars() int { return c.targetChars }

// OverlapChars returns the overlap between consecutive windows.
func (c *Chunker) OverlapChars() int { return c.overlapChars }

// Stride returns how far the window advances per chunk.
func (c *Chunker) Stride() int { return c.stride }

// span records which rune offsets of the joined text a segment owns.
type span struct {
	start int
	end   int
	index int
}

// Chunk splits segments into overlapping chunks. An empty sourceFile leaves
// Chunk.SourceFile unset. The input slice is not modified.
func (c *Chunker) Chunk(segments []transcript.Segment, sourceFile string) []transcript.Chunk {
	chunks := []transcript.Chunk{}
	if len(segments) == 0 {
		c.report(Stats{})
		return chunks
	}

	runes, spans := joinSegments(segments)
	total := len(runes)
	source := transcript.StringPtr(sourceFile)

	for offset := 0; offset < total; offset += c.stride {
		end := offset + c.targetChars
		if end > total {
			end = total
		}

		text := strings.TrimSpace(string(runes[offset:end]))
		if text == "" {
			break
		}

		members := windowMembers(spans, offset, end)
		if len(members) > 0 {
			ordered := make([]transcript.Segment, 0, len(members))
			for _, idx := range members {
				ordered = append(ordered, segments[idx])
			}
			sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

			ids := make([]int, len(ordered))
			for i, seg := range ordered {
				ids[i] = seg.ID
			}
			chunks = append(chunks, transcript.Chunk{
				ChunkID:    len(chunks),
				Text:       text,
				Start:      ordered[0].Start,
				End:        ordered[len(ordered)-1].End,
				SegmentIDs: ids,
				CharCount:  len([]rune(text)),
				SourceFile: source,
			})
		}

		if end >= total {
			break
		}
	}

	c.report(Stats{Segments: len(segments), Chunks: len(chunks), Characters: total})
	return chunks
}

func (c *Chunker) report(stats Stats) {
	if c.observer != nil {
		c.observer(stats)
	}
	c.logger.Debug("chunked segments",
		logging.Int("segments", stats.Segments),
		logging.Int("chunks", stats.Chunks),
		logging.Int("characters", stats.Characters),
		logging.Int("target_chars", c.targetChars),
		logging.Int("overlap_chars", c.overlapChars),
	)
}

// joinSegments concatenates segment text, each followed by one space, and
// strips the result. Spans are shifted by the stripped prefix and clipped to
// the stripped length so they index the returned runes.
func joinSegments(segments []transcript.Segment) ([]rune, []span) {
	var builder strings.Builder
	spans := make([]span, 0, len(segments))
	offset := 0
	for i, seg := range segments {
		piece := seg.Text + " "
		builder.WriteString(piece)
		width := len([]rune(piece))
		spans = append(spans, span{start: offset, end: offset + width, index: i})
		offset += width
	}

	runes := []rune(builder.String())
	lead := 0
	for lead < len(runes) && unicode.IsSpace(runes[lead]) {
		lead++
	}
	tail := len(runes)
	for tail > lead && unicode.IsSpace(runes[tail-1]) {
		tail--
	}
	runes = runes[lead:tail]

	total := len(runes)
	for i := range spans {
		spans[i].start = clamp(spans[i].start-lead, 0, total)
		spans[i].end = clamp(spans[i].end-lead, 0, total)
	}
	return runes, spans
}

// windowMembers returns the indexes of segments owning at least one offset
// in [start, end). Spans are contiguous and ordered by offset.
func windowMembers(spans []span, start, end int) []int {
	first := sort.Search(len(spans), func(i int) bool { return spans[i].end > start })
	var members []int
	for i := first; i < len(spans) && spans[i].start < end; i++ {
		if spans[i].end <= spans[i].start {
			continue
		}
		members = append(members, spans[i].index)
	}
	return members
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ChunkTranscript builds a Chunker and chunks segments in one call.
func ChunkTranscript(segments []transcript.Segment, targetChars, overlapChars int, sourceFile string) ([]transcript.Chunk, error) {
	chunker, err := New(targetChars, overlapChars)
	if err != nil {
		return nil, err
	}
	return chunker.Chunk(segments, sourceFile), nil
}
