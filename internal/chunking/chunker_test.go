package chunking

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"transcriber/internal/transcript"
)

func sampleSegments() []transcript.Segment {
	return []transcript.Segment{
		{ID: 0, Start: 0.0, End: 5.0, Text: "This is the first segment."},
		{ID: 1, Start: 5.0, End: 10.0, Text: "This is the second segment."},
		{ID: 2, Start: 10.0, End: 15.0, Text: "This is the third segment."},
		{ID: 3, Start: 15.0, End: 20.0, Text: "This is the fourth segment."},
		{ID: 4, Start: 20.0, End: 25.0, Text: "This is the fifth segment."},
	}
}

func mustChunker(t *testing.T, target, overlap int, opts ...Option) *Chunker {
	t.Helper()
	c, err := New(target, overlap, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", target, overlap, err)
	}
	return c
}

func segmentByID(t *testing.T, segments []transcript.Segment, id int) transcript.Segment {
	t.Helper()
	for _, seg := range segments {
		if seg.ID == id {
			return seg
		}
	}
	t.Fatalf("segment %d not found", id)
	return transcript.Segment{}
}

func assertChunkInvariants(t *testing.T, segments []transcript.Segment, chunks []transcript.Chunk) {
	t.Helper()
	for i, chunk := range chunks {
		if chunk.ChunkID != i {
			t.Fatalf("chunk %d has id %d", i, chunk.ChunkID)
		}
		if chunk.Text == "" {
			t.Fatalf("chunk %d has empty text", i)
		}
		if chunk.CharCount != len([]rune(chunk.Text)) {
			t.Fatalf("chunk %d char_count %d != len(text) %d", i, chunk.CharCount, len([]rune(chunk.Text)))
		}
		if len(chunk.SegmentIDs) == 0 {
			t.Fatalf("chunk %d has no segment ids", i)
		}
		for j := 1; j < len(chunk.SegmentIDs); j++ {
			if chunk.SegmentIDs[j] <= chunk.SegmentIDs[j-1] {
				t.Fatalf("chunk %d segment ids not strictly ascending: %v", i, chunk.SegmentIDs)
			}
		}
		first := segmentByID(t, segments, chunk.SegmentIDs[0])
		last := segmentByID(t, segments, chunk.SegmentIDs[len(chunk.SegmentIDs)-1])
		if chunk.Start != first.Start {
			t.Fatalf("chunk %d start %v, want %v", i, chunk.Start, first.Start)
		}
		if chunk.End != last.End {
			t.Fatalf("chunk %d end %v, want %v", i, chunk.End, last.End)
		}
	}
}

func TestNewRejectsOverlapNotSmallerThanTarget(t *testing.T) {
	for _, overlap := range []int{50, 60} {
		_, err := New(50, overlap)
		if err == nil {
			t.Fatalf("expected error for overlap %d", overlap)
		}
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected *ConfigurationError, got %T", err)
		}
		if !errors.Is(err, ErrConfiguration) {
			t.Fatalf("expected errors.Is ErrConfiguration for %v", err)
		}
		if cfgErr.OverlapChars != overlap || cfgErr.TargetChars != 50 {
			t.Fatalf("unexpected error fields: %+v", cfgErr)
		}
	}
}

func TestNewRejectsNonPositiveTarget(t *testing.T) {
	if _, err := New(0, 0); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := New(10, -1); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error for negative overlap, got %v", err)
	}
}

func TestStride(t *testing.T) {
	c := mustChunker(t, 50, 10)
	if c.Stride() != 40 {
		t.Fatalf("expected stride 40, got %d", c.Stride())
	}
	if c.TargetChars() != 50 || c.OverlapChars() != 10 {
		t.Fatalf("unexpected sizes %d/%d", c.TargetChars(), c.OverlapChars())
	}
}

func TestChunkEmptyInput(t *testing.T) {
	c := mustChunker(t, 50, 10)
	chunks := c.Chunk(nil, "")
	if chunks == nil || len(chunks) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", chunks)
	}
}

func TestChunkMultipleSegments(t *testing.T) {
	segments := sampleSegments()
	c := mustChunker(t, 50, 10)
	chunks := c.Chunk(segments, "")

	if len(chunks) < 2 {
		t.Fatalf("expected more than one chunk, got %d", len(chunks))
	}
	assertChunkInvariants(t, segments, chunks)
	for i := 0; i+1 < len(chunks); i++ {
		if chunks[i+1].Start > chunks[i].End {
			t.Fatalf("chunk %d starts at %v after chunk %d ends at %v", i+1, chunks[i+1].Start, i, chunks[i].End)
		}
	}
	for _, chunk := range chunks {
		if chunk.SourceFile != nil {
			t.Fatalf("expected no source file, got %q", *chunk.SourceFile)
		}
		if chunk.End <= chunk.Start {
			t.Fatalf("expected positive time range, got %v-%v", chunk.Start, chunk.End)
		}
	}
}

func TestChunkWindowsAreExact(t *testing.T) {
	segments := sampleSegments()
	c := mustChunker(t, 50, 10)
	chunks := c.Chunk(segments, "")

	joined := strings.TrimSpace(func() string {
		var b strings.Builder
		for _, seg := range segments {
			b.WriteString(seg.Text + " ")
		}
		return b.String()
	}())

	want := []struct {
		start, end int
		ids        []int
	}{
		{0, 50, []int{0, 1}},
		{40, 90, []int{1, 2, 3}},
		{80, 130, []int{2, 3, 4}},
		{120, len(joined), []int{4}},
	}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i, w := range want {
		if chunks[i].Text != strings.TrimSpace(joined[w.start:w.end]) {
			t.Fatalf("chunk %d text %q, want %q", i, chunks[i].Text, strings.TrimSpace(joined[w.start:w.end]))
		}
		if len(chunks[i].SegmentIDs) != len(w.ids) {
			t.Fatalf("chunk %d ids %v, want %v", i, chunks[i].SegmentIDs, w.ids)
		}
		for j := range w.ids {
			if chunks[i].SegmentIDs[j] != w.ids[j] {
				t.Fatalf("chunk %d ids %v, want %v", i, chunks[i].SegmentIDs, w.ids)
			}
		}
	}
}

func TestChunkSingleShortSegment(t *testing.T) {
	segments := []transcript.Segment{{ID: 0, Start: 0, End: 5, Text: "Short text."}}
	c := mustChunker(t, 50, 10)
	chunks := c.Chunk(segments, "")
	if len(chunks) != 1 {
		t.Fatalf("expected exactly one chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "Short text." {
		t.Fatalf("unexpected text %q", chunks[0].Text)
	}
	if chunks[0].Start != 0 || chunks[0].End != 5 {
		t.Fatalf("unexpected range %v-%v", chunks[0].Start, chunks[0].End)
	}
}

func TestChunkSourceFile(t *testing.T) {
	c := mustChunker(t, 50, 10)
	chunks := c.Chunk(sampleSegments(), "test.mp4")
	for _, chunk := range chunks {
		if chunk.Source() != "test.mp4" {
			t.Fatalf("expected source file test.mp4, got %q", chunk.Source())
		}
	}
}

func TestChunkLongSegmentsStayNearTarget(t *testing.T) {
	long := strings.Repeat("A", 100)
	segments := []transcript.Segment{
		{ID: 0, Start: 0, End: 10, Text: long},
		{ID: 1, Start: 10, End: 20, Text: long},
		{ID: 2, Start: 20, End: 30, Text: long},
	}
	c := mustChunker(t, 150, 30)
	chunks := c.Chunk(segments, "")
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	assertChunkInvariants(t, segments, chunks)
	for _, chunk := range chunks {
		if float64(chunk.CharCount) > float64(c.TargetChars())*1.1 {
			t.Fatalf("chunk %d too large: %d", chunk.ChunkID, chunk.CharCount)
		}
	}
}

func TestChunkOrdersSegmentIDsRegardlessOfInputOrder(t *testing.T) {
	segments := []transcript.Segment{
		{ID: 2, Start: 10, End: 15, Text: "third"},
		{ID: 0, Start: 0, End: 5, Text: "first"},
		{ID: 1, Start: 5, End: 10, Text: "second"},
	}
	c := mustChunker(t, 100, 10)
	chunks := c.Chunk(segments, "")
	if len(chunks) != 1 {
		t.Fatalf("expected one chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "third first second" {
		t.Fatalf("text should follow input order, got %q", chunks[0].Text)
	}
	ids := chunks[0].SegmentIDs
	if len(ids) != 3 || ids[0] != 0 || ids[1] != 1 || ids[2] != 2 {
		t.Fatalf("expected ids sorted ascending, got %v", ids)
	}
	if chunks[0].Start != 0 || chunks[0].End != 15 {
		t.Fatalf("unexpected range %v-%v", chunks[0].Start, chunks[0].End)
	}
}

func TestChunkCountsRunesNotBytes(t *testing.T) {
	segments := []transcript.Segment{
		{ID: 0, Start: 0, End: 1, Text: "héllo wörld ünïcode"},
		{ID: 1, Start: 1, End: 2, Text: "ça marche très bien"},
	}
	c := mustChunker(t, 12, 4)
	chunks := c.Chunk(segments, "")
	assertChunkInvariants(t, segments, chunks)
	for _, chunk := range chunks {
		if chunk.CharCount > 12 {
			t.Fatalf("chunk exceeds window in runes: %q (%d)", chunk.Text, chunk.CharCount)
		}
		if !utf8.ValidString(chunk.Text) {
			t.Fatalf("chunk split a multi-byte rune: %q", chunk.Text)
		}
	}
}

func TestChunkLeadingWhitespaceKeepsMapping(t *testing.T) {
	segments := []transcript.Segment{
		{ID: 0, Start: 0, End: 1, Text: "     aaaa"},
		{ID: 1, Start: 1, End: 2, Text: "bbbb"},
	}
	c := mustChunker(t, 4, 1)
	chunks := c.Chunk(segments, "")
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	if chunks[0].Text != "aaaa" {
		t.Fatalf("unexpected first chunk %q", chunks[0].Text)
	}
	if len(chunks[0].SegmentIDs) != 1 || chunks[0].SegmentIDs[0] != 0 {
		t.Fatalf("first window should belong to segment 0 only, got %v", chunks[0].SegmentIDs)
	}
	last := chunks[len(chunks)-1]
	if last.SegmentIDs[len(last.SegmentIDs)-1] != 1 {
		t.Fatalf("last chunk should include segment 1, got %v", last.SegmentIDs)
	}
}

func TestChunkCoversAllText(t *testing.T) {
	segments := sampleSegments()
	for _, size := range [][2]int{{10, 0}, {20, 5}, {33, 32}, {500, 100}} {
		c := mustChunker(t, size[0], size[1])
		chunks := c.Chunk(segments, "")
		assertChunkInvariants(t, segments, chunks)
		seen := map[int]bool{}
		for _, chunk := range chunks {
			for _, id := range chunk.SegmentIDs {
				seen[id] = true
			}
		}
		for _, seg := range segments {
			if !seen[seg.ID] {
				t.Fatalf("target=%d overlap=%d: segment %d never assigned", size[0], size[1], seg.ID)
			}
		}
		if last := chunks[len(chunks)-1]; last.End != segments[len(segments)-1].End {
			t.Fatalf("target=%d overlap=%d: last chunk ends at %v", size[0], size[1], last.End)
		}
	}
}

func TestChunkWhitespaceOnlySegments(t *testing.T) {
	c := mustChunker(t, 10, 2)
	chunks := c.Chunk([]transcript.Segment{{ID: 0, Start: 0, End: 1, Text: "   "}}, "")
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks for blank text, got %d", len(chunks))
	}
}

func TestObserverReceivesStats(t *testing.T) {
	var got Stats
	calls := 0
	c := mustChunker(t, 50, 10, WithObserver(func(s Stats) {
		calls++
		got = s
	}))
	chunks := c.Chunk(sampleSegments(), "")
	if calls != 1 {
		t.Fatalf("expected one observer call, got %d", calls)
	}
	if got.Segments != 5 || got.Chunks != len(chunks) || got.Characters == 0 {
		t.Fatalf("unexpected stats %+v", got)
	}
}

func TestChunkTranscriptConvenience(t *testing.T) {
	chunks, err := ChunkTranscript(sampleSegments(), 50, 10, "")
	if err != nil {
		t.Fatalf("ChunkTranscript: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	if _, err := ChunkTranscript(sampleSegments(), 10, 10, ""); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
