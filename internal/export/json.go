package export

import (
	"encoding/json"
	"fmt"
	"io"

	"transcriber/internal/transcript"
)

// WriteJSON writes the transcript as a 2-space indented document. Non-ASCII
// text and HTML characters are written verbatim.
func WriteJSON(w io.Writer, t transcript.Transcript) error {
	if t.Segments == nil {
		t.Segments = []transcript.Segment{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	return nil
}

// WriteJSONL writes one chunk object per line.
func WriteJSONL(w io.Writer, chunks []transcript.Chunk) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, chunk := range chunks {
		if chunk.SegmentIDs == nil {
			chunk.SegmentIDs = []int{}
		}
		if err := enc.Encode(chunk); err != nil {
			return fmt.Errorf("encode chunk %d: %w", chunk.ChunkID, err)
		}
	}
	return nil
}

// ReadJSON decodes a transcript document written by WriteJSON.
func ReadJSON(r io.Reader) (transcript.Transcript, error) {
	var t transcript.Transcript
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return transcript.Transcript{}, fmt.Errorf("decode transcript: %w", err)
	}
	if t.Segments == nil {
		t.Segments = []transcript.Segment{}
	}
	return t, nil
}

// ReadJSONL decodes chunks written by WriteJSONL.
func ReadJSONL(r io.Reader) ([]transcript.Chunk, error) {
	dec := json.NewDecoder(r)
	chunks := []transcript.Chunk{}
	for {
		var chunk transcript.Chunk
		if err := dec.Decode(&chunk); err != nil {
			if err == io.EOF {
				return chunks, nil
			}
			return nil, fmt.Errorf("decode chunk %d: %w", len(chunks), err)
		}
		chunks = append(chunks, chunk)
	}
}
