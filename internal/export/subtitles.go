package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"transcriber/internal/transcript"
)

// WriteSRT renders segments as numbered SubRip cues separated by blank lines.
func WriteSRT(w io.Writer, segments []transcript.Segment) error {
	bw := bufio.NewWriter(w)
	for i, seg := range segments {
		if i > 0 {
			bw.WriteByte('\n')
		}
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n", i+1, FormatSRTTimestamp(seg.Start), FormatSRTTimestamp(seg.End), seg.Text)
	}
	return bw.Flush()
}

// WriteVTT renders segments as a WebVTT document.
func WriteVTT(w io.Writer, segments []transcript.Segment) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("WEBVTT\n")
	for _, seg := range segments {
		fmt.Fprintf(bw, "\n%s --> %s\n%s\n", FormatVTTTimestamp(seg.Start), FormatVTTTimestamp(seg.End), seg.Text)
	}
	return bw.Flush()
}

// ParseSRT reads SubRip (or WebVTT) cues into segments. Cue numbers are ignored and ids
// are assigned sequentially from 0; multi-line cue text is joined with spaces.
// Blocks without a valid timing line are skipped.
func ParseSRT(r io.Reader) ([]transcript.Segment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	segments := []transcript.Segment{}
	for _, block := range strings.Split(content, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		timing := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timing = i
				break
			}
		}
		if timing < 0 || timing > 1 {
			continue
		}
		startText, endText, _ := strings.Cut(lines[timing], "-->")
		start, err := ParseTimestamp(startText)
		if err != nil {
			continue
		}
		endFields := strings.Fields(endText)
		if len(endFields) == 0 {
			continue
		}
		end, err := ParseTimestamp(endFields[0])
		if err != nil {
			continue
		}
		text := strings.Join(strings.Fields(strings.Join(lines[timing+1:], " ")), " ")
		segments = append(segments, transcript.Segment{
			ID:    len(segments),
			Start: start,
			End:   end,
			Text:  text,
		})
	}
	return segments, nil
}
