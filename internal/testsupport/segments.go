package testsupport

import "transcriber/internal/transcript"

// Segments returns the five-segment fixture used across package tests.
// Joined with single spaces the text is 136 characters long.
func Segments() []transcript.Segment {
	return []transcript.Segment{
		{ID: 0, Start: 0.0, End: 5.0, Text: "This is the first segment."},
		{ID: 1, Start: 5.0, End: 10.0, Text: "This is the second segment."},
		{ID: 2, Start: 10.0, End: 15.0, Text: "This is the third segment."},
		{ID: 3, Start: 15.0, End: 20.0, Text: "This is the fourth segment."},
		{ID: 4, Start: 20.0, End: 25.0, Text: "This is the fifth segment."},
	}
}

// Transcript wraps Segments in an English transcript lasting 25 seconds.
func Transcript() transcript.Transcript {
	return transcript.New(Segments(), "en", 25.0)
}
