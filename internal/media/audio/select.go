package audio

import (
	"strconv"
	"strings"

	"transcriber/internal/language"
	"transcriber/internal/media/ffprobe"
)

// Selection describes the stream chosen for transcription.
type Selection struct {
	Stream ffprobe.Stream
	// Index is the absolute ffprobe stream index, or -1 when the container has
	// no audio.
	Index int
	// Candidates is the number of audio streams considered.
	Candidates int
}

// Found reports whether an audio stream was selected.
func (s Selection) Found() bool {
	return s.Index >= 0
}

// Label returns a human-readable summary of the selected stream.
func (s Selection) Label() string {
	if !s.Found() {
		return ""
	}
	return formatStreamSummary(s.Stream)
}

// SelectSpeech returns the audio stream most likely to carry the main spoken
// content. lang may be empty, an ISO 639-1/639-2 code, or a language word.
func SelectSpeech(streams []ffprobe.Stream, lang string) Selection {
	candidates := buildCandidates(streams, language.ToISO2(lang))
	if len(candidates) == 0 {
		return Selection{Index: -1}
	}
	best := candidates[0]
	bestScore := score(best)
	for _, cand := range candidates[1:] {
		if s := score(cand); s > bestScore {
			best = cand
			bestScore = s
		}
	}
	return Selection{Stream: best.stream, Index: best.stream.Index, Candidates: len(candidates)}
}

type candidate struct {
	stream         ffprobe.Stream
	order          int
	languageMatch  bool
	secondary      bool
	defaultFlagged bool
}

var secondaryKeywords = []string{
	"commentary",
	"description",
	"descriptive",
	"narration for the visually impaired",
	"director",
}

func buildCandidates(streams []ffprobe.Stream, wantLang string) []candidate {
	result := make([]candidate, 0, len(streams))
	order := 0
	for _, stream := range streams {
		if !strings.EqualFold(stream.CodecType, "audio") {
			continue
		}
		title := tagValue(stream.Tags, "title", "TITLE", "handler_name", "HANDLER_NAME")
		cand := candidate{
			stream:         stream,
			order:          order,
			defaultFlagged: stream.Disposition["default"] == 1,
			secondary:      stream.Disposition["comment"] == 1 || stream.Disposition["visual_impaired"] == 1,
		}
		lowered := strings.ToLower(title)
		for _, keyword := range secondaryKeywords {
			if strings.Contains(lowered, keyword) {
				cand.secondary = true
				break
			}
		}
		if wantLang != "" {
			cand.languageMatch = language.FromTags(stream.Tags) == wantLang
		}
		result = append(result, cand)
		order++
	}
	return result
}

func score(cand candidate) float64 {
	s := 0.0
	if cand.languageMatch {
		s += 1000
	}
	if !cand.secondary {
		s += 500
	}
	if cand.defaultFlagged {
		s += 10
	}
	return s - float64(cand.order)*0.1
}

func tagValue(tags map[string]string, keys ...string) string {
	for _, key := range keys {
		if value, ok := tags[key]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func formatStreamSummary(stream ffprobe.Stream) string {
	parts := make([]string, 0, 4)
	if lang := tagValue(stream.Tags, "language", "LANGUAGE"); lang != "" {
		parts = append(parts, strings.ToLower(lang))
	}
	codec := stream.CodecLong
	if codec == "" {
		codec = stream.CodecName
	}
	if codec != "" {
		parts = append(parts, codec)
	}
	if stream.Channels > 0 {
		parts = append(parts, strconv.Itoa(stream.Channels)+"ch")
	}
	if title := tagValue(stream.Tags, "title"); title != "" {
		parts = append(parts, title)
	}
	if len(parts) == 0 {
		return "audio"
	}
	return strings.Join(parts, " | ")
}
