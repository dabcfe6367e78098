package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"transcriber/internal/fileutil"
	"transcriber/internal/transcript"
)

// Format names an output artifact type.
type Format string

const (
	FormatSRT   Format = "srt"
	FormatVTT   Format = "vtt"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// AllFormats returns every supported format in write order.
func AllFormats() []Format {
	return []Format{FormatSRT, FormatVTT, FormatJSON, FormatJSONL}
}

// ParseFormats normalizes user-supplied format names. "all" expands to every
// format; duplicates collapse; the result follows AllFormats order. An empty
// input selects every format.
func ParseFormats(values []string) ([]Format, error) {
	selected := map[Format]bool{}
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			name := strings.ToLower(strings.TrimSpace(part))
			if name == "" {
				continue
			}
			if name == "all" {
				for _, f := range AllFormats() {
					selected[f] = true
				}
				continue
			}
			f := Format(name)
			if !slices.Contains(AllFormats(), f) {
				return nil, fmt.Errorf("unsupported export format %q (choose srt, vtt, json, jsonl, or all)", part)
			}
			selected[f] = true
		}
	}
	if len(selected) == 0 {
		return AllFormats(), nil
	}
	formats := make([]Format, 0, len(selected))
	for _, f := range AllFormats() {
		if selected[f] {
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// FileName returns the artifact file name for base in format f.
func FileName(base string, f Format) string {
	if f == FormatJSONL {
		return base + "_chunks.jsonl"
	}
	return base + "." + string(f)
}

// ExportSRT writes segments to path as SubRip.
func ExportSRT(path string, segments []transcript.Segment) error {
	return writeFile(path, func(w io.Writer) error { return WriteSRT(w, segments) })
}

// ExportVTT writes segments to path as WebVTT.
func ExportVTT(path string, segments []transcript.Segment) error {
	return writeFile(path, func(w io.Writer) error { return WriteVTT(w, segments) })
}

// ExportJSON writes the transcript document to path.
func ExportJSON(path string, t transcript.Transcript) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(w, t) })
}

// ExportJSONL writes chunks to path, one per line.
func ExportJSONL(path string, chunks []transcript.Chunk) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSONL(w, chunks) })
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := fileutil.WriteAtomic(path, 0o644, write); err != nil {
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ExportAll writes every format into dir and returns the written paths.
func ExportAll(t transcript.Transcript, chunks []transcript.Chunk, dir, base string) (map[Format]string, error) {
	return ExportFormats(t, chunks, dir, base, AllFormats())
}

// ExportFormats writes the selected formats into dir, creating it if needed.
func ExportFormats(t transcript.Transcript, chunks []transcript.Chunk, dir, base string, formats []Format) (map[Format]string, error) {
	if strings.TrimSpace(base) == "" {
		return nil, fmt.Errorf("export: base name is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	outputs := make(map[Format]string, len(formats))
	for _, f := range formats {
		path := filepath.Join(dir, FileName(base, f))
		var err error
		switch f {
		case FormatSRT:
			err = ExportSRT(path, t.Segments)
		case FormatVTT:
			err = ExportVTT(path, t.Segments)
		case FormatJSON:
			err = ExportJSON(path, t)
		case FormatJSONL:
			err = ExportJSONL(path, chunks)
		default:
			err = fmt.Errorf("unsupported export format %q", f)
		}
		if err != nil {
			return outputs, err
		}
		outputs[f] = path
	}
	return outputs, nil
}

// LoadTranscript reads a transcript from a JSON document, or from an SRT or
// VTT subtitle file (metadata unknown).
func LoadTranscript(path string) (transcript.Transcript, error) {
	file, err := os.Open(path)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("open transcript: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt", ".vtt":
		segments, err := ParseSRT(file)
		if err != nil {
			return transcript.Transcript{}, err
		}
		return transcript.New(segments, "", -1), nil
	case ".json":
		return ReadJSON(file)
	default:
		return transcript.Transcript{}, fmt.Errorf("unsupported transcript file %q (expected .json, .srt, or .vtt)", filepath.Base(path))
	}
}
