package main

import (
	"fmt"
	"io"
	"time"

	"transcriber/internal/export"
	"transcriber/internal/pipeline"
)

type runSummary struct {
	RunID      string            `json:"run_id,omitempty"`
	Input      string            `json:"input"`
	OutputBase string            `json:"output_base"`
	Language   string            `json:"language,omitempty"`
	Duration   float64           `json:"duration_seconds"`
	AudioTrack string            `json:"audio_track,omitempty"`
	Segments   int               `json:"segments"`
	Chunks     int               `json:"chunks"`
	Outputs    map[string]string `json:"outputs"`
	Elapsed    string            `json:"elapsed"`
}

func resultView(res *pipeline.Result) runSummary {
	view := runSummary{
		RunID:      res.RunID,
		Input:      res.Input,
		OutputBase: res.OutputBase,
		Language:   res.Transcript.LanguageCode(),
		Duration:   res.Transcript.DurationSeconds(),
		Segments:   len(res.Transcript.Segments),
		Chunks:     len(res.Chunks),
		Outputs:    make(map[string]string, len(res.Outputs)),
		Elapsed:    res.Elapsed.Round(time.Millisecond).String(),
	}
	if res.Audio.Found() {
		view.AudioTrack = res.Audio.Label()
	}
	for format, path := range res.Outputs {
		view.Outputs[string(format)] = path
	}
	return view
}

func printResult(out io.Writer, res *pipeline.Result) {
	language := res.Transcript.LanguageCode()
	if language == "" {
		language = "unknown"
	}
	fmt.Fprintf(out, "Transcribed %s\n", displayInput(res.Input))
	fmt.Fprintf(out, "  Language:  %s\n", language)
	fmt.Fprintf(out, "  Duration:  %s\n", formatSeconds(res.Transcript.DurationSeconds()))
	if res.Audio.Found() {
		fmt.Fprintf(out, "  Audio:     %s\n", res.Audio.Label())
	}
	fmt.Fprintf(out, "  Segments:  %d\n", len(res.Transcript.Segments))
	fmt.Fprintf(out, "  Chunks:    %d\n", len(res.Chunks))
	fmt.Fprintf(out, "  Elapsed:   %s\n", res.Elapsed.Round(time.Millisecond))

	rows := make([][]string, 0, len(res.Outputs))
	for _, format := range export.AllFormats() {
		if path, ok := res.Outputs[format]; ok {
			rows = append(rows, []string{string(format), path})
		}
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]string{"Format", "Path"}, rows, nil))
	}
}

func displayInput(input string) string {
	if input == "" {
		return "transcript"
	}
	return input
}

func formatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	return (time.Duration(seconds * float64(time.Second))).Round(time.Second).String()
}
