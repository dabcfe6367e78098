package main

import (
	"bytes"
	"strings"
	"testing"

	"transcriber/internal/pipeline"
)

func TestProgressPrinterSamplesTranscription(t *testing.T) {
	var buf bytes.Buffer
	printer := newProgressPrinter(&buf)

	printer.update(pipeline.Progress{Input: "/media/a.mp4", Stage: pipeline.StageTranscribe, Percent: -1, Index: 1, Total: 2})
	for i := 1; i <= 20; i++ {
		printer.update(pipeline.Progress{Input: "/media/a.mp4", Stage: pipeline.StageTranscribe, Percent: float64(i) * 5, Segments: i, Index: 1, Total: 2})
	}
	printer.update(pipeline.Progress{Input: "/media/a.mp4", Stage: pipeline.StageDone, Percent: 100, Segments: 20, Index: 1, Total: 2})
	printer.update(pipeline.Progress{Input: "/media/b.mp4", Stage: pipeline.StageTranscribe, Percent: -1, Index: 2, Total: 2})

	out := buf.String()
	for _, want := range []string{
		renderStatusLine("Processing", statusInfo, "1/2 a.mp4", false),
		renderStatusLine("Transcribe", statusInfo, "10%, 2 segments", false),
		renderStatusLine("Transcribe", statusInfo, "100%, 20 segments", false),
		renderStatusLine("Done", statusOK, "100%, 20 segments", false),
		renderStatusLine("Processing", statusInfo, "2/2 b.mp4", false),
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "15%") {
		t.Fatalf("expected updates sampled to 10%% steps, got:\n%s", out)
	}
	if got := strings.Count(out, "Transcribe:"); got != 13 {
		t.Fatalf("expected 13 transcribe lines, got %d:\n%s", got, out)
	}
}

func TestProgressPrinterSingleFileUnknownDuration(t *testing.T) {
	var buf bytes.Buffer
	printer := newProgressPrinter(&buf)
	printer.update(pipeline.Progress{Input: "talk.wav", Stage: pipeline.StageTranscribe, Percent: -1})
	printer.update(pipeline.Progress{Input: "talk.wav", Stage: pipeline.StageTranscribe, Percent: -1, Segments: 3})
	printer.update(pipeline.Progress{Input: "talk.wav", Stage: pipeline.StageExport, Percent: -1, Segments: 1})

	out := buf.String()
	if strings.Contains(out, "Processing:") {
		t.Fatalf("expected no batch position, got:\n%s", out)
	}
	if !strings.Contains(out, renderStatusLine("Export", statusInfo, "1 segment", false)) {
		t.Fatalf("expected export line, got:\n%s", out)
	}
	if strings.Contains(out, "3 segments") {
		t.Fatalf("expected unknown-percent updates to emit only on stage change, got:\n%s", out)
	}
}
