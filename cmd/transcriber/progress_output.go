package main

import (
	"fmt"
	"io"
	"path/filepath"

	"transcriber/internal/logging"
	"transcriber/internal/pipeline"
)

// progressPrinter renders pipeline progress as status lines. Within a stage,
// updates are sampled to 10% steps.
type progressPrinter struct {
	out      io.Writer
	colorize bool
	sampler  *logging.ProgressSampler
	input    string
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{
		out:      out,
		colorize: shouldColorize(out),
		sampler:  logging.NewProgressSampler(10),
	}
}

func (p *progressPrinter) update(u pipeline.Progress) {
	if u.Input != p.input {
		p.input = u.Input
		p.sampler.Reset()
		if u.Total > 0 {
			message := fmt.Sprintf("%d/%d %s", u.Index, u.Total, filepath.Base(u.Input))
			fmt.Fprintln(p.out, renderStatusLine("Processing", statusInfo, message, p.colorize))
		}
	}
	if !p.sampler.ShouldLog(u.Percent, u.Stage) {
		return
	}
	kind := statusInfo
	if u.Stage == pipeline.StageDone {
		kind = statusOK
	}
	fmt.Fprintln(p.out, renderStatusLine(stageLabel(u.Stage), kind, progressMessage(u), p.colorize))
}

func stageLabel(stage string) string {
	switch stage {
	case pipeline.StageProbe:
		return "Probe"
	case pipeline.StageTranscribe:
		return "Transcribe"
	case pipeline.StageNormalize:
		return "Normalize"
	case pipeline.StageChunk:
		return "Chunk"
	case pipeline.StageExport:
		return "Export"
	case pipeline.StageDone:
		return "Done"
	default:
		return stage
	}
}

func progressMessage(u pipeline.Progress) string {
	switch {
	case u.Percent >= 0:
		return fmt.Sprintf("%.0f%%, %s", u.Percent, segmentCount(u.Segments))
	case u.Segments > 0:
		return segmentCount(u.Segments)
	default:
		return ""
	}
}

func segmentCount(n int) string {
	if n == 1 {
		return "1 segment"
	}
	return fmt.Sprintf("%d segments", n)
}
