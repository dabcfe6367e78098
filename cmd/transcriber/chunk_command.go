package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"transcriber/internal/config"
	"transcriber/internal/export"
	"transcriber/internal/pipeline"
	"transcriber/internal/transcript"
)

// chunkPreviewWidth caps the text column of the --show table.
const chunkPreviewWidth = 60

func newChunkCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	var source string
	var show bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "chunk <transcript.json|file.srt|file.vtt>",
		Short: "Normalize, chunk, and export an existing transcript",
		Long: "Re-processes a transcript produced earlier (the JSON export, or any SRT/VTT file)\n" +
			"without running speech recognition. Useful for trying different chunk sizes.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := flags.apply(cmd, base)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve transcript: %w", err)
			}
			t, err := export.LoadTranscript(path)
			if err != nil {
				return err
			}

			p, err := pipeline.New(pipeline.Options{Config: cfg, Logger: logger})
			if err != nil {
				return err
			}
			in := pipeline.ProcessInput{SourceFile: strings.TrimSpace(source)}
			if in.SourceFile == "" {
				in.SourceFile = filepath.Base(path)
			}
			res, err := p.ProcessTranscript(cmd.Context(), t, in)
			if err != nil {
				return fmt.Errorf("chunk %s: %w", path, err)
			}

			if jsonOutput {
				return writeJSON(cmd, resultView(res))
			}
			out := cmd.OutOrStdout()
			if show {
				fmt.Fprintln(out, renderChunkTable(res.Chunks))
			}
			printResult(out, res)
			return nil
		},
	}

	flags.registerText(cmd)
	flags.registerOutput(cmd)
	cmd.Flags().StringVar(&source, "source", "", "Source file name recorded on each chunk (default: transcript file name)")
	cmd.Flags().BoolVar(&show, "show", false, "Print a table of the produced chunks")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

func renderChunkTable(chunks []transcript.Chunk) string {
	if len(chunks) == 0 {
		return "No chunks produced"
	}
	rows := make([][]string, 0, len(chunks))
	for _, chunk := range chunks {
		rows = append(rows, []string{
			fmt.Sprintf("%d", chunk.ChunkID),
			export.FormatSRTTimestamp(chunk.Start),
			export.FormatSRTTimestamp(chunk.End),
			fmt.Sprintf("%d", len(chunk.SegmentIDs)),
			fmt.Sprintf("%d", chunk.CharCount),
			preview(chunk.Text, chunkPreviewWidth),
		})
	}
	return renderTable(
		[]string{"#", "Start", "End", "Segs", "Chars", "Text"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

func preview(text string, width int) string {
	runes := []rune(strings.Join(strings.Fields(text), " "))
	if len(runes) <= width {
		return string(runes)
	}
	return string(runes[:width-3]) + "..."
}

