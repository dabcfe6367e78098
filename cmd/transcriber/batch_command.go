package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"transcriber/internal/config"
	"transcriber/internal/pipeline"
	"transcriber/internal/services"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	var pattern string
	var force bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Transcribe every matching media file in a directory",
		Args:  cobra.ExactArgs(1),
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
			dir, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve directory: %w", err)
			}

			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			progress := newProgressPrinter(cmd.ErrOrStderr())
			p, err := pipeline.New(pipeline.Options{
				Config:     cfg,
				Engine:     newEngine(cfg, logger),
				Catalog:    store,
				Logger:     logger,
				OnProgress: progress.update,
			})
			if err != nil {
				return err
			}

			summary, runErr := p.Batch(cmd.Context(), dir, pipeline.BatchOptions{Pattern: pattern, Force: force})
			if errors.Is(runErr, pipeline.ErrOutputLocked) {
				return fmt.Errorf("%w; wait for the other batch to finish", runErr)
			}
			if jsonOutput {
				if err := writeJSON(cmd, batchView(summary)); err != nil {
					return err
				}
			} else {
				printBatchSummary(cmd.OutOrStdout(), summary, shouldColorize(cmd.OutOrStdout()))
			}
			if runErr != nil {
				return runErr
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Found())
			}
			return nil
		},
	}

	flags.registerTranscription(cmd)
	flags.registerText(cmd)
	flags.registerOutput(cmd)
	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob selecting files in the directory (overrides batch.pattern)")
	cmd.Flags().BoolVar(&force, "force", false, "Reprocess files already recorded as completed")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the batch summary as JSON")
	return cmd
}

type batchItemView struct {
	Input       string      `json:"input"`
	Status      string      `json:"status"`
	FailureKind string      `json:"failure_kind,omitempty"`
	Error       string      `json:"error,omitempty"`
	Run         *runSummary `json:"run,omitempty"`
}

type batchSummaryView struct {
	Found     int             `json:"found"`
	Completed int             `json:"completed"`
	Skipped   int             `json:"skipped"`
	Failed    int             `json:"failed"`
	Items     []batchItemView `json:"items"`
}

func batchView(summary pipeline.BatchSummary) batchSummaryView {
	view := batchSummaryView{
		Found:     summary.Found(),
		Completed: summary.Completed,
		Skipped:   summary.Skipped,
		Failed:    summary.Failed,
		Items:     make([]batchItemView, 0, len(summary.Items)),
	}
	for _, item := range summary.Items {
		iv := batchItemView{Input: item.Input, Status: string(item.Status)}
		if item.Err != nil {
			iv.FailureKind = services.FailureKind(item.Err)
			iv.Error = item.Err.Error()
		}
		if item.Status == pipeline.ItemCompleted && item.Result != nil {
			rv := resultView(item.Result)
			iv.Run = &rv
		}
		view.Items = append(view.Items, iv)
	}
	return view
}

func printBatchSummary(out io.Writer, summary pipeline.BatchSummary, colorize bool) {
	if summary.Found() == 0 {
		fmt.Fprintln(out, "No matching files found")
		return
	}
	rows := make([][]string, 0, len(summary.Items))
	for _, item := range summary.Items {
		detail := ""
		switch item.Status {
		case pipeline.ItemCompleted:
			if item.Result != nil {
				detail = fmt.Sprintf("%d segments, %d chunks", len(item.Result.Transcript.Segments), len(item.Result.Chunks))
			}
		case pipeline.ItemSkipped:
			detail = "already processed"
		case pipeline.ItemFailed:
			detail = services.FailureKind(item.Err)
		}
		rows = append(rows, []string{filepath.Base(item.Input), string(item.Status), detail})
	}
	fmt.Fprintln(out, renderTable([]string{"File", "Status", "Detail"}, rows, nil))

	kind := statusOK
	if summary.Failed > 0 {
		kind = statusError
	}
	message := fmt.Sprintf("%d completed, %d skipped, %d failed", summary.Completed, summary.Skipped, summary.Failed)
	fmt.Fprintln(out, renderStatusLine("Batch", kind, message, colorize))
	for _, item := range summary.Items {
		if item.Err != nil {
			fmt.Fprintln(out, renderStatusLine(filepath.Base(item.Input), statusError, item.Err.Error(), colorize))
		}
	}
}
