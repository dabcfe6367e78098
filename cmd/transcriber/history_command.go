package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"transcriber/internal/catalog"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var status string
	var clear bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded transcription runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if clear {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return fmt.Errorf("clear catalog: %w", err)
				}
				fmt.Fprintf(out, "Removed %d run(s)\n", removed)
				return nil
			}

			opts := catalog.ListOptions{Limit: limit}
			switch s := strings.ToLower(strings.TrimSpace(status)); s {
			case "":
			case string(catalog.StatusCompleted), string(catalog.StatusFailed):
				opts.Status = catalog.Status(s)
			default:
				return fmt.Errorf("invalid --status %q (choose completed or failed)", status)
			}

			runs, err := store.List(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if jsonOutput {
				if runs == nil {
					runs = []catalog.Run{}
				}
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (completed, failed)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Delete every recorded run")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	return cmd
}

func renderHistoryTable(runs []catalog.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		detail := fmt.Sprintf("%d segs, %d chunks", run.SegmentCount, run.ChunkCount)
		if run.Status == catalog.StatusFailed {
			detail = run.FailureKind
		}
		rows = append(rows, []string{
			shortID(run.ID),
			run.FinishedAt.Local().Format("2006-01-02 15:04"),
			string(run.Status),
			filepath.Base(run.InputPath),
			formatSeconds(run.DurationSeconds),
			run.Elapsed().Round(time.Second).String(),
			detail,
		})
	}
	return renderTable(
		[]string{"Run", "Finished", "Status", "Input", "Audio", "Took", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
