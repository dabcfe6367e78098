package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"transcriber/internal/logging"
	"transcriber/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var runID string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the transcriber log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Paths.LogDir) == "" {
				return errors.New("paths.log_dir is not set; logs only go to stderr")
			}
			path := filepath.Join(cfg.Paths.LogDir, logging.FileName)
			match := strings.TrimSpace(runID)
			out := cmd.OutOrStdout()

			if follow {
				return logs.Follow(cmd.Context(), path, lines, match, func(line string) {
					fmt.Fprintln(out, line)
				})
			}
			res, err := logs.Tail(cmd.Context(), path, logs.Options{Offset: -1, Limit: lines, Match: match})
			if err != nil {
				return err
			}
			if len(res.Lines) == 0 {
				fmt.Fprintf(out, "No log lines in %s\n", path)
				return nil
			}
			for _, line := range res.Lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().StringVar(&runID, "run", "", "Only show lines for this run id (prefix from history works)")
	return cmd
}
