package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"transcriber/internal/deps"
	"transcriber/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify external tools and configured directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			statuses := preflight.CheckSystemDeps(cmd.Context(), cfg)
			results := preflight.RunAll(cmd.Context(), cfg)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			path := ctx.configPath
			if path == "" {
				path = "(defaults)"
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusInfo, path, colorize))
			fmt.Fprintln(out, renderStatusLine("Model", statusInfo, cfg.Transcription.Model, colorize))
			fmt.Fprintln(out, renderStatusLine("CUDA", statusInfo, yesNo(cfg.Transcription.CUDAEnabled), colorize))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range dependencyLines(statuses, colorize) {
				fmt.Fprintln(out, line)
			}
			if verbose {
				fmt.Fprintln(out, renderDependencyTable(statuses))
			}
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Filesystem", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range preflightLines(results, colorize) {
				fmt.Fprintln(out, line)
			}

			missing := deps.MissingRequired(statuses)
			failed := preflight.Failed(results)
			if len(missing) == 0 && len(failed) == 0 {
				return nil
			}
			var problems []string
			if len(missing) > 0 {
				problems = append(problems, "missing "+strings.Join(missing, ", "))
			}
			for _, r := range failed {
				problems = append(problems, r.Name+": "+r.Detail)
			}
			return errors.New("check failed: " + strings.Join(problems, "; "))
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print a table of resolved tool paths")
	return cmd
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+2)
	missing := deps.MissingRequired(statuses)
	switch {
	case len(missing) > 0:
		lines = append(lines, renderStatusLine("Summary", statusError, fmt.Sprintf("%d required tool(s) missing", len(missing)), colorize))
	default:
		lines = append(lines, renderStatusLine("Summary", statusOK, "All required tools available", colorize))
	}
	var unavailable []string
	for _, status := range statuses {
		if status.Available {
			message := "Ready"
			if status.Version != "" {
				message = fmt.Sprintf("Ready (%s)", status.Version)
			} else if status.Command != "" {
				message = fmt.Sprintf("Ready (command: %s)", status.Command)
			}
			lines = append(lines, renderStatusLine(status.Name, statusOK, message, colorize))
			continue
		}
		detail := strings.TrimSpace(status.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if status.Optional {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(status.Name, kind, detail, colorize))
		unavailable = append(unavailable, status.Name)
	}
	if len(unavailable) > 0 {
		lines = append(lines, renderStatusLine("Missing dependencies", statusWarn, strings.Join(unavailable, ", "), colorize))
	}
	return lines
}

func preflightLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	return lines
}

func renderDependencyTable(statuses []deps.Status) string {
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		rows = append(rows, []string{
			status.Name,
			status.Command,
			yesNo(status.Available),
			yesNo(!status.Optional),
			status.Path,
			status.Description,
		})
	}
	return renderTable([]string{"Tool", "Command", "Found", "Required", "Path", "Purpose"}, rows, nil)
}
