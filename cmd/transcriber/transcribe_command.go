package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcriber/internal/config"
	"transcriber/internal/pipeline"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "transcribe <file>",
		Short: "Transcribe a media file and export subtitles and chunks",
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
			input, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input: %w", err)
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

			res, err := p.Run(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("transcribe %s: %w", input, err)
			}
			if jsonOutput {
				return writeJSON(cmd, resultView(res))
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	flags.registerTranscription(cmd)
	flags.registerText(cmd)
	flags.registerOutput(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}
