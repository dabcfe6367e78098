package preflight

import (
	"context"

	"transcriber/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for the given config. Binary
// availability is reported separately by CheckSystemDeps.
func RunAll(_ context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	var results []Result

	results = append(results, CheckWritableDir("Output directory", cfg.Paths.OutputDir))
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckWritableDir("Log directory", cfg.Paths.LogDir))
	}
	if cfg.Normalize.Enabled && cfg.Normalize.GlossaryPath != "" {
		results = append(results, CheckGlossary(cfg.Normalize.GlossaryPath))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
