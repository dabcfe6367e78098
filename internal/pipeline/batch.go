package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	"transcriber/internal/catalog"
	"transcriber/internal/logging"
	"transcriber/internal/services"
)

// LockFileName is created in the output directory while a batch runs.
const LockFileName = ".transcriber.lock"

// ErrOutputLocked is returned when another batch holds the output directory.
var ErrOutputLocked = errors.New("output directory is locked by another batch")

// ItemStatus is the outcome of one batch input.
type ItemStatus string

const (
	ItemCompleted ItemStatus = "completed"
	ItemSkipped   ItemStatus = "skipped"
	ItemFailed    ItemStatus = "failed"
)

// BatchOptions tunes a batch run.
type BatchOptions struct {
	// Pattern is a filepath.Match glob; empty uses batch.pattern.
	Pattern string
	// Force reprocesses inputs already recorded as completed.
	Force bool
}

// BatchItem is the outcome for one input.
type BatchItem struct {
	Input  string
	Status ItemStatus
	Result *Result
	Err    error
}

// BatchSummary aggregates a batch run.
type BatchSummary struct {
	Items     []BatchItem
	Completed int
	Skipped   int
	Failed    int
}

// Found returns the number of inputs that matched the pattern.
func (s BatchSummary) Found() int {
	return len(s.Items)
}

// Inputs lists regular files in dir matching pattern, sorted by name. The
// match is not recursive.
func Inputs(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "batch", "scan", "", err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "batch", "scan", dir+" is not a directory", nil)
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "batch", "scan", "invalid pattern "+pattern, err)
	}
	files := make([]string, 0, len(matches))
	for _, match := range matches {
		if fi, statErr := os.Stat(match); statErr == nil && fi.Mode().IsRegular() {
			files = append(files, match)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Batch processes every matching file in dir. Individual failures are
// collected in the summary; the returned error is reserved for problems that
// stop the whole batch (bad directory, lock contention, cancellation).
func (p *Pipeline) Batch(ctx context.Context, dir string, opts BatchOptions) (BatchSummary, error) {
	var summary BatchSummary
	pattern := opts.Pattern
	if pattern == "" {
		pattern = p.cfg.Batch.Pattern
	}
	files, err := Inputs(dir, pattern)
	if err != nil {
		return summary, err
	}
	logger := logging.NewComponentLogger(p.logger, "batch")
	if len(files) == 0 {
		logger.Info("no files matched", logging.String("dir", dir), logging.String("pattern", pattern))
		return summary, nil
	}

	unlock, err := p.lockOutput()
	if err != nil {
		return summary, err
	}
	defer unlock()

	skipProcessed := p.cfg.Batch.SkipProcessed && !opts.Force && p.catalog != nil
	logger.Info("batch started",
		logging.String("dir", dir),
		logging.String("pattern", pattern),
		logging.Int("files", len(files)),
		logging.Bool("skip_processed", skipProcessed),
	)

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		item := BatchItem{Input: file}

		if skipProcessed {
			done, checkErr := p.alreadyProcessed(ctx, file)
			if checkErr != nil {
				logging.WarnWithContext(logger, "catalog lookup failed", "catalog_read_failed",
					logging.String(logging.FieldInput, file),
					logging.Error(checkErr),
					logging.String(logging.FieldImpact, "file will be processed again"),
				)
			}
			if done {
				item.Status = ItemSkipped
				summary.Items = append(summary.Items, item)
				summary.Skipped++
				logger.Info("skipping processed file", logging.String(logging.FieldInput, file))
				continue
			}
		}

		res, runErr := p.runIndexed(ctx, file, i+1, len(files))
		item.Result = res
		if runErr != nil {
			item.Status = ItemFailed
			item.Err = runErr
			summary.Failed++
			summary.Items = append(summary.Items, item)
			if isCanceled(runErr) {
				return summary, runErr
			}
			continue
		}
		item.Status = ItemCompleted
		summary.Completed++
		summary.Items = append(summary.Items, item)
	}

	logger.Info("batch complete",
		logging.Int("completed", summary.Completed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (p *Pipeline) alreadyProcessed(ctx context.Context, file string) (bool, error) {
	fp, err := catalog.FingerprintFile(file)
	if err != nil {
		return false, err
	}
	return p.catalog.IsProcessed(ctx, fp)
}

func (p *Pipeline) lockOutput() (func(), error) {
	dir := p.cfg.Paths.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, dir)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			p.logger.Warn("failed to release output lock", logging.Error(err))
		}
	}, nil
}
