package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		modTimeRaw  sql.NullString
		status      string
		failureKind sql.NullString
		errorMsg    sql.NullString
		outputBase  sql.NullString
		outputsRaw  sql.NullString
		model       sql.NullString
		language    sql.NullString
		startedRaw  string
		finishedRaw string
	)
	if err := scanner.Scan(
		&run.ID,
		&run.InputPath,
		&run.InputSize,
		&modTimeRaw,
		&status,
		&failureKind,
		&errorMsg,
		&outputBase,
		&outputsRaw,
		&model,
		&language,
		&run.DurationSeconds,
		&run.SegmentCount,
		&run.ChunkCount,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	run.Status = Status(status)
	run.FailureKind = failureKind.String
	run.ErrorMessage = errorMsg.String
	run.OutputBase = outputBase.String
	run.Model = model.String
	run.Language = language.String
	if outputsRaw.Valid && outputsRaw.String != "" {
		if err := json.Unmarshal([]byte(outputsRaw.String), &run.Outputs); err != nil {
			return nil, err
		}
	}
	if t, err := parseTimeString(modTimeRaw.String); err == nil {
		run.InputModTime = t
	}
	if t, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = t
	}
	if t, err := parseTimeString(finishedRaw); err == nil {
		run.FinishedAt = t
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC().Format(timeLayout)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
