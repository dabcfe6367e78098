package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"transcriber/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = "id, input_path, input_size, input_mod_time, status, failure_kind, error_message, output_base, outputs_json, model, language, duration_seconds, segment_count, chunk_count, started_at, finished_at"

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the catalog configured in cfg.Paths.CatalogPath.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil || strings.TrimSpace(cfg.Paths.CatalogPath) == "" {
		return nil, errors.New("catalog: path not configured")
	}
	return OpenPath(cfg.Paths.CatalogPath)
}

// OpenPath initializes or connects to the catalog database at path.
func OpenPath(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'transcriber history --clear' or delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Record inserts a run. An empty ID is replaced by a new UUID and zero
// timestamps default to now.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("catalog: run is nil")
	}
	if strings.TrimSpace(run.InputPath) == "" {
		return errors.New("catalog: input path required")
	}
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.Status == "" {
		run.Status = StatusCompleted
	}
	now := time.Now().UTC()
	if run.FinishedAt.IsZero() {
		run.FinishedAt = now
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.FinishedAt
	}

	var outputs any
	if len(run.Outputs) > 0 {
		data, err := json.Marshal(run.Outputs)
		if err != nil {
			return fmt.Errorf("marshal outputs: %w", err)
		}
		outputs = string(data)
	}

	return s.execWithRetry(ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.InputPath,
		run.InputSize,
		nullableTime(run.InputModTime),
		string(run.Status),
		nullableString(run.FailureKind),
		nullableString(run.ErrorMessage),
		nullableString(run.OutputBase),
		outputs,
		nullableString(run.Model),
		nullableString(run.Language),
		run.DurationSeconds,
		run.SegmentCount,
		run.ChunkCount,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
	)
}

// Get fetches a run by id. Unknown ids return ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// List returns runs ordered newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if opts.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(opts.Status))
	}
	query += ` ORDER BY finished_at DESC, rowid DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// IsProcessed reports whether a completed run exists for exactly this
// version of the input file.
func (s *Store) IsProcessed(ctx context.Context, fp Fingerprint) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT COUNT(1) FROM runs WHERE input_path = ? AND status = ? AND input_size = ? AND input_mod_time = ?`,
		fp.Path, string(StatusCompleted), fp.Size, nullableTime(fp.ModTime),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check processed: %w", err)
	}
	return count > 0, nil
}

// Clear deletes every run and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx, `DELETE FROM runs`)
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

// FingerprintFile stats path and returns its catalog fingerprint. The path
// is made absolute so relative and absolute invocations match.
func FingerprintFile(path string) (Fingerprint, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{Path: abs, Size: info.Size(), ModTime: info.ModTime()}, nil
}
