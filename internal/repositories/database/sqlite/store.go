// Package sqlite stores every collection in a single embedded SQLite table
// keyed by collection and record key and ordered by position.
package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/repositories/database/rowsync"

	_ "modernc.org/sqlite"
)

// BackupFileName is the name of the snapshot written by Backup.
const BackupFileName = "finance_backup.db"

// Store is a RecordStore backed by SQLite.
type Store struct {
	db        *sql.DB
	backupDir string
	logger    *slog.Logger
}

var _ portsrepo.RecordStore = (*Store)(nil)

// NewStore opens the database, applying migrations first.
func NewStore(dbPath, backupDir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	// SQLite allows a single writer; serialise at the pool.
	db.SetMaxOpenConns(1)

	return NewStoreWithDB(db, backupDir, logger), nil
}

// NewStoreWithDB wraps an already migrated database handle.
func NewStoreWithDB(db *sql.DB, backupDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, backupDir: backupDir, logger: logger}
}

func (s *Store) Load(ctx context.Context, kind domain.RecordKind) ([]domain.Record, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("load: unknown collection %q", kind)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, payload FROM records WHERE kind = ? ORDER BY position`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", kind, err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		var (
			position int
			payload  string
		)
		if err := rows.Scan(&position, &payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		rec, err := decodePayload(payload)
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping unreadable record",
				slog.String("kind", string(kind)),
				slog.Int("position", position),
				slog.String("error", err.Error()))
			continue
		}
		records = append(records, domain.NormalizeRecord(kind, rec))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", kind, err)
	}
	return records, nil
}

// Save brings the stored collection in line with records inside one SQL
// transaction, writing only the rows that changed.
func (s *Store) Save(ctx context.Context, kind domain.RecordKind, records []domain.Record) (err error) {
	if !kind.Valid() {
		return fmt.Errorf("save: unknown collection %q", kind)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save %s: %w", kind, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.ErrorContext(ctx, "Rollback failed", slog.String("kind", string(kind)), slog.String("error", rbErr.Error()))
			}
		}
	}()

	existing, err := storedRows(ctx, tx, kind)
	if err != nil {
		return err
	}
	plan, err := rowsync.Diff(kind, existing, records)
	if err != nil {
		return err
	}
	for _, key := range plan.Deletes {
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM records WHERE kind = ? AND record_key = ?`, string(kind), key); err != nil {
			return fmt.Errorf("delete %s record %q: %w", kind, key, err)
		}
	}
	for _, row := range plan.Upserts {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO records (kind, record_key, position, payload) VALUES (?, ?, ?, ?)
			ON CONFLICT (kind, record_key) DO UPDATE SET position = excluded.position, payload = excluded.payload`,
			string(kind), row.Key, row.Position, row.Payload); err != nil {
			return fmt.Errorf("upsert %s record %q: %w", kind, row.Key, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", kind, err)
	}
	return nil
}

func storedRows(ctx context.Context, tx *sql.Tx, kind domain.RecordKind) ([]rowsync.Row, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT record_key, position, payload FROM records WHERE kind = ?`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query %s keys: %w", kind, err)
	}
	defer rows.Close()

	var out []rowsync.Row
	for rows.Next() {
		var row rowsync.Row
		if err := rows.Scan(&row.Key, &row.Position, &row.Payload); err != nil {
			return nil, fmt.Errorf("scan %s keys: %w", kind, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s keys: %w", kind, err)
	}
	return out, nil
}

// Backup writes a consistent copy of the database with VACUUM INTO.
func (s *Store) Backup(ctx context.Context) error {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}
	target := filepath.Join(s.backupDir, BackupFileName)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove previous backup: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, target); err != nil {
		return fmt.Errorf("vacuum into %s: %w", target, err)
	}
	s.logger.InfoContext(ctx, "Backup written", slog.String("path", target))
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func decodePayload(payload string) (domain.Record, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()
	var rec domain.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("null payload")
	}
	return rec, nil
}
