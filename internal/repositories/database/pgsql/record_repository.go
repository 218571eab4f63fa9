package pgsql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/repositories/database/rowsync"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecordRepository stores collections as JSONB rows in PostgreSQL, one row
// per record keyed by collection and record key.
type RecordRepository struct {
	BaseRepository
	logger *slog.Logger
}

var (
	_ portsrepo.RecordStore        = (*RecordRepository)(nil)
	_ portsrepo.TransactionManager = (*RecordRepository)(nil)
)

// NewRecordRepository wraps a migrated pool.
func NewRecordRepository(pool *pgxpool.Pool, logger *slog.Logger) *RecordRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordRepository{BaseRepository: BaseRepository{Pool: pool}, logger: logger}
}

func (r *RecordRepository) Load(ctx context.Context, kind domain.RecordKind) ([]domain.Record, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("load: unknown collection %q", kind)
	}
	rows, err := r.Pool.Query(ctx,
		`SELECT position, payload::text FROM records WHERE kind = $1 ORDER BY position`, string(kind))
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
		dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
		dec.UseNumber()
		var rec domain.Record
		if err := dec.Decode(&rec); err != nil || rec == nil {
			r.logger.WarnContext(ctx, "Skipping unreadable record", slog.String("kind", string(kind)), slog.Int("position", position))
			continue
		}
		records = append(records, domain.NormalizeRecord(kind, rec))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", kind, err)
	}
	return records, nil
}

// Save brings the stored collection in line with records inside one
// transaction, writing only the rows that changed. Saves of the same
// collection are serialised with a transaction-scoped advisory lock.
func (r *RecordRepository) Save(ctx context.Context, kind domain.RecordKind, records []domain.Record) error {
	if !kind.Valid() {
		return fmt.Errorf("save: unknown collection %q", kind)
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			r.logger.ErrorContext(ctx, "Rollback failed", slog.String("error", rbErr.Error()))
		}
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('records:' || $1))`, string(kind)); err != nil {
		return fmt.Errorf("lock %s: %w", kind, err)
	}
	existing, err := storedRows(ctx, tx, kind)
	if err != nil {
		return err
	}
	plan, err := rowsync.Diff(kind, existing, records)
	if err != nil {
		return err
	}
	if plan.Empty() {
		return r.Commit(ctx, tx)
	}

	batch := &pgx.Batch{}
	for _, key := range plan.Deletes {
		batch.Queue(`DELETE FROM records WHERE kind = $1 AND record_key = $2`, string(kind), key)
	}
	for _, row := range plan.Upserts {
		batch.Queue(`INSERT INTO records (kind, record_key, position, payload) VALUES ($1, $2, $3, $4::jsonb)
			ON CONFLICT (kind, record_key) DO UPDATE SET position = EXCLUDED.position, payload = EXCLUDED.payload`,
			string(kind), row.Key, row.Position, row.Payload)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("write %s: %w", kind, err)
	}
	return r.Commit(ctx, tx)
}

func storedRows(ctx context.Context, tx pgx.Tx, kind domain.RecordKind) ([]rowsync.Row, error) {
	rows, err := tx.Query(ctx,
		`SELECT record_key, position, payload::text FROM records WHERE kind = $1`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query %s keys: %w", kind, err)
	}
	stored, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (rowsync.Row, error) {
		var out rowsync.Row
		err := row.Scan(&out.Key, &out.Position, &out.Payload)
		return out, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s keys: %w", kind, err)
	}
	return stored, nil
}

// Backup copies the current contents of every collection into records_backup
// under a single snapshot timestamp.
func (r *RecordRepository) Backup(ctx context.Context) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			r.logger.ErrorContext(ctx, "Rollback failed", slog.String("error", rbErr.Error()))
		}
	}()

	tag, err := tx.Exec(ctx, `INSERT INTO records_backup (snapshot_at, kind, position, record_key, payload)
		SELECT now(), kind, position, record_key, payload FROM records`)
	if err != nil {
		return fmt.Errorf("snapshot records: %w", err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "Backup written", slog.Int64("rows", tag.RowsAffected()))
	return nil
}

// Close releases the pool.
func (r *RecordRepository) Close() error {
	r.Pool.Close()
	return nil
}
