// Package file persists collections as flat files: users as a JSON object
// keyed by username, transactions as CSV, goals and reminders as JSON arrays.
package file

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"golang.org/x/sync/errgroup"
)

// TransactionColumns is the CSV header of the transactions file.
var TransactionColumns = []string{"id", "username", "amount", "currency", "category", "date", "description", "type", "payment"}

var fileNames = map[domain.RecordKind]string{
	domain.KindUsers:        "users.json",
	domain.KindTransactions: "transactions.csv",
	domain.KindGoals:        "goals.json",
	domain.KindReminders:    "reminders.json",
}

// Store is a RecordStore over a data directory.
type Store struct {
	dataDir   string
	backupDir string
	logger    *slog.Logger
}

var _ portsrepo.RecordStore = (*Store)(nil)

// NewStore creates the data and backup directories if needed.
func NewStore(dataDir, backupDir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, dir := range []string{dataDir, backupDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return &Store{dataDir: dataDir, backupDir: backupDir, logger: logger}, nil
}

// Path returns the file backing kind.
func (s *Store) Path(kind domain.RecordKind) string {
	return filepath.Join(s.dataDir, fileNames[kind])
}

// BackupPath returns the backup file for kind, e.g. users_backup.json.
func (s *Store) BackupPath(kind domain.RecordKind) string {
	name := fileNames[kind]
	ext := filepath.Ext(name)
	return filepath.Join(s.backupDir, strings.TrimSuffix(name, ext)+"_backup"+ext)
}

func (s *Store) Load(ctx context.Context, kind domain.RecordKind) ([]domain.Record, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("load: unknown collection %q", kind)
	}
	path := s.Path(kind)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.Save(ctx, kind, nil); err != nil {
			return nil, fmt.Errorf("initialise %s: %w", kind, err)
		}
		return []domain.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", kind, err)
	}

	records, err := decode(kind, data)
	if err != nil {
		s.logger.WarnContext(ctx, "Collection unreadable, treating as empty",
			slog.String("kind", string(kind)),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return []domain.Record{}, nil
	}
	return domain.NormalizeRecords(kind, records), nil
}

func (s *Store) Save(ctx context.Context, kind domain.RecordKind, records []domain.Record) error {
	if !kind.Valid() {
		return fmt.Errorf("save: unknown collection %q", kind)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encode(kind, records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	if err := writeAtomic(s.Path(kind), data); err != nil {
		return fmt.Errorf("write %s: %w", kind, err)
	}
	return nil
}

// Backup copies every existing collection file into the backup directory.
func (s *Store) Backup(ctx context.Context) error {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range domain.AllKinds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(s.Path(kind))
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.DebugContext(gctx, "Nothing to back up", slog.String("kind", string(kind)))
				return nil
			}
			if err != nil {
				return fmt.Errorf("read %s for backup: %w", kind, err)
			}
			if err := writeAtomic(s.BackupPath(kind), data); err != nil {
				return fmt.Errorf("back up %s: %w", kind, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Backup written", slog.String("dir", s.backupDir))
	return nil
}

func (s *Store) Close() error { return nil }

func decode(kind domain.RecordKind, data []byte) ([]domain.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Record{}, nil
	}
	var (
		records []domain.Record
		err     error
	)
	switch kind {
	case domain.KindUsers:
		records, err = decodeUsers(data)
	case domain.KindTransactions:
		records, err = decodeCSV(data)
	default:
		records, err = decodeArray(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageCorrupt, err)
	}
	return records, nil
}

// decodeUsers reads a JSON object keyed by username, keeping file order.
func decodeUsers(data []byte) ([]domain.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil {
		return nil, err
	} else if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	records := []domain.Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		username, _ := tok.(string)
		var rec domain.Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("user %q: %w", username, err)
		}
		if rec == nil {
			rec = domain.Record{}
		}
		if rec.String("username") == "" {
			rec["username"] = username
		}
		records = append(records, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return records, nil
}

func decodeArray(data []byte) ([]domain.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw []domain.Record
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(raw))
	for _, r := range raw {
		if r != nil {
			records = append(records, r)
		}
	}
	return records, nil
}

func decodeCSV(data []byte) ([]domain.Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.Record{}, nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := domain.Record{}
		for i, col := range header {
			if i < len(row) && col != "" {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func encode(kind domain.RecordKind, records []domain.Record) ([]byte, error) {
	switch kind {
	case domain.KindUsers:
		return encodeUsers(records)
	case domain.KindTransactions:
		return encodeCSV(records)
	default:
		if records == nil {
			records = []domain.Record{}
		}
		return json.MarshalIndent(records, "", "  ")
	}
}

func encodeUsers(records []domain.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, r := range records {
		username := r.String("username")
		if username == "" {
			return nil, fmt.Errorf("user record %d has no username", i)
		}
		value := r.Clone()
		delete(value, "username")
		key, err := json.Marshal(username)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteString(",")
		}
		buf.Write(key)
		buf.WriteString(":")
		buf.Write(body)
	}
	buf.WriteString("}")

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteString("\n")
	return out.Bytes(), nil
}

func encodeCSV(records []domain.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(TransactionColumns); err != nil {
		return nil, err
	}
	row := make([]string, len(TransactionColumns))
	for _, r := range records {
		for i, col := range TransactionColumns {
			row[i] = r.String(col)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeAtomic replaces path with data via a temporary file and rename.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
