// Package memory provides a process-local RecordStore.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
)

// Store keeps collections in memory. Records are copied on every Load and
// Save so callers never share maps with the store.
type Store struct {
	mu          sync.RWMutex
	collections map[domain.RecordKind][]domain.Record
	backups     []map[domain.RecordKind][]domain.Record
}

var _ portsrepo.RecordStore = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{collections: map[domain.RecordKind][]domain.Record{}}
}

func (s *Store) Load(ctx context.Context, kind domain.RecordKind) ([]domain.Record, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("load: unknown collection %q", kind)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.NormalizeRecords(kind, s.collections[kind]), nil
}

func (s *Store) Save(ctx context.Context, kind domain.RecordKind, records []domain.Record) error {
	if !kind.Valid() {
		return fmt.Errorf("save: unknown collection %q", kind)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[kind] = copyRecords(records)
	return nil
}

// Backup records a snapshot of every collection.
func (s *Store) Backup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[domain.RecordKind][]domain.Record, len(domain.AllKinds))
	for _, kind := range domain.AllKinds {
		snap[kind] = copyRecords(s.collections[kind])
	}
	s.backups = append(s.backups, snap)
	return nil
}

// LatestBackup returns the most recent snapshot of kind.
func (s *Store) LatestBackup(kind domain.RecordKind) ([]domain.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.backups) == 0 {
		return nil, false
	}
	return copyRecords(s.backups[len(s.backups)-1][kind]), true
}

func (s *Store) Close() error { return nil }

func copyRecords(records []domain.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
