package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// RecordReader loads whole collections.
type RecordReader interface {
	// Load returns the collection in store order. Missing storage is
	// initialised empty and unreadable storage is treated as empty; neither
	// is an error.
	Load(ctx context.Context, kind domain.RecordKind) ([]domain.Record, error)
}

// RecordWriter replaces whole collections.
type RecordWriter interface {
	// Save overwrites the collection. Readers never observe a partial write.
	Save(ctx context.Context, kind domain.RecordKind, records []domain.Record) error
}

// RecordBackup takes point-in-time copies of every collection.
type RecordBackup interface {
	Backup(ctx context.Context) error
}

// RecordStore is the persistence boundary for the four collections.
type RecordStore interface {
	RecordReader
	RecordWriter
	RecordBackup
	Close() error
}
