package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
)

// RecordKeeper serializes access to the record store. Each collection has
// its own lock: reads share it, and a load-modify-save sequence holds it
// exclusively from load to save, so concurrent writers never lose updates.
type RecordKeeper struct {
	store portsrepo.RecordStore
	locks map[domain.RecordKind]*sync.RWMutex
}

// NewRecordKeeper wraps store.
func NewRecordKeeper(store portsrepo.RecordStore) *RecordKeeper {
	locks := make(map[domain.RecordKind]*sync.RWMutex, len(domain.AllKinds))
	for _, kind := range domain.AllKinds {
		locks[kind] = &sync.RWMutex{}
	}
	return &RecordKeeper{store: store, locks: locks}
}

func (k *RecordKeeper) lockFor(kind domain.RecordKind) (*sync.RWMutex, error) {
	mu, ok := k.locks[kind]
	if !ok {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	return mu, nil
}

// Read loads a whole collection.
func (k *RecordKeeper) Read(ctx context.Context, kind domain.RecordKind) ([]domain.Record, error) {
	mu, err := k.lockFor(kind)
	if err != nil {
		return nil, err
	}
	mu.RLock()
	defer mu.RUnlock()

	records, err := k.store.Load(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	return records, nil
}

// Mutate loads kind, passes it to fn and saves what fn returns. When fn
// fails nothing is saved and its error is returned unwrapped.
func (k *RecordKeeper) Mutate(ctx context.Context, kind domain.RecordKind, fn func([]domain.Record) ([]domain.Record, error)) error {
	mu, err := k.lockFor(kind)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()

	records, err := k.store.Load(ctx, kind)
	if err != nil {
		return fmt.Errorf("load %s: %w", kind, err)
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	if err := k.store.Save(ctx, kind, updated); err != nil {
		return fmt.Errorf("save %s: %w", kind, err)
	}
	return nil
}

// Backup copies every collection while holding all read locks, so the
// copies form one consistent point in time.
func (k *RecordKeeper) Backup(ctx context.Context) error {
	for _, kind := range domain.AllKinds {
		mu := k.locks[kind]
		mu.RLock()
		defer mu.RUnlock()
	}
	if err := k.store.Backup(ctx); err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	return nil
}
