package services

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
)

type backupService struct {
	BaseService
	keeper *RecordKeeper
}

// NewBackupService creates the backup service.
func NewBackupService(keeper *RecordKeeper, options ...ServiceOption) portssvc.BackupService {
	return &backupService{BaseService: newBaseService(options...), keeper: keeper}
}

func (s *backupService) Backup(ctx context.Context) error {
	start := s.now()
	if err := s.keeper.Backup(ctx); err != nil {
		s.LogError(ctx, err, "Backup failed")
		return err
	}
	s.LogInfo(ctx, "Backup completed", slog.Duration("took", s.now().Sub(start)))
	return nil
}
