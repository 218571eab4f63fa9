package services

import (
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
)

// NewServiceContainer wires every service over one record store. All
// services share a RecordKeeper so their writes are serialized per collection.
func NewServiceContainer(cfg *config.Config, store portsrepo.RecordStore, options ...ServiceOption) *portssvc.ServiceContainer {
	keeper := NewRecordKeeper(store)

	container := &portssvc.ServiceContainer{}
	container.Transaction = NewTransactionService(keeper, options...)
	container.Goal = NewGoalService(keeper, options...)
	container.Reminder = NewReminderService(keeper, options...)
	container.Reporting = NewReportingService(keeper, container.Reminder, cfg.DefaultCurrency, options...)
	container.Search = NewSearchService(keeper, options...)
	container.User = NewUserService(keeper,
		WithDefaultCurrency(cfg.DefaultCurrency),
		WithUserBaseOptions(options...),
	)
	container.Token = NewTokenService(cfg)
	container.Backup = NewBackupService(keeper, options...)

	return container
}
