package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// TransactionReaderSvc defines read operations over a user's transactions.
type TransactionReaderSvc interface {
	// ListTransactions returns the user's transactions in store order.
	ListTransactions(ctx context.Context, username string) ([]domain.Transaction, error)
	// GetTransaction resolves ref as an exact id or unique id prefix.
	GetTransaction(ctx context.Context, username, ref string) (*domain.Transaction, error)
	// ListTransactionsPage returns one page of ListTransactions and the token of the next page.
	ListTransactionsPage(ctx context.Context, username string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations over a user's transactions.
type TransactionWriterSvc interface {
	AddTransaction(ctx context.Context, username string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	// UpdateTransaction applies each provided field independently. Fields that
	// fail validation are left unchanged and reported back.
	UpdateTransaction(ctx context.Context, username, ref string, req dto.UpdateTransactionRequest) (*domain.Transaction, []apperrors.FieldError, error)
	DeleteTransaction(ctx context.Context, username, ref string) error
}

// TransactionSvcFacade combines the transaction ledger interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// GoalSvcFacade is the savings goal ledger.
type GoalSvcFacade interface {
	AddGoal(ctx context.Context, username string, req dto.CreateGoalRequest) (*domain.Goal, error)
	ListGoals(ctx context.Context, username string) ([]domain.Goal, error)
	GetGoal(ctx context.Context, username, ref string) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, username, ref string, req dto.UpdateGoalRequest) (*domain.Goal, []apperrors.FieldError, error)
	DeleteGoal(ctx context.Context, username, ref string) error
}

// ReminderSvcFacade is the bill reminder ledger.
type ReminderSvcFacade interface {
	AddReminder(ctx context.Context, username string, req dto.CreateReminderRequest) (*domain.Reminder, error)
	ListReminders(ctx context.Context, username string) ([]domain.Reminder, error)
	GetReminder(ctx context.Context, username, ref string) (*domain.Reminder, error)
	UpdateReminder(ctx context.Context, username, ref string, req dto.UpdateReminderRequest) (*domain.Reminder, []apperrors.FieldError, error)
	DeleteReminder(ctx context.Context, username, ref string) error
	// DueReminders returns the reminders that carry a notice on today, soonest first.
	DueReminders(ctx context.Context, username string, today time.Time) ([]domain.ReminderDue, error)
}
