package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// ReportingService defines read-only aggregations over a user's transactions.
type ReportingService interface {
	// Summary returns per-currency income, expense and net.
	Summary(ctx context.Context, username string) (domain.Summary, error)
	// TopCategories ranks expense categories. A blank currency covers all currencies.
	TopCategories(ctx context.Context, username, currency string, n int) ([]domain.CategoryShare, error)
	// CategoryBreakdown returns every expense category total, in first-encountered order.
	CategoryBreakdown(ctx context.Context, username, currency string) ([]dto.CategoryAmountResponse, error)
	MonthlyReport(ctx context.Context, username string, year int, month time.Month) (*domain.MonthlyReport, error)
	RecentTransactions(ctx context.Context, username string, limit int) ([]domain.Transaction, error)
	Dashboard(ctx context.Context, username string, today time.Time) (*domain.Dashboard, error)
}

// SearchService filters and sorts a user's transactions.
type SearchService interface {
	SearchTransactions(ctx context.Context, username string, params dto.SearchTransactionsParams) ([]domain.Transaction, error)
}

// BackupService takes point-in-time copies of every collection.
type BackupService interface {
	Backup(ctx context.Context) error
}
