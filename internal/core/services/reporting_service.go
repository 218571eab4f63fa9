package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/reporting"
)

const (
	dashboardTopCategories = 5
	dashboardRecent        = 5
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	keeper          *RecordKeeper
	reminders       portssvc.ReminderSvcFacade
	defaultCurrency string
}

// NewReportingService creates the read-only aggregation service. reminders
// feeds the dashboard; defaultCurrency applies to users without one.
func NewReportingService(keeper *RecordKeeper, reminders portssvc.ReminderSvcFacade, defaultCurrency string, options ...ServiceOption) portssvc.ReportingService {
	if !domain.ValidCurrency(defaultCurrency) {
		defaultCurrency = domain.DefaultCurrency
	}
	return &reportingService{
		BaseService:     newBaseService(options...),
		keeper:          keeper,
		reminders:       reminders,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) Summary(ctx context.Context, username string) (domain.Summary, error) {
	txs, err := loadUserTransactions(ctx, s.keeper, username)
	if err != nil {
		return nil, err
	}
	return reporting.Summarize(txs), nil
}

func (s *reportingService) TopCategories(ctx context.Context, username, currency string, n int) ([]domain.CategoryShare, error) {
	currency, err := optionalCurrency(currency)
	if err != nil {
		return nil, err
	}
	txs, err := loadUserTransactions(ctx, s.keeper, username)
	if err != nil {
		return nil, err
	}
	return reporting.TopCategories(txs, currency, n), nil
}

func (s *reportingService) CategoryBreakdown(ctx context.Context, username, currency string) ([]dto.CategoryAmountResponse, error) {
	currency, err := optionalCurrency(currency)
	if err != nil {
		return nil, err
	}
	txs, err := loadUserTransactions(ctx, s.keeper, username)
	if err != nil {
		return nil, err
	}
	order, totals := reporting.CategoryTotals(txs, currency)
	out := make([]dto.CategoryAmountResponse, len(order))
	for i, category := range order {
		out[i] = dto.CategoryAmountResponse{Category: category, Amount: totals[category]}
	}
	return out, nil
}

func (s *reportingService) MonthlyReport(ctx context.Context, username string, year int, month time.Month) (*domain.MonthlyReport, error) {
	var verrs apperrors.ValidationErrors
	if year < 1 || year > 9999 {
		verrs.Add("year", "must be between 1 and 9999")
	}
	if month < time.January || month > time.December {
		verrs.Add("month", "must be between 1 and 12")
	}
	if err := verrs.OrNil(); err != nil {
		return nil, err
	}
	txs, err := loadUserTransactions(ctx, s.keeper, username)
	if err != nil {
		return nil, err
	}
	report := reporting.Monthly(txs, year, month)
	return &report, nil
}

func (s *reportingService) RecentTransactions(ctx context.Context, username string, limit int) ([]domain.Transaction, error) {
	txs, err := loadUserTransactions(ctx, s.keeper, username)
	if err != nil {
		return nil, err
	}
	return reporting.Recent(txs, limit), nil
}

// Dashboard reports in the user's preferred currency. Totals for a currency
// without activity are zero.
func (s *reportingService) Dashboard(ctx context.Context, username string, today time.Time) (*domain.Dashboard, error) {
	txs, err := loadUserTransactions(ctx, s.keeper, username)
	if err != nil {
		return nil, err
	}
	currency, err := s.preferredCurrency(ctx, username)
	if err != nil {
		return nil, err
	}
	due, err := s.reminders.DueReminders(ctx, username, today)
	if err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Building dashboard", slog.String("username", username), slog.String("currency", currency), slog.Int("transactions", len(txs)))
	return &domain.Dashboard{
		Currency:      currency,
		Totals:        reporting.Summarize(txs).For(currency),
		TopCategories: reporting.TopCategories(txs, currency, dashboardTopCategories),
		Recent:        reporting.Recent(txs, dashboardRecent),
		DueReminders:  due,
	}, nil
}

func (s *reportingService) preferredCurrency(ctx context.Context, username string) (string, error) {
	users, err := s.keeper.Read(ctx, domain.KindUsers)
	if err != nil {
		return "", err
	}
	for _, r := range users {
		if r.Key(domain.KindUsers) != username {
			continue
		}
		if c := domain.NormalizeCurrency(r.String("currency")); domain.ValidCurrency(c) {
			return c, nil
		}
		break
	}
	return s.defaultCurrency, nil
}

// optionalCurrency normalizes a currency filter. Blank means every currency.
func optionalCurrency(currency string) (string, error) {
	c := domain.NormalizeCurrency(currency)
	if c != "" && !domain.ValidCurrency(c) {
		return "", apperrors.NewFieldError("currency", "must be a three letter currency code")
	}
	return c, nil
}
