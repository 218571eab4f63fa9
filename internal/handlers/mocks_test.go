package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, username string) ([]domain.Transaction, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransaction(ctx context.Context, username, ref string) (*domain.Transaction, error) {
	args := m.Called(ctx, username, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactionsPage(ctx context.Context, username string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, username, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) AddTransaction(ctx context.Context, username string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, username, ref string, req dto.UpdateTransactionRequest) (*domain.Transaction, []apperrors.FieldError, error) {
	args := m.Called(ctx, username, ref, req)
	var rejected []apperrors.FieldError
	if r := args.Get(1); r != nil {
		rejected = r.([]apperrors.FieldError)
	}
	if args.Get(0) == nil {
		return nil, rejected, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), rejected, args.Error(2)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, username, ref string) error {
	return m.Called(ctx, username, ref).Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock SearchService ---
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) SearchTransactions(ctx context.Context, username string, params dto.SearchTransactionsParams) ([]domain.Transaction, error) {
	args := m.Called(ctx, username, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

var _ portssvc.SearchService = (*MockSearchService)(nil)

// --- Mock GoalService ---
type MockGoalService struct {
	mock.Mock
}

func (m *MockGoalService) AddGoal(ctx context.Context, username string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	args := m.Called(ctx, username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}
func (m *MockGoalService) ListGoals(ctx context.Context, username string) ([]domain.Goal, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}
func (m *MockGoalService) GetGoal(ctx context.Context, username, ref string) (*domain.Goal, error) {
	args := m.Called(ctx, username, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}
func (m *MockGoalService) UpdateGoal(ctx context.Context, username, ref string, req dto.UpdateGoalRequest) (*domain.Goal, []apperrors.FieldError, error) {
	args := m.Called(ctx, username, ref, req)
	var rejected []apperrors.FieldError
	if r := args.Get(1); r != nil {
		rejected = r.([]apperrors.FieldError)
	}
	if args.Get(0) == nil {
		return nil, rejected, args.Error(2)
	}
	return args.Get(0).(*domain.Goal), rejected, args.Error(2)
}
func (m *MockGoalService) DeleteGoal(ctx context.Context, username, ref string) error {
	return m.Called(ctx, username, ref).Error(0)
}

var _ portssvc.GoalSvcFacade = (*MockGoalService)(nil)

// --- Mock ReminderService ---
type MockReminderService struct {
	mock.Mock
}

func (m *MockReminderService) AddReminder(ctx context.Context, username string, req dto.CreateReminderRequest) (*domain.Reminder, error) {
	args := m.Called(ctx, username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reminder), args.Error(1)
}
func (m *MockReminderService) ListReminders(ctx context.Context, username string) ([]domain.Reminder, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reminder), args.Error(1)
}
func (m *MockReminderService) GetReminder(ctx context.Context, username, ref string) (*domain.Reminder, error) {
	args := m.Called(ctx, username, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reminder), args.Error(1)
}
func (m *MockReminderService) UpdateReminder(ctx context.Context, username, ref string, req dto.UpdateReminderRequest) (*domain.Reminder, []apperrors.FieldError, error) {
	args := m.Called(ctx, username, ref, req)
	var rejected []apperrors.FieldError
	if r := args.Get(1); r != nil {
		rejected = r.([]apperrors.FieldError)
	}
	if args.Get(0) == nil {
		return nil, rejected, args.Error(2)
	}
	return args.Get(0).(*domain.Reminder), rejected, args.Error(2)
}
func (m *MockReminderService) DeleteReminder(ctx context.Context, username, ref string) error {
	return m.Called(ctx, username, ref).Error(0)
}
func (m *MockReminderService) DueReminders(ctx context.Context, username string, today time.Time) ([]domain.ReminderDue, error) {
	args := m.Called(ctx, username, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReminderDue), args.Error(1)
}

var _ portssvc.ReminderSvcFacade = (*MockReminderService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Summary(ctx context.Context, username string) (domain.Summary, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Summary), args.Error(1)
}
func (m *MockReportingService) TopCategories(ctx context.Context, username, currency string, n int) ([]domain.CategoryShare, error) {
	args := m.Called(ctx, username, currency, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryShare), args.Error(1)
}
func (m *MockReportingService) CategoryBreakdown(ctx context.Context, username, currency string) ([]dto.CategoryAmountResponse, error) {
	args := m.Called(ctx, username, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CategoryAmountResponse), args.Error(1)
}
func (m *MockReportingService) MonthlyReport(ctx context.Context, username string, year int, month time.Month) (*domain.MonthlyReport, error) {
	args := m.Called(ctx, username, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyReport), args.Error(1)
}
func (m *MockReportingService) RecentTransactions(ctx context.Context, username string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, username, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockReportingService) Dashboard(ctx context.Context, username string, today time.Time) (*domain.Dashboard, error) {
	args := m.Called(ctx, username, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Register(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateProfile(ctx context.Context, username string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ChangePassword(ctx context.Context, username string, req dto.ChangePasswordRequest) error {
	return m.Called(ctx, username, req).Error(0)
}
func (m *MockUserService) DeleteUser(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}
func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock BackupService ---
type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) Backup(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ portssvc.BackupService = (*MockBackupService)(nil)
