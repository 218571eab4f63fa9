package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (s *HandlersTestSuite) TestCreateGoal_IncludesProgress() {
	req := dto.CreateGoalRequest{Title: "Trip", TargetAmount: "1000", CurrentAmount: "250", Deadline: "2024-12-31"}
	goal := &domain.Goal{
		ID: "g-1", Username: testUser, Title: "Trip",
		TargetAmount: decimal.NewFromInt(1000), CurrentAmount: decimal.NewFromInt(250),
		Deadline: "2024-12-31", Status: domain.GoalActive,
	}
	s.goals.On("AddGoal", mock.Anything, testUser, req).Return(goal, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/goals", req)

	s.Equal(http.StatusCreated, w.Code)
	var got dto.GoalResponse
	s.decode(w, &got)
	s.Equal("g-1", got.ID)
	s.Equal(domain.GoalActive, got.Status)
	s.InDelta(25.0, got.Progress, 1e-9)
}

func (s *HandlersTestSuite) TestUpdateGoal_StatusContradiction() {
	req := dto.UpdateGoalRequest{Status: dto.StringPtr("completed")}
	s.goals.On("UpdateGoal", mock.Anything, testUser, "g-1", req).
		Return(nil, nil, apperrors.NewFieldError("status", "is derived from the amounts and is active")).Once()

	w := s.do(http.MethodPut, "/api/v1/goals/g-1", req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "is derived from the amounts")
}

func (s *HandlersTestSuite) TestListGoals() {
	s.goals.On("ListGoals", mock.Anything, testUser).Return([]domain.Goal{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/goals", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *HandlersTestSuite) TestDeleteGoal_NotFound() {
	s.goals.On("DeleteGoal", mock.Anything, testUser, "zz").Return(apperrors.ErrNotFound).Once()

	w := s.do(http.MethodDelete, "/api/v1/goals/zz", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestDueReminders() {
	due := []domain.ReminderDue{{
		Reminder: domain.Reminder{ID: "r-1", Title: "Rent", Amount: decimal.NewFromInt(900), Deadline: "2024-05-12"},
		State:    domain.DueState{Status: domain.DueSoon, DaysLeft: 2},
		Message:  "due in 2 days",
	}}
	s.reminders.On("DueReminders", mock.Anything, testUser, mock.AnythingOfType("time.Time")).Return(due, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reminders/due", nil)

	s.Equal(http.StatusOK, w.Code)
	var got []domain.ReminderDue
	s.decode(w, &got)
	s.Require().Len(got, 1)
	s.Equal("due in 2 days", got[0].Message)
	s.Equal(domain.DueSoon, got[0].State.Status)
}

func (s *HandlersTestSuite) TestCreateReminder() {
	req := dto.CreateReminderRequest{Title: "Rent", Amount: "900", Deadline: "2024-06-01"}
	s.reminders.On("AddReminder", mock.Anything, testUser, req).
		Return(&domain.Reminder{ID: "r-1", Username: testUser, Title: "Rent", Amount: decimal.NewFromInt(900), Deadline: "2024-06-01"}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/reminders", `{"title":"Rent","amount":900,"deadline":"2024-06-01"}`)

	s.Equal(http.StatusCreated, w.Code)
}

func (s *HandlersTestSuite) TestUpdateReminder() {
	req := dto.UpdateReminderRequest{Deadline: dto.StringPtr("2024-06-02")}
	s.reminders.On("UpdateReminder", mock.Anything, testUser, "r-1", req).
		Return(&domain.Reminder{ID: "r-1", Deadline: "2024-06-02"}, nil, nil).Once()

	w := s.do(http.MethodPut, "/api/v1/reminders/r-1", req)

	s.Equal(http.StatusOK, w.Code)
	var got dto.ReminderEditResponse
	s.decode(w, &got)
	s.Equal("2024-06-02", got.Reminder.Deadline)
	s.Empty(got.RejectedFields)
}

func (s *HandlersTestSuite) TestGetReminder_Ambiguous() {
	s.reminders.On("GetReminder", mock.Anything, testUser, "r").Return(nil, apperrors.ErrAmbiguousReference).Once()

	w := s.do(http.MethodGet, "/api/v1/reminders/r", nil)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestMonthlyReport_DefaultsToCurrentMonth() {
	now := time.Now()
	report := &domain.MonthlyReport{Year: now.Year(), Month: now.Month(), Totals: domain.Summary{}, Categories: []domain.CategoryStat{}}
	s.reporting.On("MonthlyReport", mock.Anything, testUser, mock.AnythingOfType("int"), mock.AnythingOfType("time.Month")).Return(report, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/monthly", nil)

	s.Equal(http.StatusOK, w.Code)
	call := s.reporting.Calls[0]
	s.Positive(call.Arguments.Int(2))
	s.NotZero(call.Arguments.Get(3).(time.Month))
}

func (s *HandlersTestSuite) TestMonthlyReport_Explicit() {
	s.reporting.On("MonthlyReport", mock.Anything, testUser, 2024, time.March).
		Return(&domain.MonthlyReport{Year: 2024, Month: time.March}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/monthly?year=2024&month=3", nil)

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestMonthlyReport_InvalidMonth() {
	s.reporting.On("MonthlyReport", mock.Anything, testUser, 2024, time.Month(13)).
		Return(nil, apperrors.NewFieldError("month", "must be between 1 and 12")).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/monthly?year=2024&month=13", nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestSummary() {
	sum := domain.Summary{"USD": {Income: decimal.NewFromInt(100), Expense: decimal.NewFromInt(40), Net: decimal.NewFromInt(60)}}
	s.reporting.On("Summary", mock.Anything, testUser).Return(sum, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/summary", nil)

	s.Equal(http.StatusOK, w.Code)
	var got dto.SummaryResponse
	s.decode(w, &got)
	s.True(decimal.NewFromInt(60).Equal(got.Currencies["USD"].Net))
}

func (s *HandlersTestSuite) TestTopCategories_Defaults() {
	s.reporting.On("TopCategories", mock.Anything, testUser, "EUR", 5).Return([]domain.CategoryShare{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/top-categories?currency=EUR", nil)

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestBreakdown() {
	rows := []dto.CategoryAmountResponse{{Category: "Food", Amount: decimal.NewFromInt(40)}}
	s.reporting.On("CategoryBreakdown", mock.Anything, testUser, "").Return(rows, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/breakdown", nil)

	s.Equal(http.StatusOK, w.Code)
	var got dto.BreakdownResponse
	s.decode(w, &got)
	s.Require().Len(got.Categories, 1)
	s.Equal("Food", got.Categories[0].Category)
}

func (s *HandlersTestSuite) TestRecent() {
	s.reporting.On("RecentTransactions", mock.Anything, testUser, 5).Return([]domain.Transaction{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/recent", nil)

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestRecent_RejectsNegativeLimit() {
	w := s.do(http.MethodGet, "/api/v1/reports/recent?limit=-1", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.reporting.AssertNotCalled(s.T(), "RecentTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestDashboard() {
	dash := &domain.Dashboard{Currency: "USD", TopCategories: []domain.CategoryShare{}, Recent: []domain.Transaction{}, DueReminders: []domain.ReminderDue{}}
	s.reporting.On("Dashboard", mock.Anything, testUser, mock.AnythingOfType("time.Time")).Return(dash, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/dashboard", nil)

	s.Equal(http.StatusOK, w.Code)
	var got domain.Dashboard
	s.decode(w, &got)
	s.Equal("USD", got.Currency)
}
