package handlers_test

import (
	"net/http"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func sampleTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:          "3f2a9c10",
		Username:    testUser,
		Amount:      decimal.RequireFromString("12.5"),
		Currency:    "USD",
		Category:    "Food",
		Date:        "2024-05-01",
		Description: "lunch",
		Type:        domain.Expense,
		Payment:     domain.PaymentCash,
	}
}

func (s *HandlersTestSuite) TestCreateTransaction() {
	req := dto.CreateTransactionRequest{
		Amount:      "12.5",
		Currency:    "usd",
		Category:    "Food",
		Date:        "2024-05-01",
		Description: "lunch",
		Type:        "expense",
	}
	s.transactions.On("AddTransaction", mock.Anything, testUser, req).Return(sampleTransaction(), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/transactions", `{"amount":12.5,"currency":"usd","category":"Food","date":"2024-05-01","description":"lunch","type":"expense"}`)

	s.Equal(http.StatusCreated, w.Code)
	var got domain.Transaction
	s.decode(w, &got)
	s.Equal("3f2a9c10", got.ID)
	s.True(decimal.RequireFromString("12.5").Equal(got.Amount))
}

func (s *HandlersTestSuite) TestCreateTransaction_ValidationFields() {
	s.transactions.On("AddTransaction", mock.Anything, testUser, mock.Anything).
		Return(nil, apperrors.ValidationErrors{{Field: "amount", Message: "must be a positive number"}}).Once()

	w := s.do(http.MethodPost, "/api/v1/transactions", `{"amount":"-3"}`)

	s.Equal(http.StatusBadRequest, w.Code)
	var got struct {
		Error  string                 `json:"error"`
		Fields []apperrors.FieldError `json:"fields"`
	}
	s.decode(w, &got)
	s.Equal("validation error", got.Error)
	s.Equal([]apperrors.FieldError{{Field: "amount", Message: "must be a positive number"}}, got.Fields)
}

func (s *HandlersTestSuite) TestCreateTransaction_MalformedBody() {
	w := s.do(http.MethodPost, "/api/v1/transactions", `{"amount":`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "Invalid request format")
}

func (s *HandlersTestSuite) TestListTransactionsPage() {
	next := "abc"
	page := &dto.ListTransactionsResponse{Transactions: []domain.Transaction{*sampleTransaction()}, NextToken: &next}
	s.transactions.On("ListTransactionsPage", mock.Anything, testUser, dto.ListTransactionsParams{Limit: 10, NextToken: "xyz"}).Return(page, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/transactions?limit=10&nextToken=xyz", nil)

	s.Equal(http.StatusOK, w.Code)
	var got dto.ListTransactionsResponse
	s.decode(w, &got)
	s.Len(got.Transactions, 1)
	s.Require().NotNil(got.NextToken)
	s.Equal("abc", *got.NextToken)
}

func (s *HandlersTestSuite) TestListTransactions_DefaultLimit() {
	s.transactions.On("ListTransactionsPage", mock.Anything, testUser, dto.ListTransactionsParams{Limit: 50}).
		Return(&dto.ListTransactionsResponse{Transactions: []domain.Transaction{}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/transactions", nil)

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestSearchTransactions() {
	params := dto.SearchTransactionsParams{StartDate: "2024-01-01", Category: "foo", SortBy: "amount", Reverse: true}
	s.search.On("SearchTransactions", mock.Anything, testUser, params).Return([]domain.Transaction{*sampleTransaction()}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/transactions/search?start_date=2024-01-01&category=foo&sort_by=amount&reverse=true", nil)

	s.Equal(http.StatusOK, w.Code)
	var got []domain.Transaction
	s.decode(w, &got)
	s.Len(got, 1)
}

func (s *HandlersTestSuite) TestGetTransaction_ErrorMapping() {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "not found", err: apperrors.ErrNotFound, code: http.StatusNotFound},
		{name: "ambiguous", err: apperrors.ErrAmbiguousReference, code: http.StatusConflict},
		{name: "unexpected", err: assertErr("disk on fire"), code: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.transactions.On("GetTransaction", mock.Anything, testUser, "3f").Return(nil, tt.err).Once()

			w := s.do(http.MethodGet, "/api/v1/transactions/3f", nil)

			s.Equal(tt.code, w.Code)
			s.NotContains(w.Body.String(), "disk on fire")
		})
	}
}

func (s *HandlersTestSuite) TestUpdateTransaction_ReportsRejectedFields() {
	req := dto.UpdateTransactionRequest{Amount: dto.FlexPtr("abc"), Category: dto.StringPtr("Books")}
	tx := sampleTransaction()
	tx.Category = "Books"
	rejected := []apperrors.FieldError{{Field: "amount", Message: "must be a positive number"}}
	s.transactions.On("UpdateTransaction", mock.Anything, testUser, "3f2a", req).Return(tx, rejected, nil).Once()

	w := s.do(http.MethodPut, "/api/v1/transactions/3f2a", `{"amount":"abc","category":"Books"}`)

	s.Equal(http.StatusOK, w.Code)
	var got dto.TransactionEditResponse
	s.decode(w, &got)
	s.Equal("Books", got.Transaction.Category)
	s.Equal(rejected, got.RejectedFields)
}

func (s *HandlersTestSuite) TestDeleteTransaction() {
	s.transactions.On("DeleteTransaction", mock.Anything, testUser, "3f2a").Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/transactions/3f2a", nil)

	s.Equal(http.StatusNoContent, w.Code)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
