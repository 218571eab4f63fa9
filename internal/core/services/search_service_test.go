package services_test

import (
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/stretchr/testify/suite"
)

type SearchServiceTestSuite struct {
	ServicesTestSuite
}

func TestSearchService(t *testing.T) {
	suite.Run(t, new(SearchServiceTestSuite))
}

func (s *SearchServiceTestSuite) TestDateRange() {
	s.addTx("alice", "1", "USD", "A", "2023-12-31", "expense")
	want := s.addTx("alice", "2", "USD", "B", "2024-01-15", "expense")
	s.addTx("alice", "3", "USD", "C", "2024-02-01", "expense")
	s.addTx("bob", "4", "USD", "D", "2024-01-15", "expense")

	txs, err := s.container.Search.SearchTransactions(s.ctx, "alice", dto.SearchTransactionsParams{
		StartDate: "2024-01-01", EndDate: "2024-01-31",
	})

	s.Require().NoError(err)
	s.Require().Len(txs, 1)
	s.Equal(want, txs[0].ID)
}

func (s *SearchServiceTestSuite) TestCategoryAmountAndSort() {
	s.addTx("alice", "30", "USD", "Food", "2024-01-03", "expense")
	s.addTx("alice", "5", "USD", " food ", "2024-01-01", "expense")
	s.addTx("alice", "80", "USD", "Food", "2024-01-02", "expense")
	s.addTx("alice", "20", "USD", "Rent", "2024-01-02", "expense")

	txs, err := s.container.Search.SearchTransactions(s.ctx, "alice", dto.SearchTransactionsParams{
		Category: "FOOD", MinAmount: "10", SortBy: "amount", Reverse: true,
	})

	s.Require().NoError(err)
	s.Require().Len(txs, 2)
	s.Equal("80", txs[0].Amount.String())
	s.Equal("30", txs[1].Amount.String())
}

func (s *SearchServiceTestSuite) TestInvalidParamsReportedTogether() {
	_, err := s.container.Search.SearchTransactions(s.ctx, "alice", dto.SearchTransactionsParams{
		StartDate: "yesterday", MaxAmount: "lots", SortBy: "colour",
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Len(apperrors.FieldErrors(err), 3)
}
