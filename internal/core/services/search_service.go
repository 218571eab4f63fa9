package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/search"
	"github.com/SscSPs/finance_tracker/internal/utils/validation"
	"github.com/shopspring/decimal"
)

type searchService struct {
	BaseService
	keeper *RecordKeeper
}

// NewSearchService creates the transaction query service.
func NewSearchService(keeper *RecordKeeper, options ...ServiceOption) portssvc.SearchService {
	return &searchService{BaseService: newBaseService(options...), keeper: keeper}
}

var _ portssvc.SearchService = (*searchService)(nil)

// SearchTransactions parses params and runs the filter pipeline over the
// user's transactions. All malformed parameters are reported together.
func (s *searchService) SearchTransactions(ctx context.Context, username string, params dto.SearchTransactionsParams) ([]domain.Transaction, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	criteria, err := parseCriteria(username, params)
	if err != nil {
		return nil, err
	}

	records, err := s.keeper.Read(ctx, domain.KindTransactions)
	if err != nil {
		return nil, err
	}
	result := search.Apply(domain.TransactionsFromRecords(records), criteria)
	s.LogDebug(ctx, "Transaction search", slog.String("sort_by", string(criteria.SortBy)), slog.Int("results", len(result)))
	return result, nil
}

func parseCriteria(username string, params dto.SearchTransactionsParams) (search.Criteria, error) {
	var verrs apperrors.ValidationErrors
	criteria := search.Criteria{
		Username: username,
		Category: strings.TrimSpace(params.Category),
		Reverse:  params.Reverse,
	}
	criteria.Start = optionalDate(&verrs, "start_date", params.StartDate)
	criteria.End = optionalDate(&verrs, "end_date", params.EndDate)
	criteria.MinAmount = optionalAmount(&verrs, "min_amount", params.MinAmount)
	criteria.MaxAmount = optionalAmount(&verrs, "max_amount", params.MaxAmount)

	key, err := search.ParseSortKey(params.SortBy)
	if err != nil {
		verrs.Add("sort_by", "must be one of date, amount, category")
	}
	criteria.SortBy = key
	return criteria, verrs.OrNil()
}

func optionalDate(verrs *apperrors.ValidationErrors, field, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, ok := domain.ParseDate(raw)
	if !ok {
		verrs.Add(field, "must be a date in YYYY-MM-DD form")
		return nil
	}
	return &t
}

func optionalAmount(verrs *apperrors.ValidationErrors, field, raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := validation.ParseAmount(raw)
	if err != nil {
		verrs.Add(field, "must be a number")
		return nil
	}
	return &d
}
