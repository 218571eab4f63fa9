package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
	"github.com/SscSPs/finance_tracker/internal/utils/validation"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// transactionService implements portssvc.TransactionSvcFacade.
type transactionService struct {
	BaseService
	keeper *RecordKeeper
}

// NewTransactionService creates the transaction ledger.
func NewTransactionService(keeper *RecordKeeper, options ...ServiceOption) portssvc.TransactionSvcFacade {
	return &transactionService{BaseService: newBaseService(options...), keeper: keeper}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) AddTransaction(ctx context.Context, username string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	req.Amount = dto.FlexString(strings.TrimSpace(string(req.Amount)))
	req.Currency = domain.NormalizeCurrency(req.Currency)
	req.Category = strings.TrimSpace(req.Category)
	req.Date = strings.TrimSpace(req.Date)
	req.Description = strings.TrimSpace(req.Description)
	req.Type = strings.TrimSpace(req.Type)
	req.Payment = strings.TrimSpace(req.Payment)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	amount, err := validation.ParseAmount(string(req.Amount))
	if err != nil {
		return nil, apperrors.NewFieldError("amount", "must be a positive number")
	}
	tx := domain.Transaction{
		ID:          s.newID(),
		Username:    username,
		Amount:      amount,
		Currency:    req.Currency,
		Category:    domain.NormalizeCategory(req.Category),
		Date:        req.Date,
		Description: req.Description,
		Type:        domain.ParseTransactionType(req.Type),
		Payment:     domain.ParsePaymentMethod(req.Payment),
	}

	err = s.keeper.Mutate(ctx, domain.KindTransactions, func(records []domain.Record) ([]domain.Record, error) {
		return append(records, tx.ToRecord()), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("username", username))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction added", slog.String("transaction_id", tx.ID), slog.String("type", string(tx.Type)))
	return &tx, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, username string) ([]domain.Transaction, error) {
	return loadUserTransactions(ctx, s.keeper, username)
}

func (s *transactionService) ListTransactionsPage(ctx context.Context, username string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	txs, err := s.ListTransactions(ctx, username)
	if err != nil {
		return nil, err
	}

	start := 0
	if params.NextToken != "" {
		offset, lastID, err := pagination.DecodeOffsetToken(params.NextToken)
		if err != nil {
			return nil, apperrors.NewFieldError("nextToken", err.Error())
		}
		start = pageStart(txs, offset, lastID)
	}

	end := start + limit
	if end > len(txs) {
		end = len(txs)
	}
	resp := &dto.ListTransactionsResponse{Transactions: txs[start:end]}
	if end < len(txs) {
		token := pagination.EncodeOffsetToken(end, txs[end-1].ID)
		resp.NextToken = &token
	}
	return resp, nil
}

// pageStart trusts offset when the record before it is still lastID.
// Otherwise the list shifted, and the page resumes after lastID.
func pageStart(txs []domain.Transaction, offset int, lastID string) int {
	if offset > len(txs) {
		offset = len(txs)
	}
	if offset > 0 && txs[offset-1].ID == lastID {
		return offset
	}
	for i, tx := range txs {
		if tx.ID == lastID {
			return i + 1
		}
	}
	return offset
}

func (s *transactionService) GetTransaction(ctx context.Context, username, ref string) (*domain.Transaction, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	records, err := s.keeper.Read(ctx, domain.KindTransactions)
	if err != nil {
		return nil, err
	}
	i, err := resolveRef(records, domain.KindTransactions, username, ref)
	if err != nil {
		return nil, err
	}
	tx := domain.TransactionFromRecord(records[i])
	return &tx, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, username, ref string, req dto.UpdateTransactionRequest) (*domain.Transaction, []apperrors.FieldError, error) {
	if err := requireUser(username); err != nil {
		return nil, nil, err
	}

	var (
		tx    domain.Transaction
		edits fieldEdits
	)
	err := s.keeper.Mutate(ctx, domain.KindTransactions, func(records []domain.Record) ([]domain.Record, error) {
		i, err := resolveRef(records, domain.KindTransactions, username, ref)
		if err != nil {
			return nil, err
		}
		tx = domain.TransactionFromRecord(records[i])

		edits.amount("amount", req.Amount, false, &tx.Amount)
		if v, ok := provided(req.Currency); ok {
			if c := domain.NormalizeCurrency(v); domain.ValidCurrency(c) {
				tx.Currency = c
			} else {
				edits.reject("currency", "must be a three letter currency code")
			}
		}
		edits.text("category", req.Category, domain.MaxCategoryLength, &tx.Category)
		edits.date("date", req.Date, &tx.Date)
		edits.text("description", req.Description, domain.MaxDescriptionLength, &tx.Description)
		if v, ok := provided(req.Type); ok {
			if t := domain.ParseTransactionType(v); t.Valid() {
				tx.Type = t
			} else {
				edits.reject("type", "must be income or expense")
			}
		}
		if v, ok := provided(req.Payment); ok {
			if p := domain.ParsePaymentMethod(v); p.Valid() {
				tx.Payment = p
			} else {
				edits.reject("payment", "must be cash or credit card")
			}
		}

		return replaceAt(records, i, tx.ToRecord()), nil
	})
	if err != nil {
		return nil, nil, err
	}

	rejected := edits.result()
	if len(rejected) > 0 {
		s.LogWarn(ctx, "Transaction edit skipped invalid fields", slog.String("transaction_id", tx.ID), slog.Int("rejected", len(rejected)))
	}
	return &tx, rejected, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, username, ref string) error {
	if err := requireUser(username); err != nil {
		return err
	}
	var id string
	err := s.keeper.Mutate(ctx, domain.KindTransactions, func(records []domain.Record) ([]domain.Record, error) {
		i, err := resolveRef(records, domain.KindTransactions, username, ref)
		if err != nil {
			return nil, err
		}
		id = records[i].Key(domain.KindTransactions)
		return removeAt(records, i), nil
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", id))
	return nil
}
