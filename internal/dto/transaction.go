package dto

import (
	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// CreateTransactionRequest carries the fields of a new transaction.
type CreateTransactionRequest struct {
	Amount      FlexString `json:"amount" validate:"required,posamount"`
	Currency    string     `json:"currency" validate:"required,currency"`
	Category    string     `json:"category" validate:"max=50"`
	Date        string     `json:"date" validate:"required,isodate"`
	Description string     `json:"description" validate:"required,max=100"`
	Type        string     `json:"type" validate:"required,txtype"`
	Payment     string     `json:"payment" validate:"omitempty,payment"`
}

// UpdateTransactionRequest is a partial update. Nil or blank fields keep
// their current value.
type UpdateTransactionRequest struct {
	Amount      *FlexString `json:"amount"`
	Currency    *string     `json:"currency"`
	Category    *string     `json:"category"`
	Date        *string     `json:"date"`
	Description *string     `json:"description"`
	Type        *string     `json:"type"`
	Payment     *string     `json:"payment"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int    `form:"limit,default=50"`
	NextToken string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	NextToken    *string              `json:"nextToken,omitempty"`
}

// TransactionEditResponse reports the edited transaction and any fields left unchanged.
type TransactionEditResponse struct {
	Transaction    domain.Transaction     `json:"transaction"`
	RejectedFields []apperrors.FieldError `json:"rejectedFields,omitempty"`
}

// SearchTransactionsParams defines the query string of a transaction search.
type SearchTransactionsParams struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Category  string `form:"category"`
	MinAmount string `form:"min_amount"`
	MaxAmount string `form:"max_amount"`
	SortBy    string `form:"sort_by"`
	Reverse   bool   `form:"reverse"`
}
