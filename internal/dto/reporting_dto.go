package dto

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TopCategoriesParams defines query parameters for the top categories report.
type TopCategoriesParams struct {
	Currency string `form:"currency"`
	N        int    `form:"n,default=5"`
}

// BreakdownParams defines query parameters for the category breakdown.
type BreakdownParams struct {
	Currency string `form:"currency"`
}

// MonthlyReportParams selects a calendar month. Zero values mean the current month.
type MonthlyReportParams struct {
	Year  int `form:"year"`
	Month int `form:"month"`
}

// SummaryResponse wraps the per-currency summary.
type SummaryResponse struct {
	Currencies domain.Summary `json:"currencies"`
}

// CategoryAmountResponse is one entry of a category breakdown.
type CategoryAmountResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// BreakdownResponse lists expense totals per category.
type BreakdownResponse struct {
	Currency   string                   `json:"currency,omitempty"`
	Categories []CategoryAmountResponse `json:"categories"`
}
