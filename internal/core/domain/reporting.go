package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyTotals holds income, expense and net for one currency.
type CurrencyTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// Summary maps a currency code to its totals. Currencies without activity are absent.
type Summary map[string]CurrencyTotals

// For returns the totals for currency, zero-filled when absent.
func (s Summary) For(currency string) CurrencyTotals {
	if t, ok := s[currency]; ok {
		return t
	}
	return CurrencyTotals{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}
}

// CategoryShare is one ranked spending category.
type CategoryShare struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  float64         `json:"percent"`
}

// CategoryStat is the total and count of a category within a period.
type CategoryStat struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// MonthlyReport summarizes one calendar month.
type MonthlyReport struct {
	Year       int            `json:"year"`
	Month      time.Month     `json:"month"`
	Totals     Summary        `json:"totals"`
	Categories []CategoryStat `json:"categories"`
}

// Dashboard is the overview shown after login.
type Dashboard struct {
	Currency      string          `json:"currency"`
	Totals        CurrencyTotals  `json:"totals"`
	TopCategories []CategoryShare `json:"topCategories"`
	Recent        []Transaction   `json:"recent"`
	DueReminders  []ReminderDue   `json:"dueReminders"`
}

// ReminderDue pairs a reminder with its classification.
type ReminderDue struct {
	Reminder Reminder `json:"reminder"`
	State    DueState `json:"state"`
	Message  string   `json:"message"`
}
