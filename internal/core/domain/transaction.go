package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType carries the direction of a transaction.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// ParseTransactionType normalizes case and whitespace.
func ParseTransactionType(s string) TransactionType {
	return TransactionType(strings.ToLower(strings.TrimSpace(s)))
}

// PaymentMethod is how a transaction was paid.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit card"
)

// Valid reports whether p is a recognised payment method.
func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentCreditCard
}

// ParsePaymentMethod normalizes case and whitespace; blank means cash.
func ParsePaymentMethod(s string) PaymentMethod {
	p := strings.ToLower(strings.TrimSpace(s))
	if p == "" {
		return PaymentCash
	}
	return PaymentMethod(p)
}

// Transaction is a single income or expense entry. Amount is always positive;
// direction is carried by Type.
type Transaction struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Payment     PaymentMethod   `json:"payment"`
}

// ParsedDate returns the transaction date, if it parses.
func (t Transaction) ParsedDate() (time.Time, bool) {
	return ParseDate(t.Date)
}

// ToRecord converts the transaction to its persisted form.
func (t Transaction) ToRecord() Record {
	return Record{
		"id":          t.ID,
		"username":    t.Username,
		"amount":      t.Amount.InexactFloat64(),
		"currency":    t.Currency,
		"category":    t.Category,
		"date":        t.Date,
		"description": t.Description,
		"type":        string(t.Type),
		"payment":     string(t.Payment),
	}
}

// TransactionFromRecord coerces a persisted record into a Transaction.
// Malformed values are carried through so readers can decide how to treat them.
func TransactionFromRecord(r Record) Transaction {
	return Transaction{
		ID:          r.String("id"),
		Username:    r.String("username"),
		Amount:      r.Decimal("amount"),
		Currency:    NormalizeCurrency(r.String("currency")),
		Category:    NormalizeCategory(r.String("category")),
		Date:        strings.TrimSpace(r.String("date")),
		Description: r.String("description"),
		Type:        ParseTransactionType(r.String("type")),
		Payment:     ParsePaymentMethod(r.String("payment")),
	}
}

// TransactionsFromRecords converts every record.
func TransactionsFromRecords(records []Record) []Transaction {
	out := make([]Transaction, 0, len(records))
	for _, r := range records {
		out = append(out, TransactionFromRecord(r))
	}
	return out
}
