// Package search filters and sorts transaction sequences. Every stage is
// pure and returns a new slice, leaving its input untouched.
package search

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SortKey selects the sort order of a search.
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByAmount   SortKey = "amount"
	SortByCategory SortKey = "category"
)

// ParseSortKey validates a sort key. Blank means date.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByDate, nil
	case SortByDate, SortByAmount, SortByCategory:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// Criteria describes a full search. Nil bounds and a blank category are unconstrained.
type Criteria struct {
	Username  string
	Start     *time.Time
	End       *time.Time
	Category  string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	SortBy    SortKey
	Reverse   bool
}

// ByUsername keeps transactions owned by username.
func ByUsername(txs []domain.Transaction, username string) []domain.Transaction {
	return filter(txs, func(t domain.Transaction) bool { return t.Username == username })
}

// ByDateRange keeps transactions whose date parses and lies within
// [start, end] inclusive. Transactions with unparseable dates are dropped.
func ByDateRange(txs []domain.Transaction, start, end *time.Time) []domain.Transaction {
	return filter(txs, func(t domain.Transaction) bool {
		d, ok := t.ParsedDate()
		if !ok {
			return false
		}
		if start != nil && d.Before(*start) {
			return false
		}
		if end != nil && d.After(*end) {
			return false
		}
		return true
	})
}

// ByCategory keeps transactions whose category matches, ignoring case and
// surrounding whitespace.
func ByCategory(txs []domain.Transaction, category string) []domain.Transaction {
	want := strings.ToLower(strings.TrimSpace(category))
	return filter(txs, func(t domain.Transaction) bool {
		return strings.ToLower(strings.TrimSpace(t.Category)) == want
	})
}

// ByAmountRange keeps transactions whose amount lies within [min, max].
func ByAmountRange(txs []domain.Transaction, min, max *decimal.Decimal) []domain.Transaction {
	return filter(txs, func(t domain.Transaction) bool {
		if min != nil && t.Amount.LessThan(*min) {
			return false
		}
		if max != nil && t.Amount.GreaterThan(*max) {
			return false
		}
		return true
	})
}

// Sort orders transactions by key. The sort is stable and reverse keeps
// equal elements in their input order.
func Sort(txs []domain.Transaction, key SortKey, reverse bool) []domain.Transaction {
	out := append([]domain.Transaction(nil), txs...)
	cmp := comparator(key)
	sort.SliceStable(out, func(i, j int) bool {
		if reverse {
			return cmp(out[j], out[i]) < 0
		}
		return cmp(out[i], out[j]) < 0
	})
	return out
}

// Apply runs the pipeline: username, date, category, amount, sort.
func Apply(txs []domain.Transaction, c Criteria) []domain.Transaction {
	out := txs
	if c.Username != "" {
		out = ByUsername(out, c.Username)
	}
	if c.Start != nil || c.End != nil {
		out = ByDateRange(out, c.Start, c.End)
	}
	if strings.TrimSpace(c.Category) != "" {
		out = ByCategory(out, c.Category)
	}
	if c.MinAmount != nil || c.MaxAmount != nil {
		out = ByAmountRange(out, c.MinAmount, c.MaxAmount)
	}
	key := c.SortBy
	if key == "" {
		key = SortByDate
	}
	return Sort(out, key, c.Reverse)
}

func comparator(key SortKey) func(a, b domain.Transaction) int {
	switch key {
	case SortByAmount:
		return func(a, b domain.Transaction) int { return a.Amount.Cmp(b.Amount) }
	case SortByCategory:
		return func(a, b domain.Transaction) int {
			return strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
		}
	default:
		return func(a, b domain.Transaction) int { return sortDate(a).Compare(sortDate(b)) }
	}
}

// sortDate maps unparseable dates to the zero time so they sort first.
func sortDate(t domain.Transaction) time.Time {
	d, ok := t.ParsedDate()
	if !ok {
		return time.Time{}
	}
	return d
}

func filter(txs []domain.Transaction, keep func(domain.Transaction) bool) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, t := range txs {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
