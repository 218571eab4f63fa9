// Package reporting derives summaries from a user's transactions. All
// functions are read-only projections over their input.
package reporting

import (
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/utils/search"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summarize partitions transactions by currency and totals income and
// expense. Currencies without transactions are absent. Transactions whose
// type is neither income nor expense are ignored.
func Summarize(txs []domain.Transaction) domain.Summary {
	out := domain.Summary{}
	for _, t := range txs {
		if !t.Type.Valid() {
			continue
		}
		totals := out.For(t.Currency)
		switch t.Type {
		case domain.Income:
			totals.Income = totals.Income.Add(t.Amount)
		case domain.Expense:
			totals.Expense = totals.Expense.Add(t.Amount)
		}
		totals.Net = totals.Income.Sub(totals.Expense)
		out[t.Currency] = totals
	}
	return out
}

// CategoryTotals sums expense amounts per category, optionally limited to
// one currency. The returned order lists categories as first encountered.
func CategoryTotals(txs []domain.Transaction, currency string) ([]string, map[string]decimal.Decimal) {
	currency = domain.NormalizeCurrency(currency)
	order := []string{}
	totals := map[string]decimal.Decimal{}
	for _, t := range txs {
		if t.Type != domain.Expense {
			continue
		}
		if currency != "" && t.Currency != currency {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
			totals[t.Category] = decimal.Zero
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}
	return order, totals
}

// TopCategories ranks expense categories by amount, descending, breaking
// ties by first appearance, and returns at most n entries. Percent is the
// share of all matching expense, or 0 when that total is zero.
func TopCategories(txs []domain.Transaction, currency string, n int) []domain.CategoryShare {
	if n <= 0 {
		return []domain.CategoryShare{}
	}
	order, totals := CategoryTotals(txs, currency)
	total := decimal.Zero
	for _, c := range order {
		total = total.Add(totals[c])
	}

	shares := make([]domain.CategoryShare, 0, len(order))
	for _, c := range order {
		shares = append(shares, domain.CategoryShare{
			Category: c,
			Amount:   totals[c],
			Percent:  percent(totals[c], total),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Amount.GreaterThan(shares[j].Amount)
	})
	if len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

func percent(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(hundred).InexactFloat64()
}

// Monthly builds the report for one calendar month. Category stats cover
// every transaction in the month and are ordered by name.
func Monthly(txs []domain.Transaction, year int, month time.Month) domain.MonthlyReport {
	var inMonth []domain.Transaction
	for _, t := range txs {
		d, ok := t.ParsedDate()
		if ok && d.Year() == year && d.Month() == month {
			inMonth = append(inMonth, t)
		}
	}

	stats := map[string]*domain.CategoryStat{}
	for _, t := range inMonth {
		s, ok := stats[t.Category]
		if !ok {
			s = &domain.CategoryStat{Category: t.Category, Total: decimal.Zero}
			stats[t.Category] = s
		}
		s.Total = s.Total.Add(t.Amount)
		s.Count++
	}
	categories := make([]domain.CategoryStat, 0, len(stats))
	for _, s := range stats {
		categories = append(categories, *s)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := strings.ToLower(categories[i].Category), strings.ToLower(categories[j].Category)
		if a != b {
			return a < b
		}
		return categories[i].Category < categories[j].Category
	})

	return domain.MonthlyReport{
		Year:       year,
		Month:      month,
		Totals:     Summarize(inMonth),
		Categories: categories,
	}
}

// Recent returns up to limit transactions, newest first. A negative limit
// returns none.
func Recent(txs []domain.Transaction, limit int) []domain.Transaction {
	limit = max(limit, 0)
	sorted := search.Sort(txs, search.SortByDate, true)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
