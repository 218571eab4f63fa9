package reporting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/utils/reporting"
	"github.com/bxcodec/faker/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(amount int64, currency string, typ domain.TransactionType, category, date string) domain.Transaction {
	return domain.Transaction{
		Username: "alice",
		Amount:   decimal.NewFromInt(amount),
		Currency: currency,
		Type:     typ,
		Category: category,
		Date:     date,
	}
}

func TestSummarize_Example(t *testing.T) {
	txs := []domain.Transaction{
		tx(100, "USD", domain.Income, "Salary", "2024-01-01"),
		tx(40, "USD", domain.Expense, "Food", "2024-01-02"),
		tx(10, "USD", domain.Expense, "Food", "2024-01-03"),
	}

	summary := reporting.Summarize(txs)

	require.Len(t, summary, 1)
	usd := summary["USD"]
	assert.True(t, decimal.NewFromInt(100).Equal(usd.Income))
	assert.True(t, decimal.NewFromInt(50).Equal(usd.Expense))
	assert.True(t, decimal.NewFromInt(50).Equal(usd.Net))

	top := reporting.TopCategories(txs, "", 1)
	require.Len(t, top, 1)
	assert.Equal(t, "Food", top[0].Category)
	assert.True(t, decimal.NewFromInt(50).Equal(top[0].Amount))
	assert.InDelta(t, 100.0, top[0].Percent, 1e-9)
}

func TestSummarize_MultiCurrencyAndAbsentBuckets(t *testing.T) {
	txs := []domain.Transaction{
		tx(10, "EUR", domain.Expense, "Food", ""),
		tx(30, "USD", domain.Income, "Salary", ""),
		tx(99, "USD", domain.TransactionType("transfer"), "Misc", ""),
	}

	summary := reporting.Summarize(txs)

	assert.Len(t, summary, 2)
	_, hasGBP := summary["GBP"]
	assert.False(t, hasGBP)
	assert.True(t, summary.For("GBP").Net.IsZero())
	assert.True(t, decimal.NewFromInt(-10).Equal(summary["EUR"].Net))
	assert.True(t, decimal.NewFromInt(30).Equal(summary["USD"].Net))
}

func TestSummarize_NetInvariantOnRandomData(t *testing.T) {
	currencies := []string{"USD", "EUR", "INR"}
	var txs []domain.Transaction
	for i := 0; i < 200; i++ {
		typ := domain.Income
		if i%3 != 0 {
			typ = domain.Expense
		}
		txs = append(txs, tx(int64(i%17+1), currencies[i%len(currencies)], typ, faker.Word(), "2024-01-01"))
	}

	for currency, totals := range reporting.Summarize(txs) {
		assert.True(t, totals.Net.Equal(totals.Income.Sub(totals.Expense)), currency)
	}
}

func TestTopCategories_RankingTiesAndPercent(t *testing.T) {
	txs := []domain.Transaction{
		tx(20, "USD", domain.Expense, "Travel", ""),
		tx(30, "USD", domain.Expense, "Food", ""),
		tx(20, "USD", domain.Expense, "Books", ""),
		tx(30, "USD", domain.Expense, "Rent", ""),
		tx(500, "USD", domain.Income, "Salary", ""),
		tx(999, "EUR", domain.Expense, "Food", ""),
	}

	top := reporting.TopCategories(txs, "usd", 10)

	require.Len(t, top, 4)
	assert.Equal(t, []string{"Food", "Rent", "Travel", "Books"}, []string{top[0].Category, top[1].Category, top[2].Category, top[3].Category})
	sum := 0.0
	for i, s := range top {
		sum += s.Percent
		if i > 0 {
			assert.True(t, top[i-1].Amount.GreaterThanOrEqual(s.Amount))
		}
	}
	assert.InDelta(t, 100.0, sum, 1e-9)

	truncated := reporting.TopCategories(txs, "USD", 2)
	require.Len(t, truncated, 2)
	assert.LessOrEqual(t, truncated[0].Percent+truncated[1].Percent, 100.0)
}

func TestTopCategories_PercentsOnRandomData(t *testing.T) {
	var txs []domain.Transaction
	for i := 0; i < 50; i++ {
		txs = append(txs, tx(int64(i+1), "USD", domain.Expense, faker.Word(), ""))
	}
	order, _ := reporting.CategoryTotals(txs, "USD")

	top := reporting.TopCategories(txs, "USD", len(order))

	sum := 0.0
	for _, s := range top {
		sum += s.Percent
	}
	assert.InDelta(t, 100.0, sum, 1e-6)
}

func TestTopCategories_ZeroTotalAndNonPositiveN(t *testing.T) {
	txs := []domain.Transaction{tx(0, "USD", domain.Expense, "Food", "")}

	top := reporting.TopCategories(txs, "", 3)
	require.Len(t, top, 1)
	assert.Equal(t, 0.0, top[0].Percent)

	assert.Empty(t, reporting.TopCategories(txs, "", 0))
	assert.Empty(t, reporting.TopCategories(nil, "", 5))
}

func TestCategoryTotals_FirstEncounteredOrder(t *testing.T) {
	txs := []domain.Transaction{
		tx(5, "USD", domain.Expense, "Rent", ""),
		tx(5, "USD", domain.Expense, "Food", ""),
		tx(5, "USD", domain.Expense, "Rent", ""),
	}

	order, totals := reporting.CategoryTotals(txs, "")

	assert.Equal(t, []string{"Rent", "Food"}, order)
	assert.True(t, decimal.NewFromInt(10).Equal(totals["Rent"]))
}

func TestMonthly(t *testing.T) {
	txs := []domain.Transaction{
		tx(1000, "USD", domain.Income, "Salary", "2024-03-01"),
		tx(200, "USD", domain.Expense, "rent", "2024-03-05"),
		tx(50, "USD", domain.Expense, "Food", "2024-03-09"),
		tx(25, "USD", domain.Expense, "Food", "2024-03-30"),
		tx(70, "USD", domain.Expense, "Food", "2024-04-01"),
		tx(70, "USD", domain.Expense, "Food", "bad"),
	}

	report := reporting.Monthly(txs, 2024, time.March)

	assert.True(t, decimal.NewFromInt(725).Equal(report.Totals["USD"].Net))
	require.Len(t, report.Categories, 3)
	assert.Equal(t, "Food", report.Categories[0].Category)
	assert.Equal(t, 2, report.Categories[0].Count)
	assert.True(t, decimal.NewFromInt(75).Equal(report.Categories[0].Total))
	assert.Equal(t, "rent", report.Categories[1].Category)
	assert.Equal(t, "Salary", report.Categories[2].Category)
}

func TestRecent(t *testing.T) {
	txs := []domain.Transaction{
		tx(1, "USD", domain.Expense, "a", "2024-01-01"),
		tx(2, "USD", domain.Expense, "b", "2024-03-01"),
		tx(3, "USD", domain.Expense, "c", "2024-02-01"),
	}

	recent := reporting.Recent(txs, 2)

	require.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].Category)
	assert.Equal(t, "c", recent[1].Category)

	assert.Empty(t, reporting.Recent(txs, 0))
	assert.Empty(t, reporting.Recent(txs, -1))
}
