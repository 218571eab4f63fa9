package domain

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar date form used in every record.
const DateLayout = "2006-01-02"

// DefaultCategory is the bucket used for blank categories.
const DefaultCategory = "Other"

// DefaultCurrency applies when a user has no preferred currency.
const DefaultCurrency = "USD"

// MaxDescriptionLength bounds Transaction.Description.
const MaxDescriptionLength = 100

// MaxCategoryLength bounds a transaction category.
const MaxCategoryLength = 50

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ParseDate parses an ISO calendar date. Surrounding whitespace is ignored.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today returns the calendar date of now, in UTC.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeCurrency trims and upper-cases a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCurrency reports whether code is a three letter upper-case code.
func ValidCurrency(code string) bool {
	return currencyPattern.MatchString(code)
}

// NormalizeCategory trims a category and maps blanks to DefaultCategory.
func NormalizeCategory(category string) string {
	c := strings.TrimSpace(category)
	if c == "" {
		return DefaultCategory
	}
	return c
}
