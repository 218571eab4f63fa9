package utils

import (
	"github.com/shopspring/decimal"
)

// zeroDecimalCurrencies have no minor unit.
var zeroDecimalCurrencies = map[string]bool{"JPY": true, "KRW": true, "VND": true, "CLP": true, "ISK": true}

// CurrencyPrecision returns the number of minor digits shown for currency.
func CurrencyPrecision(currency string) int32 {
	if zeroDecimalCurrencies[currency] {
		return 0
	}
	return 2
}

// FormatMoney renders an amount with its currency precision.
// Example: 12.3456 USD returns "12.35 USD"; 12.6 JPY returns "13 JPY".
func FormatMoney(amount decimal.Decimal, currency string) string {
	s := amount.StringFixed(CurrencyPrecision(currency))
	if currency == "" {
		return s
	}
	return s + " " + currency
}
