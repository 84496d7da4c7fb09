// Currency metadata and price formatting.
//
// Currencies are purely presentational: a stored price of 10 means
// "10 units of whichever currency is active". Switching currency re-labels
// amounts, it never converts them.
package core

import (
	"math"
	"strconv"
	"strings"
)

type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
	NGN CurrencyCode = "NGN"
	JPY CurrencyCode = "JPY"
)

type Currency struct {
	Code   CurrencyCode `json:"code"`
	Symbol string       `json:"symbol"`
	Name   string       `json:"name"`
	Flag   string       `json:"flag"`
}

// Currencies is the fixed supported set, in picker order.
var Currencies = []Currency{
	{Code: USD, Symbol: "$", Name: "US Dollar", Flag: "🇺🇸"},
	{Code: EUR, Symbol: "€", Name: "Euro", Flag: "🇪🇺"},
	{Code: NGN, Symbol: "₦", Name: "Nigerian Naira", Flag: "🇳🇬"},
	{Code: JPY, Symbol: "¥", Name: "Japanese Yen", Flag: "🇯🇵"},
}

func CurrencyByCode(code CurrencyCode) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// FormatPrice renders an amount with the currency symbol. JPY has no
// decimal cents: the amount is rounded to the nearest whole unit. All
// other currencies render exactly 2 decimal digits. Thousands separators
// go into the integer part only.
func (c Currency) FormatPrice(amount float64) string {
	if c.Code == JPY {
		return c.Symbol + groupedFixed(amount, 0)
	}
	return c.Symbol + groupedFixed(amount, 2)
}

// FormatCompact abbreviates large amounts: "1.7k" from 1_000, "1.5m" from
// 1_000_000, one decimal with a trailing ".0" stripped. Below 1_000 it
// falls back to the full FormatPrice rendering. The magnitude is bucketed
// and compacted from the absolute value; a negative input compacts the
// same as its positive twin and sign handling stays with the caller.
func (c Currency) FormatCompact(amount float64) string {
	abs := math.Abs(amount)
	switch {
	case abs >= 1_000_000:
		return c.Symbol + compactDigits(abs/1_000_000) + "m"
	case abs >= 1_000:
		return c.Symbol + compactDigits(abs/1_000) + "k"
	default:
		return c.FormatPrice(amount)
	}
}

// roundHalfUp rounds to the given number of decimals, half away from zero
// resolved upward (0.5 -> 1, -0.5 -> 0). One rule everywhere beats
// relying on the incidental rounding of Float-to-string conversion.
func roundHalfUp(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Floor(v*p+0.5) / p
}

// groupedFixed formats v with a fixed decimal count and inserts "," every
// 3 digits from the right of the integer portion.
func groupedFixed(v float64, decimals int) string {
	s := strconv.FormatFloat(roundHalfUp(v, decimals), 'f', decimals, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// compactDigits renders a k/m mantissa: one decimal, half-up, ".0" dropped.
func compactDigits(v float64) string {
	s := strconv.FormatFloat(roundHalfUp(v, 1), 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
