package currency

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// codeToSymbol gives the canonical trailing display symbol for a code,
// used by FormatCurrency when it differs from the code itself.
var codeToSymbol = map[Code]string{
	"USD": "$", "GBP": "£", "EUR": "€", "JPY": "¥", "CNY": "¥",
	"INR": "₹", "KRW": "₩", "RUB": "₽", "BRL": "R$", "THB": "฿",
	"VND": "₫", "CHF": "Fr", "ZAR": "R", "PLN": "zł",
	"SEK": "kr", "NOK": "kr", "DKK": "kr", "ILS": "₪",
}

// FormatCurrency renders an amount as "NNN.NN CCC SYM": two fraction
// digits (round-half-away-from-zero), thousands grouping per locale, the
// uppercased code, and a trailing symbol when it's distinct from the code.
func FormatCurrency(amount float64, code Code, locale string) string {
	rounded := decimal.NewFromFloat(amount).Round(2)
	grouped := groupThousands(rounded, locale)

	upper := strings.ToUpper(string(code))
	result := grouped + " " + upper

	if symbol, ok := codeToSymbol[Code(upper)]; ok && symbol != upper {
		result += " " + symbol
	}
	return result
}

// isPeriodGroupedLocale reports whether locale groups thousands with "."
// and marks the fraction with "," (the continental European convention),
// mirroring the two locale families pkg/formatter already distinguishes
// for plain numbers.
func isPeriodGroupedLocale(locale string) bool {
	switch strings.ToLower(locale) {
	case "", "en_gb", "en_uk", "en_us":
		return false
	default:
		return true
	}
}

func groupThousands(d decimal.Decimal, locale string) string {
	fixed := d.StringFixed(2)
	dotIdx := strings.IndexByte(fixed, '.')
	intPart, fracPart := fixed[:dotIdx], fixed[dotIdx+1:]

	intValue, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return fixed
	}

	commaGrouped := humanize.Comma(intValue)
	if isPeriodGroupedLocale(locale) {
		return strings.ReplaceAll(commaGrouped, ",", ".") + "," + fracPart
	}
	return commaGrouped + "." + fracPart
}
