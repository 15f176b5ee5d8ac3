// detect.go implements C3's text-extraction side: symbol/code extraction,
// locale-tolerant number parsing, and ambiguous-symbol disambiguation.
package currency

import (
	"regexp"
	"strconv"
	"strings"
)

// Code is a canonical, uppercase 3-letter currency code.
type Code string

// symbolCandidates maps an ambiguous surface symbol to the ordered set of
// currency codes it could mean. Single-candidate entries are unambiguous.
var symbolCandidates = map[string][]Code{
	"$":   {"USD", "CAD", "AUD", "NZD", "MXN", "HKD", "SGD"},
	"£":   {"GBP"},
	"€":   {"EUR"},
	"¥":   {"JPY", "CNY"},
	"₹":   {"INR"},
	"₩":   {"KRW"},
	"₽":   {"RUB"},
	"R$":  {"BRL"},
	"kr":  {"SEK", "NOK", "DKK"},
	"zł":  {"PLN"},
	"Fr":  {"CHF"},
	"R":   {"ZAR"},
	"₪":   {"ILS"},
	"฿":   {"THB"},
	"₫":   {"VND"},
}

// knownCodes is the set of 3-letter codes the registry recognizes, used to
// reject generic three-letter words that happen to collide with a code
// pattern (spec §4.4: "a generic three-letter uppercase token is tried as
// currency only if it is a known code").
var knownCodes = map[Code]bool{
	"USD": true, "GBP": true, "EUR": true, "JPY": true, "AUD": true,
	"NZD": true, "CAD": true, "MXN": true, "BRL": true, "CHF": true,
	"SEK": true, "NOK": true, "DKK": true, "PLN": true, "CZK": true,
	"HUF": true, "RON": true, "RUB": true, "TRY": true, "AED": true,
	"SAR": true, "ILS": true, "CNY": true, "HKD": true, "SGD": true,
	"INR": true, "KRW": true, "TWD": true, "THB": true, "MYR": true,
	"IDR": true, "PHP": true, "ZAR": true, "VND": true,
}

// countryCodeToCurrency maps an ISO 3166-1 alpha-2 country code (as found
// in a page locale tag, e.g. "en-GB" -> "GB") to its primary currency.
var countryCodeToCurrency = map[string]Code{
	"US": "USD", "GB": "GBP", "CA": "CAD", "AU": "AUD", "NZ": "NZD",
	"MX": "MXN", "HK": "HKD", "SG": "SGD", "CN": "CNY", "JP": "JPY",
	"DE": "EUR", "FR": "EUR", "IT": "EUR", "ES": "EUR", "IE": "EUR",
	"BR": "BRL", "CH": "CHF", "SE": "SEK", "NO": "NOK", "DK": "DKK",
	"PL": "PLN", "ZA": "ZAR", "IN": "INR", "KR": "KRW",
}

// tldToCurrency maps a page top-level-domain (without the leading dot) to
// a currency, used as disambiguator (c).
var tldToCurrency = map[string]Code{
	"com": "USD", "us": "USD", "uk": "GBP", "ca": "CAD", "au": "AUD",
	"nz": "NZD", "mx": "MXN", "hk": "HKD", "sg": "SGD", "cn": "CNY",
	"jp": "JPY", "de": "EUR", "fr": "EUR", "it": "EUR", "es": "EUR",
	"br": "BRL", "ch": "CHF", "se": "SEK", "no": "NOK", "dk": "DKK",
	"pl": "PLN", "za": "ZAR", "in": "INR", "kr": "KRW",
}

var threeLetterToken = regexp.MustCompile(`^[A-Za-z]{3}$`)

// ExtractCurrencySymbol implements §4.3's extractCurrencySymbol. If the
// text contains a standalone three-letter token that maps to a known
// currency code, that uppercase code is returned. Otherwise the function
// strips digits, whitespace, commas, periods, and apostrophes, and takes
// everything up to the first parenthesis.
func ExtractCurrencySymbol(text string) string {
	for _, word := range strings.Fields(text) {
		trimmed := strings.Trim(word, ".,()")
		if threeLetterToken.MatchString(trimmed) {
			code := Code(strings.ToUpper(trimmed))
			if knownCodes[code] {
				return string(code)
			}
		}
	}

	stripped := stripDigitsAndSeparators(text)
	if idx := strings.IndexByte(stripped, '('); idx >= 0 {
		stripped = stripped[:idx]
	}
	return strings.TrimSpace(stripped)
}

func stripDigitsAndSeparators(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ' || r == ',' || r == '.' || r == '\'':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

var numberPrefix = regexp.MustCompile(`^[0-9]+(?:[.,'][0-9]+)*`)

// ExtractNumber implements §4.3's locale-tolerant extractNumber.
func ExtractNumber(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	match := numberPrefix.FindString(text)
	if match == "" {
		return 0, false
	}

	// Thousands apostrophes and embedded spaces are always removed first.
	match = strings.ReplaceAll(match, "'", "")
	match = strings.ReplaceAll(match, " ", "")

	hasDot := strings.Contains(match, ".")
	hasComma := strings.Contains(match, ",")

	var normalized string
	switch {
	case hasDot && hasComma:
		lastDot := strings.LastIndex(match, ".")
		lastComma := strings.LastIndex(match, ",")
		if lastComma > lastDot {
			// comma is decimal separator; dots are thousands separators.
			normalized = strings.ReplaceAll(match, ".", "")
			normalized = strings.Replace(normalized, ",", ".", 1)
		} else {
			// dot is decimal separator; commas are thousands separators.
			normalized = strings.ReplaceAll(match, ",", "")
		}
	case hasComma:
		// Decimal iff the comma is followed by exactly two digits at the
		// end of the string; otherwise it's a thousands separator.
		idx := strings.LastIndex(match, ",")
		fraction := match[idx+1:]
		if len(fraction) == 2 {
			normalized = match[:idx] + "." + fraction
		} else {
			normalized = strings.ReplaceAll(match, ",", "")
		}
	case hasDot:
		collapsed := match
		if dots := strings.Count(match, "."); dots > 1 {
			// All but the last dot are thousands separators; the
			// remaining dot still goes through the same
			// decimal-vs-thousands heuristic below.
			lastIdx := strings.LastIndex(match, ".")
			collapsed = strings.ReplaceAll(match[:lastIdx], ".", "") + match[lastIdx:]
		}
		idx := strings.Index(collapsed, ".")
		integerPart := collapsed[:idx]
		fraction := collapsed[idx+1:]
		if len(fraction) == 3 && len(integerPart) >= 4 {
			normalized = integerPart + fraction
		} else {
			normalized = collapsed
		}
	default:
		normalized = match
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// DisambiguationContext carries the page-level heuristics used to resolve
// an ambiguous currency symbol.
type DisambiguationContext struct {
	PageCountryCode string // ISO 3166-1 alpha-2, e.g. "GB"
	PageLanguage    string // BCP 47 primary language subtag, e.g. "en"
	PageTLD         string // page domain TLD without the leading dot
}

// DetectCurrency implements §4.3's detectCurrency + disambiguator. symbol
// may be a literal symbol ("$") or an already-uppercased 3-letter code.
func DetectCurrency(symbolOrCode string, ctx DisambiguationContext) (Code, bool) {
	trimmed := strings.TrimSpace(symbolOrCode)

	if threeLetterToken.MatchString(trimmed) {
		code := Code(strings.ToUpper(trimmed))
		if knownCodes[code] {
			return code, true
		}
		return "", false
	}

	candidates, ok := symbolCandidates[trimmed]
	if !ok {
		return "", false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}
	return disambiguate(candidates, ctx), true
}

func disambiguate(candidates []Code, ctx DisambiguationContext) Code {
	if ctx.PageCountryCode != "" {
		if code, ok := countryCodeToCurrency[strings.ToUpper(ctx.PageCountryCode)]; ok && containsCode(candidates, code) {
			return code
		}
	}
	if containsCode(candidates, "USD") && strings.HasPrefix(strings.ToLower(ctx.PageLanguage), "en") {
		return "USD"
	}
	if ctx.PageTLD != "" {
		if code, ok := tldToCurrency[strings.ToLower(ctx.PageTLD)]; ok && containsCode(candidates, code) {
			return code
		}
	}
	return candidates[0]
}

func containsCode(candidates []Code, target Code) bool {
	for _, c := range candidates {
		if c == target {
			return true
		}
	}
	return false
}
