package currency

import (
	"math"
	"testing"
)

func TestExtractNumberThousandsComma(t *testing.T) {
	v, ok := ExtractNumber("1,234")
	if !ok || math.Abs(v-1234) > 1e-9 {
		t.Fatalf("ExtractNumber(1,234) = %v, %v, want 1234, true", v, ok)
	}
}

func TestExtractNumberDecimalComma(t *testing.T) {
	v, ok := ExtractNumber("1,23")
	if !ok || math.Abs(v-1.23) > 1e-9 {
		t.Fatalf("ExtractNumber(1,23) = %v, %v, want 1.23, true", v, ok)
	}
}

func TestExtractNumberDecimalDot(t *testing.T) {
	v, ok := ExtractNumber("1.234")
	if !ok || math.Abs(v-1.234) > 1e-9 {
		t.Fatalf("ExtractNumber(1.234) = %v, %v, want 1.234, true", v, ok)
	}
}

func TestExtractNumberEuropeanThousands(t *testing.T) {
	v, ok := ExtractNumber("1.234.567")
	if !ok || math.Abs(v-1234567) > 1e-9 {
		t.Fatalf("ExtractNumber(1.234.567) = %v, %v, want 1234567, true", v, ok)
	}
}

func TestExtractNumberBothSeparatorsCommaDecimal(t *testing.T) {
	v, ok := ExtractNumber("1.234,56")
	if !ok || math.Abs(v-1234.56) > 1e-9 {
		t.Fatalf("ExtractNumber(1.234,56) = %v, %v, want 1234.56, true", v, ok)
	}
}

func TestExtractNumberBothSeparatorsDotDecimal(t *testing.T) {
	v, ok := ExtractNumber("1,234.56")
	if !ok || math.Abs(v-1234.56) > 1e-9 {
		t.Fatalf("ExtractNumber(1,234.56) = %v, %v, want 1234.56, true", v, ok)
	}
}

func TestExtractNumberPathologicalCase(t *testing.T) {
	v, ok := ExtractNumber("1.2.3")
	if !ok || math.Abs(v-12.3) > 1e-9 {
		t.Fatalf("ExtractNumber(1.2.3) = %v, %v, want 12.3, true", v, ok)
	}
}

func TestExtractNumberApostropheThousands(t *testing.T) {
	v, ok := ExtractNumber("1'234.56")
	if !ok || math.Abs(v-1234.56) > 1e-9 {
		t.Fatalf("ExtractNumber(1'234.56) = %v, %v, want 1234.56, true", v, ok)
	}
}

func TestExtractNumberNoMatch(t *testing.T) {
	if _, ok := ExtractNumber("abc"); ok {
		t.Error("ExtractNumber(abc) should fail")
	}
}

func TestExtractCurrencySymbolKnownCode(t *testing.T) {
	got := ExtractCurrencySymbol("Price: USD 100")
	if got != "USD" {
		t.Errorf("ExtractCurrencySymbol = %q, want USD", got)
	}
}

func TestExtractCurrencySymbolUnknownThreeLetterWord(t *testing.T) {
	got := ExtractCurrencySymbol("the big cat")
	if got == "THE" || got == "BIG" || got == "CAT" {
		t.Errorf("ExtractCurrencySymbol should not treat generic words as currency codes, got %q", got)
	}
}

func TestDetectCurrencyUnambiguousSymbol(t *testing.T) {
	code, ok := DetectCurrency("€", DisambiguationContext{})
	if !ok || code != "EUR" {
		t.Fatalf("DetectCurrency(€) = %v, %v, want EUR, true", code, ok)
	}
}

func TestDetectCurrencyAmbiguousDollarByCountry(t *testing.T) {
	code, ok := DetectCurrency("$", DisambiguationContext{PageCountryCode: "CA"})
	if !ok || code != "CAD" {
		t.Fatalf("DetectCurrency($, CA) = %v, %v, want CAD, true", code, ok)
	}
}

func TestDetectCurrencyAmbiguousDollarByLanguageFallback(t *testing.T) {
	code, ok := DetectCurrency("$", DisambiguationContext{PageLanguage: "en-US"})
	if !ok || code != "USD" {
		t.Fatalf("DetectCurrency($, en-US) = %v, %v, want USD, true", code, ok)
	}
}

func TestDetectCurrencyAmbiguousDollarByTLD(t *testing.T) {
	code, ok := DetectCurrency("$", DisambiguationContext{PageTLD: "au"})
	if !ok || code != "AUD" {
		t.Fatalf("DetectCurrency($, TLD=au) = %v, %v, want AUD, true", code, ok)
	}
}

func TestDetectCurrencyAmbiguousDollarFirstCandidateFallback(t *testing.T) {
	code, ok := DetectCurrency("$", DisambiguationContext{})
	if !ok || code != "USD" {
		t.Fatalf("DetectCurrency($) = %v, %v, want USD (first candidate), true", code, ok)
	}
}

func TestDetectCurrencyUnknownCode(t *testing.T) {
	if _, ok := DetectCurrency("XYZ", DisambiguationContext{}); ok {
		t.Error("DetectCurrency(XYZ) should fail, not a known code")
	}
}

func TestFormatCurrency(t *testing.T) {
	got := FormatCurrency(85, "EUR", "en_GB")
	if got != "85.00 EUR €" {
		t.Errorf("FormatCurrency(85, EUR, en_GB) = %q, want %q", got, "85.00 EUR €")
	}
}

func TestFormatCurrencyGrouping(t *testing.T) {
	got := FormatCurrency(1234567.891, "USD", "en_US")
	if got != "1,234,567.89 USD $" {
		t.Errorf("FormatCurrency(1234567.891, USD, en_US) = %q, want %q", got, "1,234,567.89 USD $")
	}
}

func TestFormatCurrencyGroupingEuropeanLocale(t *testing.T) {
	got := FormatCurrency(1234567.891, "EUR", "de_DE")
	if got != "1.234.567,89 EUR €" {
		t.Errorf("FormatCurrency(1234567.891, EUR, de_DE) = %q, want %q", got, "1.234.567,89 EUR €")
	}
}

func TestFormatCurrencyDefaultLocaleMatchesEnglish(t *testing.T) {
	got := FormatCurrency(1234.5, "GBP", "")
	if got != "1,234.50 GBP £" {
		t.Errorf("FormatCurrency(1234.5, GBP, \"\") = %q, want %q", got, "1,234.50 GBP £")
	}
}
