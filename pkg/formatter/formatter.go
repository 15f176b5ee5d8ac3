package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/x7amod/Universal-Converter/pkg/settings"
)

// Formatter renders numbers and dates according to a user's locale/
// precision/date-format preferences. Conversion-specific rendering
// (scalar/3-axis/currency/timezone) lives in FormatConversion.
type Formatter struct {
	settings *settings.Settings
}

// New creates a new formatter.
func New(s *settings.Settings) *Formatter {
	return &Formatter{settings: s}
}

// FormatNumber rounds n to the formatter's precision and applies the
// locale's thousands grouping.
func (f *Formatter) FormatNumber(n float64) string {
	rounded := f.round(n, f.settings.Precision)

	if f.settings.Locale == "en_GB" || f.settings.Locale == "en_UK" || f.settings.Locale == "en_US" {
		return f.formatWithCommas(rounded, f.settings.Precision)
	}

	format := fmt.Sprintf("%%.%df", f.settings.Precision)
	return fmt.Sprintf(format, rounded)
}

// FormatDate renders a timestamp using the formatter's configured date
// format, including the time-of-day when the timestamp carries one.
func (f *Formatter) FormatDate(d time.Time) string {
	if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
		return d.Format("2 Jan 2006 15:04:05 MST")
	}
	return d.Format(f.settings.DateFormat)
}

func (f *Formatter) round(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}

func (f *Formatter) formatWithCommas(n float64, decimals int) string {
	integer := int64(math.Abs(n))
	decimal := n - float64(int64(n))

	intStr := fmt.Sprintf("%d", integer)
	var parts []string

	for i := len(intStr); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{intStr[start:i]}, parts...)
	}

	result := strings.Join(parts, ",")

	if n < 0 {
		result = "-" + result
	}

	if decimals > 0 {
		decStr := fmt.Sprintf("%.*f", decimals, math.Abs(decimal))
		if len(decStr) > 2 {
			result += decStr[1:]
		} else {
			result += ".00"
		}
	}

	return result
}
