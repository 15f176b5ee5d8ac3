package formatter

import (
	"fmt"

	"github.com/x7amod/Universal-Converter/pkg/converter"
	"github.com/x7amod/Universal-Converter/pkg/currency"
	"github.com/x7amod/Universal-Converter/pkg/detector"
	"github.com/x7amod/Universal-Converter/pkg/timezone"
)

// FormatConversion renders a detector.Conversion the way the underlying
// selection should be replaced on screen. resolvedRate is only consulted
// for detector.KindCurrencyPending; callers resolve it via
// ratecache.Service.GetCurrencyRate before calling in.
func (f *Formatter) FormatConversion(dc *detector.Conversion, conv *converter.Converter, resolvedRate float64) string {
	switch dc.Kind {
	case detector.KindScalar:
		r := dc.Scalar
		return fmt.Sprintf("%s %s", f.FormatNumber(r.ConvertedValue), conv.DisplayName(r.ConvertedUnit))

	case detector.KindDimensions3D:
		r := dc.Dimensions3D
		return fmt.Sprintf("%s x %s x %s %s",
			f.FormatNumber(r.L),
			f.FormatNumber(r.W),
			f.FormatNumber(r.H),
			conv.DisplayName(r.Unit),
		)

	case detector.KindCurrencyPending:
		r := dc.CurrencyPending
		converted := r.Amount * resolvedRate
		return currency.FormatCurrency(converted, r.ToCode, f.settings.Locale)

	case detector.KindTimeZone:
		r := dc.TimeZone
		if f.settings.Is12hr {
			return fmt.Sprintf("%s %s", timezone.Format12Hour(r.Hours, r.Minutes), r.ZoneLabel)
		}
		return fmt.Sprintf("%s %s", timezone.Format24Hour(r.Hours, r.Minutes), r.ZoneLabel)

	default:
		return ""
	}
}
