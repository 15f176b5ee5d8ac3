package detector

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/x7amod/Universal-Converter/pkg/converter"
	"github.com/x7amod/Universal-Converter/pkg/currency"
	"github.com/x7amod/Universal-Converter/pkg/timezone"
	"github.com/x7amod/Universal-Converter/pkg/units"
)

// precedence is the fixed dimension-matching order from §4.4. Torque runs
// before weight so that "10 lb-ft" never gets claimed by the bare "lb"
// weight pattern; timezone/time are tried right after torque, in the slot
// §4.4 assigns them.
var precedence = []units.Dimension{
	units.DimensionLength,
	units.DimensionTorque,
	units.DimensionArea,
	units.DimensionSpeed,
	units.DimensionAcceleration,
	units.DimensionFlowRate,
	units.DimensionPressure,
	units.DimensionTemperature,
	units.DimensionVolume,
	units.DimensionWeight,
}

// Detector matches measurement, currency, and time-of-day expressions in
// free text against the unit registry.
type Detector struct {
	registry  *units.Registry
	converter *converter.Converter
	clock     *timezone.System

	patterns   map[units.Dimension]*regexp.Regexp
	torqueCaps *regexp.Regexp // capital-N newton-meter forms, case-sensitive
	dims3DTrip *regexp.Regexp
	dims3DTriU *regexp.Regexp
}

const numberGroup = `(-?\d+(?:\.\d+)?)`

// New builds a Detector and precompiles its per-dimension patterns.
func New(registry *units.Registry, conv *converter.Converter, clock *timezone.System) *Detector {
	d := &Detector{
		registry:  registry,
		converter: conv,
		clock:     clock,
		patterns:  make(map[units.Dimension]*regexp.Regexp),
	}
	for _, dim := range precedence {
		d.patterns[dim] = d.buildPattern(dim, true)
	}
	d.torqueCaps = regexp.MustCompile(numberGroup + `\s*(N\s*[*.\-·⋅]?\s*m|Nm)\b`)

	lengthAlt := alternation(registry.AliasesForDimension(units.DimensionLength))
	d.dims3DTrip = regexp.MustCompile(`(?i)` + numberGroup + `\s*(?:x|×)\s*` + numberGroup + `\s*(?:x|×)\s*` + numberGroup + `\s*(` + lengthAlt + `)`)
	d.dims3DTriU = regexp.MustCompile(`(?i)` + numberGroup + `\s*(` + lengthAlt + `)\s*(?:x|×)\s*` + numberGroup + `\s*(` + lengthAlt + `)\s*(?:x|×)\s*` + numberGroup + `\s*(` + lengthAlt + `)`)
	return d
}

func (d *Detector) buildPattern(dim units.Dimension, caseInsensitive bool) *regexp.Regexp {
	alt := alternation(d.registry.AliasesForDimension(dim))
	pattern := numberGroup + `\s*(` + alt + `)\b`
	if caseInsensitive {
		pattern = `(?i)` + pattern
	}
	return regexp.MustCompile(pattern)
}

// alternation builds a QuoteMeta-escaped, longest-first regex alternation
// so that e.g. "floz" is tried before "oz" and "kmh" before "km".
func alternation(surfaces []string) string {
	cp := make([]string, len(surfaces))
	copy(cp, surfaces)
	sort.Slice(cp, func(i, j int) bool { return len(cp[i]) > len(cp[j]) })
	quoted := make([]string, len(cp))
	for i, s := range cp {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return strings.Join(quoted, "|")
}

// FindConversion implements §4.4's detector entry point: at most one
// Conversion surfaces per call, tried in the fixed precedence order.
func (d *Detector) FindConversion(text string, settings UserSettings) (*Conversion, bool) {
	if strings.ContainsAny(text, "\n\r") {
		return nil, false
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}

	if c, ok := d.tryDimensions3D(trimmed, settings); ok {
		return c, true
	}
	if c, ok := d.tryCurrency(trimmed, settings); ok {
		return c, true
	}

	// Single-unit precedence chain, in the fixed order from §4.4: length,
	// torque, timezone/time, area, speed, acceleration, flow rate,
	// pressure, temperature, volume, weight.
	for _, dim := range precedence {
		switch dim {
		case units.DimensionLength:
			if c, ok := d.tryScalar(trimmed, dim, settings); ok {
				return c, true
			}
		case units.DimensionTorque:
			if c, ok := d.tryTorque(trimmed, settings); ok {
				return c, true
			}
			if c, ok := d.tryTimeZone(trimmed, settings); ok {
				return c, true
			}
		default:
			if c, ok := d.tryScalar(trimmed, dim, settings); ok {
				return c, true
			}
		}
	}
	return nil, false
}

// tryScalar matches a single "<number> <unit>" occurrence for dim and
// converts it to the user's target unit, auto-sizing the result.
func (d *Detector) tryScalar(text string, dim units.Dimension, settings UserSettings) (*Conversion, bool) {
	re := d.patterns[dim]
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, false
	}
	return d.buildScalarFromMatch(text, loc, dim, settings)
}

// tryTorque handles the case-sensitive capital-N newton-meter forms before
// falling back to the generic (lowercase-friendly) torque alternation,
// which covers lb-ft/lb-in/kgm/kgfm/ozin.
func (d *Detector) tryTorque(text string, settings UserSettings) (*Conversion, bool) {
	if loc := d.torqueCaps.FindStringSubmatchIndex(text); loc != nil {
		numStr := text[loc[2]:loc[3]]
		value, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return nil, false
		}
		return d.finishScalar(text[loc[0]:loc[1]], value, "Nm", units.DimensionTorque, settings)
	}
	if c, ok := d.tryScalar(text, units.DimensionTorque, settings); ok {
		return c, true
	}
	return nil, false
}

func (d *Detector) buildScalarFromMatch(text string, loc []int, dim units.Dimension, settings UserSettings) (*Conversion, bool) {
	numStr := text[loc[2]:loc[3]]
	unitStr := text[loc[4]:loc[5]]
	// A capital-N "Nm" is newton-meter (torque), never nanometer.
	if dim == units.DimensionLength && unitStr == "Nm" {
		return nil, false
	}
	value, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return nil, false
	}
	unit, ok := d.registry.Canonicalize(unitStr)
	if !ok {
		return nil, false
	}
	return d.finishScalar(text[loc[0]:loc[1]], value, unit, dim, settings)
}

func (d *Detector) finishScalar(matched string, value float64, sourceUnit units.Unit, dim units.Dimension, settings UserSettings) (*Conversion, bool) {
	target, ok := d.converter.GetDefaultTargetUnit(dim, settings.targetUnit(dim))
	if !ok {
		return nil, false
	}
	converted, ok := d.converter.Convert(value, sourceUnit, target)
	if !ok {
		return nil, false
	}
	sizedValue, sizedUnit := d.converter.GetBestUnit(converted, dim, target, sourceUnit)

	// No-op suppression: same unit, negligible value change.
	if sizedUnit == sourceUnit && absFloat(sizedValue-value) < 0.01 {
		return nil, false
	}

	return &Conversion{
		OriginalText:  matched,
		OriginalValue: value,
		OriginalUnit:  sourceUnit,
		Kind:          KindScalar,
		Scalar: &ScalarResult{
			ConvertedValue: sizedValue,
			ConvertedUnit:  sizedUnit,
		},
	}, true
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// tryDimensions3D matches a "<a> x <b> x <c> <unit>" or per-axis
// "<a><unit> x <b><unit> x <c><unit>" triple, requiring the match to cover
// at least 80% of the trimmed input (§4.2's coverage rule, guarding
// against matching inside a longer unrelated numeric sequence).
func (d *Detector) tryDimensions3D(text string, settings UserSettings) (*Conversion, bool) {
	var loc []int
	var unitStrs []string
	var values [3]float64

	if m := d.dims3DTriU.FindStringSubmatchIndex(text); m != nil {
		loc = m
		unitStrs = []string{text[m[4]:m[5]], text[m[8]:m[9]], text[m[12]:m[13]]}
		for i, pair := range [][2]int{{m[2], m[3]}, {m[6], m[7]}, {m[10], m[11]}} {
			v, err := strconv.ParseFloat(text[pair[0]:pair[1]], 64)
			if err != nil {
				return nil, false
			}
			values[i] = v
		}
	} else if m := d.dims3DTrip.FindStringSubmatchIndex(text); m != nil {
		loc = m
		single := text[m[8]:m[9]]
		unitStrs = []string{single, single, single}
		for i, pair := range [][2]int{{m[2], m[3]}, {m[4], m[5]}, {m[6], m[7]}} {
			v, err := strconv.ParseFloat(text[pair[0]:pair[1]], 64)
			if err != nil {
				return nil, false
			}
			values[i] = v
		}
	} else {
		return nil, false
	}

	matched := text[loc[0]:loc[1]]
	if float64(len(matched))/float64(len(text)) < 0.8 {
		return nil, false
	}

	baseUnit, ok := d.registry.DefaultUnit(units.DimensionLength)
	if !ok {
		return nil, false
	}
	var baseValues [3]float64
	var firstUnit units.Unit
	for i, us := range unitStrs {
		u, ok := d.registry.Canonicalize(us)
		if !ok {
			return nil, false
		}
		if i == 0 {
			firstUnit = u
		}
		base, ok := d.converter.Convert(values[i], u, baseUnit)
		if !ok {
			return nil, false
		}
		baseValues[i] = base
	}

	target, ok := d.converter.GetDefaultTargetUnit(units.DimensionLength, settings.LengthUnit)
	if !ok {
		return nil, false
	}
	sized, sizedUnit := d.converter.HarmonizeDimensions3D(units.DimensionLength, baseValues, target)

	return &Conversion{
		OriginalText:  matched,
		OriginalValue: values[0],
		OriginalUnit:  firstUnit,
		Kind:          KindDimensions3D,
		Dimensions3D: &Dimensions3DResult{
			L: sized[0], W: sized[1], H: sized[2],
			Unit: sizedUnit,
		},
	}, true
}

var prefixedCurrency = regexp.MustCompile(`(\p{Sc}|R\$|kr|zł|Fr|R|[A-Z]{3})\s*(-?[0-9][0-9.,']*)`)
var suffixedCurrency = regexp.MustCompile(`(-?[0-9][0-9.,']*)\s*(\p{Sc}|R\$|kr|zł|Fr|R|[A-Z]{3})`)

// tryCurrency matches an amount adjacent to a currency symbol or known
// 3-letter code and resolves the ambiguous-symbol case via the page
// context carried on settings. The result is "pending": it names the
// source/target codes and amount but leaves rate lookup to the cache
// service (C5).
func (d *Detector) tryCurrency(text string, settings UserSettings) (*Conversion, bool) {
	matched, symbol, numStr := "", "", ""
	if m := prefixedCurrency.FindStringSubmatchIndex(text); m != nil {
		matched = text[m[0]:m[1]]
		symbol = text[m[2]:m[3]]
		numStr = text[m[4]:m[5]]
	} else if m := suffixedCurrency.FindStringSubmatchIndex(text); m != nil {
		matched = text[m[0]:m[1]]
		numStr = text[m[2]:m[3]]
		symbol = text[m[4]:m[5]]
	} else {
		return nil, false
	}

	ctx := currency.DisambiguationContext{
		PageCountryCode: settings.PageCountryCode,
		PageLanguage:    settings.PageLanguage,
		PageTLD:         settings.PageTLD,
	}
	code, ok := currency.DetectCurrency(symbol, ctx)
	if !ok {
		return nil, false
	}

	value, ok := currency.ExtractNumber(numStr)
	if !ok {
		return nil, false
	}

	target := settings.CurrencyUnit
	if target == "" {
		target = "USD"
	}
	if code == target {
		return nil, false
	}

	return &Conversion{
		OriginalText:  matched,
		OriginalValue: value,
		Kind:          KindCurrencyPending,
		CurrencyPending: &CurrencyPendingResult{
			FromCode: code,
			ToCode:   target,
			Amount:   value,
		},
	}, true
}

var timeOfDayPattern = regexp.MustCompile(`(?i)\b(\d{1,2}(?::\d{2})?\s*(?:AM|PM)?)\s+([A-Za-z][A-Za-z /_]{2,})\b`)

// localUTCOffsetHours is overridable by tests; production always derives
// the viewer's offset from the machine clock (§4.4's "auto" target).
var localUTCOffsetHours = func() int {
	_, offsetSeconds := time.Now().Zone()
	return offsetSeconds / 3600
}

// tryTimeZone matches "<time> <zone>" and converts it into the target
// zone named by settings.TimezoneUnit. "auto" derives the viewer's own
// UTC offset from the local machine clock and reverse-looks it up over
// the zone table, displaying the canonical "GMT±N" label (§4.4, §9); a
// named target instead shifts by the delta GetOffset reports between the
// source and target zones directly.
func (d *Detector) tryTimeZone(text string, settings UserSettings) (*Conversion, bool) {
	loc := timeOfDayPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, false
	}
	matched := text[loc[0]:loc[1]]
	timeStr := text[loc[2]:loc[3]]
	zoneStr := strings.TrimSpace(text[loc[4]:loc[5]])

	hour, minute, ok := timezone.ParseTimeOfDay(timeStr)
	if !ok {
		return nil, false
	}

	targetName := settings.TimezoneUnit
	if targetName == "" || targetName == "auto" {
		return d.finishAutoTimeZone(matched, hour, minute, zoneStr)
	}

	delta, err := d.clock.GetOffset(zoneStr, targetName)
	if err != nil {
		return nil, false
	}
	if delta == 0 {
		return nil, false // source and target share an offset: no-op
	}

	newHour, newMinute := timezone.ShiftTimeOfDay(hour, minute, delta)
	return &Conversion{
		OriginalText:  matched,
		OriginalValue: float64(hour*60 + minute),
		Kind:          KindTimeZone,
		TimeZone: &TimeZoneResult{
			Hours:     newHour,
			Minutes:   newMinute,
			ZoneLabel: targetName,
		},
	}, true
}

// finishAutoTimeZone implements the "auto" target branch: the viewer's
// offset is derived from the machine clock and reverse-looked-up over the
// zone table purely to pick a deterministic "GMT±N" label; the shift
// itself only needs the numeric offset, not which named zone shares it.
func (d *Detector) finishAutoTimeZone(matched string, hour, minute int, zoneStr string) (*Conversion, bool) {
	fromOffset, ok := d.clock.GetOffsetHours(zoneStr)
	if !ok {
		return nil, false
	}

	localOffset := localUTCOffsetHours()
	if _, ok := d.clock.ReverseLookupByOffset(localOffset); !ok {
		return nil, false
	}
	if localOffset == fromOffset {
		return nil, false // viewer is already in the source zone
	}

	newHour, newMinute := timezone.ShiftTimeOfDay(hour, minute, localOffset-fromOffset)
	return &Conversion{
		OriginalText:  matched,
		OriginalValue: float64(hour*60 + minute),
		Kind:          KindTimeZone,
		TimeZone: &TimeZoneResult{
			Hours:     newHour,
			Minutes:   newMinute,
			ZoneLabel: timezone.GMTLabel(localOffset),
		},
	}, true
}
