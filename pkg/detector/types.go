// Package detector is the conversion detector (C4): a single function that
// scans a trimmed selection string for a measurement, currency, or
// time-of-day expression and emits at most one Conversion.
package detector

import (
	"github.com/x7amod/Universal-Converter/pkg/currency"
	"github.com/x7amod/Universal-Converter/pkg/units"
)

// Kind tags which variant of Conversion is populated.
type Kind int

const (
	KindScalar Kind = iota
	KindDimensions3D
	KindCurrencyPending
	KindTimeZone
)

// ScalarResult is a single-unit conversion, rendered as "v u".
type ScalarResult struct {
	ConvertedValue float64
	ConvertedUnit  units.Unit
}

// Dimensions3DResult is a 3-axis conversion, rendered as "a x b x c u".
type Dimensions3DResult struct {
	L, W, H float64
	Unit    units.Unit
}

// CurrencyPendingResult awaits a rate from the rate cache service.
type CurrencyPendingResult struct {
	FromCode currency.Code
	ToCode   currency.Code
	Amount   float64
}

// TimeZoneResult is a time-of-day conversion, rendered as "HH:MM LABEL".
type TimeZoneResult struct {
	Hours     int
	Minutes   int
	ZoneLabel string
}

// Conversion is the detector's output: the matched substring, the parsed
// original value/unit, and exactly one populated result variant.
type Conversion struct {
	OriginalText  string
	OriginalValue float64
	OriginalUnit  units.Unit
	Kind          Kind

	Scalar          *ScalarResult
	Dimensions3D    *Dimensions3DResult
	CurrencyPending *CurrencyPendingResult
	TimeZone        *TimeZoneResult
}

// UserSettings mirrors §6.1: per-dimension target units plus formatting
// and locale preferences. Consumed read-only.
type UserSettings struct {
	LengthUnit       units.Unit
	WeightUnit       units.Unit
	TemperatureUnit  units.Unit
	VolumeUnit       units.Unit
	AreaUnit         units.Unit
	SpeedUnit        units.Unit
	AccelerationUnit units.Unit
	FlowRateUnit     units.Unit
	TorqueUnit       units.Unit
	PressureUnit     units.Unit

	TimezoneUnit string // zone name, or "auto" (default)
	CurrencyUnit currency.Code

	Is12hr bool
	Preset string // "metric" | "imperial" | "custom"

	PageCountryCode string
	PageLanguage    string
	PageTLD         string
}

// DefaultUserSettings returns the registry-documented defaults.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		TimezoneUnit: "auto",
		CurrencyUnit: "USD",
		Is12hr:       true,
		Preset:       "custom",
	}
}

func (s UserSettings) targetUnit(dim units.Dimension) units.Unit {
	switch dim {
	case units.DimensionLength:
		return s.LengthUnit
	case units.DimensionWeight:
		return s.WeightUnit
	case units.DimensionTemperature:
		return s.TemperatureUnit
	case units.DimensionVolume:
		return s.VolumeUnit
	case units.DimensionArea:
		return s.AreaUnit
	case units.DimensionSpeed:
		return s.SpeedUnit
	case units.DimensionAcceleration:
		return s.AccelerationUnit
	case units.DimensionFlowRate:
		return s.FlowRateUnit
	case units.DimensionTorque:
		return s.TorqueUnit
	case units.DimensionPressure:
		return s.PressureUnit
	default:
		return ""
	}
}
