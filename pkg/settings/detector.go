package settings

import (
	"github.com/x7amod/Universal-Converter/pkg/currency"
	"github.com/x7amod/Universal-Converter/pkg/detector"
	"github.com/x7amod/Universal-Converter/pkg/units"
)

// ToDetectorSettings projects the persisted Settings onto the narrower
// detector.UserSettings the conversion pipeline actually consumes.
func (s *Settings) ToDetectorSettings() detector.UserSettings {
	currencyUnit := currency.Code(s.Currency)
	if currencyUnit == "" {
		currencyUnit = "USD"
	}
	return detector.UserSettings{
		LengthUnit:       units.Unit(s.LengthUnit),
		WeightUnit:       units.Unit(s.WeightUnit),
		TemperatureUnit:  units.Unit(s.TemperatureUnit),
		VolumeUnit:       units.Unit(s.VolumeUnit),
		AreaUnit:         units.Unit(s.AreaUnit),
		SpeedUnit:        units.Unit(s.SpeedUnit),
		AccelerationUnit: units.Unit(s.AccelerationUnit),
		FlowRateUnit:     units.Unit(s.FlowRateUnit),
		TorqueUnit:       units.Unit(s.TorqueUnit),
		PressureUnit:     units.Unit(s.PressureUnit),

		TimezoneUnit: s.TimezoneUnit,
		CurrencyUnit: currencyUnit,

		Is12hr: s.Is12hr,
		Preset: s.Preset,

		PageCountryCode: s.PageCountryCode,
		PageLanguage:    s.PageLanguage,
		PageTLD:         s.PageTLD,
	}
}
