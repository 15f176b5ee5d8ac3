package detector

import (
	"testing"

	"github.com/x7amod/Universal-Converter/pkg/converter"
	"github.com/x7amod/Universal-Converter/pkg/timezone"
	"github.com/x7amod/Universal-Converter/pkg/units"
)

func withLocalUTCOffset(hours int, fn func()) {
	prev := localUTCOffsetHours
	localUTCOffsetHours = func() int { return hours }
	defer func() { localUTCOffsetHours = prev }()
	fn()
}

func newTestDetector() *Detector {
	registry := units.NewRegistry()
	conv := converter.New(registry)
	clock := timezone.NewSystem()
	return New(registry, conv, clock)
}

func TestFindConversionRejectsMultilineInput(t *testing.T) {
	d := newTestDetector()
	if _, ok := d.FindConversion("10 km\n5 mi", DefaultUserSettings()); ok {
		t.Error("multiline input should never match")
	}
}

func TestFindConversionLengthMetricToImperial(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.LengthUnit = "ft"
	c, ok := d.FindConversion("the wall is 10 m tall", settings)
	if !ok {
		t.Fatal("expected a length conversion")
	}
	if c.Kind != KindScalar || c.OriginalUnit != "m" {
		t.Fatalf("unexpected conversion: %+v", c)
	}
}

func TestFindConversionTorquePrecedesWeight(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.TorqueUnit = "Nm"
	c, ok := d.FindConversion("tighten to 20 lb-ft", settings)
	if !ok {
		t.Fatal("expected a torque conversion")
	}
	if c.OriginalUnit != "lbft" {
		t.Fatalf("expected lbft torque unit, got %v", c.OriginalUnit)
	}
}

func TestFindConversionBareLbIsWeight(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.WeightUnit = "kg"
	c, ok := d.FindConversion("the package weighs 10 lb", settings)
	if !ok {
		t.Fatal("expected a weight conversion")
	}
	if c.OriginalUnit != "lb" {
		t.Fatalf("expected lb weight unit, got %v", c.OriginalUnit)
	}
}

func TestFindConversionNanometerNotTorque(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.LengthUnit = "um"
	c, ok := d.FindConversion("the gap is 500 nm wide", settings)
	if !ok {
		t.Fatal("expected a length conversion")
	}
	if c.OriginalUnit != "nm" {
		t.Fatalf("expected nanometer (length), got %v", c.OriginalUnit)
	}
}

func TestFindConversionCapitalNmIsTorque(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.TorqueUnit = "lbft"
	c, ok := d.FindConversion("torque spec is 45 Nm", settings)
	if !ok {
		t.Fatal("expected a torque conversion")
	}
	if c.OriginalUnit != "Nm" {
		t.Fatalf("expected Nm torque unit, got %v", c.OriginalUnit)
	}
}

func TestFindConversionDimensions3DPerAxisUnits(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.LengthUnit = "ft"
	c, ok := d.FindConversion("6m x 4m x 2.5m", settings)
	if !ok {
		t.Fatal("expected a dimensions-3D conversion")
	}
	if c.Kind != KindDimensions3D {
		t.Fatalf("expected KindDimensions3D, got %v", c.Kind)
	}
}

func TestFindConversionDimensions3DTrailingUnit(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.LengthUnit = "m"
	c, ok := d.FindConversion("10 x 5 x 3 feet", settings)
	if !ok {
		t.Fatal("expected a dimensions-3D conversion")
	}
	if c.Kind != KindDimensions3D {
		t.Fatalf("expected KindDimensions3D, got %v", c.Kind)
	}
}

func TestFindConversionLowCoverageTripleIsIgnored(t *testing.T) {
	d := newTestDetector()
	c, ok := d.FindConversion("see section 2 x 3 x 4 feet of the appendix for the full derivation and supporting tables", DefaultUserSettings())
	if ok && c.Kind == KindDimensions3D {
		t.Error("a triple covering under 80% of the input should not be treated as dimensions-3D")
	}
}

func TestFindConversionNoOpSuppressedWhenUnchanged(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.LengthUnit = "m"
	if _, ok := d.FindConversion("walk 10 m", settings); ok {
		t.Error("converting m to m with no auto-size hop should be suppressed as a no-op")
	}
}

func TestFindConversionCurrencySymbolPrefixed(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.CurrencyUnit = "USD"
	c, ok := d.FindConversion("that costs €85", settings)
	if !ok {
		t.Fatal("expected a currency conversion")
	}
	if c.Kind != KindCurrencyPending || c.CurrencyPending.FromCode != "EUR" || c.CurrencyPending.ToCode != "USD" {
		t.Fatalf("unexpected currency conversion: %+v", c.CurrencyPending)
	}
}

func TestFindConversionCurrencySkippedWhenSameAsTarget(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.CurrencyUnit = "EUR"
	if _, ok := d.FindConversion("that costs €85", settings); ok {
		t.Error("currency already matching the target code should not convert")
	}
}

func TestFindConversionTimeZoneExplicitTarget(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.TimezoneUnit = "Los Angeles"

	c, ok := d.FindConversion("3:30 PM New York", settings)
	if !ok {
		t.Fatal("expected a timezone conversion")
	}
	if c.Kind != KindTimeZone {
		t.Fatalf("expected KindTimeZone, got %v", c.Kind)
	}
	// New York is UTC-5, Los Angeles UTC-8: three hours earlier.
	if c.TimeZone.Hours != 12 || c.TimeZone.Minutes != 30 {
		t.Errorf("got %02d:%02d, want 12:30", c.TimeZone.Hours, c.TimeZone.Minutes)
	}
	if c.TimeZone.ZoneLabel != "Los Angeles" {
		t.Errorf("ZoneLabel = %q, want %q", c.TimeZone.ZoneLabel, "Los Angeles")
	}
}

func TestFindConversionTimeZoneSameZoneIsNoOp(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.TimezoneUnit = "New York"

	if _, ok := d.FindConversion("3:30 PM New York", settings); ok {
		t.Error("converting a zone to itself should be suppressed as a no-op")
	}
}

func TestFindConversionTimeZoneAutoUsesLocalOffset(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings() // TimezoneUnit defaults to "auto"

	withLocalUTCOffset(9, func() { // Tokyo's offset, picked as a fixed viewer offset
		c, ok := d.FindConversion("3:30 PM New York", settings)
		if !ok {
			t.Fatal("expected an auto-target timezone conversion")
		}
		if c.Kind != KindTimeZone {
			t.Fatalf("expected KindTimeZone, got %v", c.Kind)
		}
		// New York is UTC-5; a viewer at UTC+9 is 14 hours ahead.
		if c.TimeZone.Hours != 5 || c.TimeZone.Minutes != 30 {
			t.Errorf("got %02d:%02d, want 05:30", c.TimeZone.Hours, c.TimeZone.Minutes)
		}
		if c.TimeZone.ZoneLabel != "GMT+9" {
			t.Errorf("ZoneLabel = %q, want GMT+9", c.TimeZone.ZoneLabel)
		}
	})
}

func TestFindConversionTimeZoneAutoNoOpWhenViewerSharesOffset(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()

	withLocalUTCOffset(-5, func() { // matches New York's offset
		if _, ok := d.FindConversion("3:30 PM New York", settings); ok {
			t.Error("auto target sharing the source offset should be suppressed as a no-op")
		}
	})
}

func TestFindConversionTemperature(t *testing.T) {
	d := newTestDetector()
	settings := DefaultUserSettings()
	settings.TemperatureUnit = "f"
	c, ok := d.FindConversion("set the oven to 180 C", settings)
	if !ok {
		t.Fatal("expected a temperature conversion")
	}
	if c.OriginalUnit != "c" {
		t.Fatalf("expected celsius, got %v", c.OriginalUnit)
	}
}
