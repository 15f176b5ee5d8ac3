package units

import "testing"

func TestCanonicalizeNormalizesSurfaceForms(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		surface string
		want    Unit
	}{
		{"Kilometers", "km"},
		{"  km  ", "km"},
		{"Square   Meters", "m2"},
		{"lb-ft", "lbft"},
		{"N*m", "Nm"},
		{"g-force", "gforce"},
	}

	for _, tt := range tests {
		got, ok := r.Canonicalize(tt.surface)
		if !ok {
			t.Errorf("Canonicalize(%q): no match", tt.surface)
			continue
		}
		if got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.surface, got, tt.want)
		}
	}
}

func TestCanonicalizeUnknownFails(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Canonicalize("furlongs"); ok {
		t.Error("Canonicalize(furlongs) should fail, furlongs is not registered")
	}
}

func TestNanometerAndNewtonMeterAreDistinctUnits(t *testing.T) {
	r := NewRegistry()

	nm, ok := r.Canonicalize("nm")
	if !ok || nm != "nm" {
		t.Fatalf("Canonicalize(nm) = %q, %v, want \"nm\", true", nm, ok)
	}
	dim, ok := r.DimensionOf(nm)
	if !ok || dim != DimensionLength {
		t.Fatalf("DimensionOf(nm) = %v, %v, want length, true", dim, ok)
	}

	torqueNm, ok := r.Canonicalize("N*m")
	if !ok || torqueNm != "Nm" {
		t.Fatalf("Canonicalize(N*m) = %q, %v, want \"Nm\", true", torqueNm, ok)
	}
	dim, ok = r.DimensionOf(torqueNm)
	if !ok || dim != DimensionTorque {
		t.Fatalf("DimensionOf(Nm) = %v, %v, want torque, true", dim, ok)
	}
}

func TestRatioUndefinedForTemperature(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Ratio("c"); ok {
		t.Error("Ratio(c) should be undefined, temperature conversion is additive")
	}
}

func TestScalingRulesEmptyForUnlistedUnit(t *testing.T) {
	r := NewRegistry()
	if rules := r.ScalingRules(DimensionLength, "km"); rules != nil {
		t.Errorf("ScalingRules(length, km) = %v, want nil (km has no auto-sizing cascade)", rules)
	}
}

func TestScalingRulesOrderedCascade(t *testing.T) {
	r := NewRegistry()
	rules := r.ScalingRules(DimensionLength, "m")
	if len(rules) != 2 {
		t.Fatalf("ScalingRules(length, m) has %d rules, want 2", len(rules))
	}
	if rules[0].Target != "cm" || rules[0].Direction != DirectionDown {
		t.Errorf("first rule = %+v, want hop-down to cm", rules[0])
	}
	if rules[1].Target != "km" || rules[1].Direction != DirectionUp {
		t.Errorf("second rule = %+v, want hop-up to km", rules[1])
	}
}

func TestDefaultUnitPerDimension(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		dim  Dimension
		want Unit
	}{
		{DimensionLength, "m"},
		{DimensionWeight, "kg"},
		{DimensionTemperature, "c"},
		{DimensionVolume, "l"},
		{DimensionArea, "m2"},
		{DimensionSpeed, "ms"},
		{DimensionAcceleration, "ms2"},
		{DimensionFlowRate, "lmin"},
		{DimensionTorque, "Nm"},
		{DimensionPressure, "pa"},
	}
	for _, tt := range tests {
		got, ok := r.DefaultUnit(tt.dim)
		if !ok || got != tt.want {
			t.Errorf("DefaultUnit(%s) = %q, %v, want %q, true", tt.dim, got, ok, tt.want)
		}
	}
}
