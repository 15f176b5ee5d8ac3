// Package converter is the unit converter (C2): linear conversion between
// units of one dimension, the additive temperature formula, auto-sizing of
// the display unit by magnitude, and final result formatting.
package converter

import (
	"fmt"
	"math"

	"github.com/x7amod/Universal-Converter/pkg/units"
)

// Converter wraps a unit registry and exposes the conversion contract.
// It holds no mutable state and is safe for concurrent use.
type Converter struct {
	registry *units.Registry
}

// New builds a Converter over the given registry.
func New(registry *units.Registry) *Converter {
	return &Converter{registry: registry}
}

// Convert converts value between two units of the same dimension. Returns
// ok=false if the units are unknown or belong to different dimensions.
func (c *Converter) Convert(value float64, from, to units.Unit) (float64, bool) {
	fromDim, ok := c.registry.DimensionOf(from)
	if !ok {
		return 0, false
	}
	toDim, ok := c.registry.DimensionOf(to)
	if !ok || fromDim != toDim {
		return 0, false
	}
	if fromDim == units.DimensionTemperature {
		return c.ConvertTemperature(value, from, to)
	}

	fromRatio, ok := c.registry.Ratio(from)
	if !ok {
		return 0, false
	}
	toRatio, ok := c.registry.Ratio(to)
	if !ok {
		return 0, false
	}
	base := value / fromRatio
	return base * toRatio, true
}

// ConvertTemperature performs the additive Celsius-intermediate conversion.
// from/to must each be "c", "f", or "k".
func (c *Converter) ConvertTemperature(value float64, from, to units.Unit) (float64, bool) {
	var celsius float64
	switch from {
	case "c":
		celsius = value
	case "f":
		celsius = (value - 32) * 5 / 9
	case "k":
		celsius = value - 273.15
	default:
		return 0, false
	}

	switch to {
	case "c":
		return celsius, true
	case "f":
		return celsius*9/5 + 32, true
	case "k":
		return celsius + 273.15, true
	default:
		return 0, false
	}
}

// GetBestUnit applies the ordered ScalingRule cascade for the dimension and
// source unit, returning the rewritten value and unit. Each hop re-derives
// its value from the original base magnitude, never from a prior hop's
// already-scaled value. If sourceUnit is non-empty, a hop landing back on
// sourceUnit is suppressed.
func (c *Converter) GetBestUnit(value float64, dim units.Dimension, defaultUnit units.Unit, sourceUnit units.Unit) (float64, units.Unit) {
	rules := c.registry.ScalingRules(dim, defaultUnit)
	if len(rules) == 0 {
		return value, defaultUnit
	}

	defaultRatio, ok := c.registry.Ratio(defaultUnit)
	if !ok {
		return value, defaultUnit
	}
	base := value / defaultRatio

	current := value
	currentUnit := defaultUnit
	for len(rules) > 0 {
		hopped := false
		for _, rule := range rules {
			if sourceUnit != "" && rule.Target == sourceUnit {
				continue
			}
			match := false
			switch rule.Direction {
			case units.DirectionUp:
				match = current >= rule.Threshold
			case units.DirectionDown:
				match = current < rule.Threshold
			}
			if !match {
				continue
			}
			targetRatio, ok := c.registry.Ratio(rule.Target)
			if !ok {
				continue
			}
			current = base * targetRatio
			currentUnit = rule.Target
			hopped = true
			break
		}
		if !hopped {
			break
		}
		rules = c.registry.ScalingRules(dim, currentUnit)
	}
	return current, currentUnit
}

// FormatResult rounds value to two decimals (round-half-away-from-zero)
// and renders "{v} {displayName(unit)}".
func (c *Converter) FormatResult(value float64, unit units.Unit) string {
	return fmt.Sprintf("%s %s", c.FormatNumber(value), c.registry.DisplayName(unit))
}

// FormatNumber rounds value to two decimals (round-half-away-from-zero)
// and trims trailing zeros, without a unit suffix. FormatResult builds on
// it to add the unit's display name.
func (c *Converter) FormatNumber(value float64) string {
	return formatNumber(roundHalfAwayFromZero(value, 2))
}

// DisplayName passes through to the underlying registry's display name
// for a unit code.
func (c *Converter) DisplayName(unit units.Unit) string {
	return c.registry.DisplayName(unit)
}

func roundHalfAwayFromZero(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	if value >= 0 {
		return math.Floor(value*pow+0.5) / pow
	}
	return math.Ceil(value*pow-0.5) / pow
}

// formatNumber trims a trailing ".00" / trailing zero for round numbers,
// matching the "3.05 m", "1 mm", "19.69 ft" style seen in seed scenarios.
func formatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// GetDefaultTargetUnit returns settingsUnit when it is a known unit of dim,
// and otherwise falls back to the registry default for dim.
func (c *Converter) GetDefaultTargetUnit(dim units.Dimension, settingsUnit units.Unit) (units.Unit, bool) {
	if settingsUnit != "" && c.registry.IsKnown(settingsUnit) {
		if d, ok := c.registry.DimensionOf(settingsUnit); ok && d == dim {
			return settingsUnit, true
		}
	}
	return c.registry.DefaultUnit(dim)
}

// HarmonizeDimensions3D applies §4.2's dimension-triple harmonization rule:
// if and only if all three auto-sized axis units agree on some unit other
// than the user's target unit, that unit wins; otherwise the target unit
// is used for all three axes (re-converted from each axis's original base
// value, never scaled from an already-converted value).
func (c *Converter) HarmonizeDimensions3D(dim units.Dimension, baseValues [3]float64, targetUnit units.Unit) (values [3]float64, unit units.Unit) {
	type axisResult struct {
		value float64
		unit  units.Unit
	}
	axes := make([]axisResult, 3)
	for i, base := range baseValues {
		targetRatio, ok := c.registry.Ratio(targetUnit)
		if !ok {
			axes[i] = axisResult{value: base, unit: targetUnit}
			continue
		}
		inTarget := base * targetRatio
		sized, sizedUnit := c.GetBestUnit(inTarget, dim, targetUnit, "")
		axes[i] = axisResult{value: sized, unit: sizedUnit}
	}

	allAgree := axes[0].unit == axes[1].unit && axes[1].unit == axes[2].unit && axes[0].unit != targetUnit
	if allAgree {
		for i, a := range axes {
			values[i] = a.value
		}
		return values, axes[0].unit
	}

	targetRatio, ok := c.registry.Ratio(targetUnit)
	if !ok {
		return baseValues, targetUnit
	}
	for i, base := range baseValues {
		values[i] = base * targetRatio
	}
	return values, targetUnit
}
