package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds user preferences. Precision/DateFormat/Locale/FuzzyMode/
// Autocomplete are the calculator-era prefs carried over from the earlier
// calculator; the per-dimension unit fields and the timezone/viewer fields
// below are what ToDetectorSettings() projects out for the detector.
type Settings struct {
	Precision    int    `json:"precision"`
	DateFormat   string `json:"date_format"`
	Currency     string `json:"currency"`
	Locale       string `json:"locale"`
	FuzzyMode    bool   `json:"fuzzy_mode"`
	Autocomplete bool   `json:"autocomplete"`
	ConfigPath   string `json:"-"`

	// Per-dimension target units (§6.1). Empty means "use the registry
	// default for that dimension".
	LengthUnit       string `json:"length_unit"`
	WeightUnit       string `json:"weight_unit"`
	TemperatureUnit  string `json:"temperature_unit"`
	VolumeUnit       string `json:"volume_unit"`
	AreaUnit         string `json:"area_unit"`
	SpeedUnit        string `json:"speed_unit"`
	AccelerationUnit string `json:"acceleration_unit"`
	FlowRateUnit     string `json:"flow_rate_unit"`
	TorqueUnit       string `json:"torque_unit"`
	PressureUnit     string `json:"pressure_unit"`

	TimezoneUnit string `json:"timezone_unit"` // zone name, or "auto"
	Is12hr       bool   `json:"is_12hr"`
	Preset       string `json:"preset"` // "metric" | "imperial" | "custom"

	PageCountryCode string `json:"page_country_code"`
	PageLanguage    string `json:"page_language"`
	PageTLD         string `json:"page_tld"`
}

// Default returns default settings.
func Default() *Settings {
	return &Settings{
		Precision:    2,
		DateFormat:   "2 Jan 2006",
		Currency:     "GBP",
		Locale:       "en_GB",
		FuzzyMode:    true,
		Autocomplete: true,

		TimezoneUnit: "auto",
		Is12hr:       true,
		Preset:       "custom",
	}
}

// Load loads settings from a file.
func Load(path string) (*Settings, error) {
	s := Default()
	s.ConfigPath = path

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	s.ConfigPath = path
	return s, nil
}

// Save saves settings to a file.
func (s *Settings) Save() error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(s.ConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.ConfigPath, data, 0644)
}

// Set updates a setting by name.
func (s *Settings) Set(name, value string) error {
	switch name {
	case "precision":
		var p int
		if _, err := fmt.Sscanf(value, "%d", &p); err != nil {
			return err
		}
		s.Precision = p
	case "dateformat", "date_format":
		s.DateFormat = value
	case "currency":
		s.Currency = value
	case "locale":
		s.Locale = value
	case "fuzzy", "fuzzy_mode":
		s.FuzzyMode = value == "on" || value == "true" || value == "1"
	case "autocomplete":
		s.Autocomplete = value == "on" || value == "true" || value == "1"
	default:
		return fmt.Errorf("unknown setting: %s", name)
	}
	return nil
}
