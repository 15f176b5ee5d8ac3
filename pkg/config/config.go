// Package config binds the rate cache service's environment-driven
// settings, following AzielCF-az-wap/src/cmd/root.go's
// viper.BindEnv-into-package-vars convention.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds every environment-tunable knob for the rate cache service
// and its collaborators.
type Config struct {
	// §4.5 durations.
	CacheTimeout        time.Duration
	InactivityThreshold time.Duration
	StaleThreshold      time.Duration
	RefreshThreshold    time.Duration

	PrimaryAPIBaseURL  string
	FallbackAPIBaseURL string

	ValkeyEnabled   bool
	ValkeyAddress   string
	ValkeyPassword  string
	ValkeyDB        int
	ValkeyKeyPrefix string

	LogLevel string
}

// Load reads configuration from the process environment, applying the
// spec's defaults for anything unset.
func Load() Config {
	viper.BindEnv("cache_timeout_minutes", "UNIVCONV_CACHE_TIMEOUT_MINUTES")
	viper.BindEnv("inactivity_threshold_minutes", "UNIVCONV_INACTIVITY_THRESHOLD_MINUTES")
	viper.BindEnv("stale_threshold_minutes", "UNIVCONV_STALE_THRESHOLD_MINUTES")
	viper.BindEnv("refresh_threshold_minutes", "UNIVCONV_REFRESH_THRESHOLD_MINUTES")
	viper.BindEnv("primary_api_base_url", "UNIVCONV_PRIMARY_API_BASE_URL")
	viper.BindEnv("fallback_api_base_url", "UNIVCONV_FALLBACK_API_BASE_URL")
	viper.BindEnv("valkey_address", "UNIVCONV_VALKEY_ADDRESS")
	viper.BindEnv("valkey_password", "UNIVCONV_VALKEY_PASSWORD")
	viper.BindEnv("valkey_db", "UNIVCONV_VALKEY_DB")
	viper.BindEnv("valkey_key_prefix", "UNIVCONV_VALKEY_KEY_PREFIX")
	viper.BindEnv("log_level", "UNIVCONV_LOG_LEVEL")

	cfg := Config{
		CacheTimeout:        minutesOrDefault("cache_timeout_minutes", 60),
		InactivityThreshold: minutesOrDefault("inactivity_threshold_minutes", 5),
		StaleThreshold:      minutesOrDefault("stale_threshold_minutes", 45),
		RefreshThreshold:    minutesOrDefault("refresh_threshold_minutes", 50),
		PrimaryAPIBaseURL:   stringOrDefault("primary_api_base_url", "https://api.exchangerate.host"),
		FallbackAPIBaseURL:  stringOrDefault("fallback_api_base_url", "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1/currencies"),
		ValkeyAddress:       viper.GetString("valkey_address"),
		ValkeyPassword:      viper.GetString("valkey_password"),
		ValkeyDB:            viper.GetInt("valkey_db"),
		ValkeyKeyPrefix:     stringOrDefault("valkey_key_prefix", "univconv"),
		LogLevel:            stringOrDefault("log_level", "info"),
	}
	cfg.ValkeyEnabled = cfg.ValkeyAddress != ""
	return cfg
}

func minutesOrDefault(key string, def int) time.Duration {
	if viper.IsSet(key) && viper.GetInt(key) > 0 {
		return time.Duration(viper.GetInt(key)) * time.Minute
	}
	return time.Duration(def) * time.Minute
}

func stringOrDefault(key, def string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return def
}
