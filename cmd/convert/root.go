package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/x7amod/Universal-Converter/pkg/config"
)

var settingsPath string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "convert",
		Short: "Universal Converter - detect and convert units, currencies, and timezones in free text",
		Long: `convert scans a selection string for a measurement, currency, or
time-of-day expression and prints the converted value.

It recognises lengths, weights, temperatures, volumes, areas, speeds,
accelerations, flow rates, torque, pressure, 3-axis dimensions, currency
amounts, and "time at timezone" expressions, and applies a user's
preferred target units.`,
	}

	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", defaultSettingsPath(), "path to the settings JSON file")

	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newWarmCacheCmd())
	rootCmd.AddCommand(newClearCacheCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newZonesCmd())

	return rootCmd
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "univconv-settings.json"
	}
	return filepath.Join(dir, "univconv", "settings.json")
}

// loadConfig is the single place every subcommand goes to pick up the
// environment-driven Config and set the process log level accordingly.
func loadConfig() config.Config {
	cfg := config.Load()
	setLogLevel(cfg.LogLevel)
	return cfg
}
