package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// newZonesCmd lists the zone table's registered names, the equivalent of
// the original calculator's ":tz list" REPL command adapted to a
// standalone subcommand so a user can discover what a --settings
// timezone_unit value may legally be set to.
func newZonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List every timezone location name the converter recognizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			a, err := newApp(cfg, settingsPath)
			if err != nil {
				return err
			}
			defer a.closeFn()

			names := a.clock.ListLocations()
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
