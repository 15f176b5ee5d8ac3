package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newWarmCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warm-cache",
		Short: "Fetch and cache the USD rate table immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			a, err := newApp(cfg, settingsPath)
			if err != nil {
				return err
			}
			defer a.closeFn()

			a.cache.WarmCache(context.Background())
			fmt.Fprintln(cmd.OutOrStdout(), "cache warmed")
			return nil
		},
	}
}

func newClearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Remove all cached currency rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			a, err := newApp(cfg, settingsPath)
			if err != nil {
				return err
			}
			defer a.closeFn()

			a.cache.ClearCache(context.Background())
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	}
}
