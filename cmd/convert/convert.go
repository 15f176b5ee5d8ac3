package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/x7amod/Universal-Converter/pkg/detector"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [text]",
		Short: "Detect and convert a single selection string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			a, err := newApp(cfg, settingsPath)
			if err != nil {
				return err
			}
			defer a.closeFn()

			return runConvert(cmd, a, args[0])
		},
	}
	return cmd
}

func runConvert(cmd *cobra.Command, a *app, text string) error {
	userSettings := a.settings.ToDetectorSettings()

	conv, ok := a.det.FindConversion(text, userSettings)
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "no conversion found")
		return nil
	}

	var resolvedRate float64 = 1
	if conv.Kind == detector.KindCurrencyPending {
		ctx := context.Background()
		r := conv.CurrencyPending
		result, err := a.cache.GetCurrencyRate(ctx, string(r.FromCode), string(r.ToCode))
		if err != nil {
			return fmt.Errorf("rate unavailable for %s -> %s: %w", r.FromCode, r.ToCode, err)
		}
		resolvedRate = result.Rate
		if result.Stale {
			fmt.Fprintf(cmd.OutOrStdout(), "warning: using a rate cached %s\n", humanize.Time(result.AsOf))
		}
	}

	rendered := a.fmt.FormatConversion(conv, a.conv, resolvedRate)
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", strings.TrimSpace(text), rendered)
	return nil
}
