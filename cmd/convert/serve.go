package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/x7amod/Universal-Converter/pkg/scheduler"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the background currency-cache refresh alarm until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			a, err := newApp(cfg, settingsPath)
			if err != nil {
				return err
			}
			defer a.closeFn()

			a.cache.LoadActivity(context.Background())
			a.cache.WarmCache(context.Background())

			sched := scheduler.New()
			stop := sched.CreateAlarm("refreshCurrencyCache", cfg.RefreshThreshold, func() {
				a.cache.RefreshCacheIfNeeded(context.Background())
			})
			defer stop()

			logrus.Infof("[CONVERT] serving, refreshing every %s", cfg.RefreshThreshold)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			logrus.Info("[CONVERT] shutting down")
			return nil
		},
	}
}
