package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/x7amod/Universal-Converter/pkg/config"
	"github.com/x7amod/Universal-Converter/pkg/converter"
	"github.com/x7amod/Universal-Converter/pkg/detector"
	"github.com/x7amod/Universal-Converter/pkg/formatter"
	"github.com/x7amod/Universal-Converter/pkg/ratecache"
	"github.com/x7amod/Universal-Converter/pkg/ratesapi"
	"github.com/x7amod/Universal-Converter/pkg/settings"
	"github.com/x7amod/Universal-Converter/pkg/store"
	"github.com/x7amod/Universal-Converter/pkg/timezone"
	"github.com/x7amod/Universal-Converter/pkg/units"
)

// app bundles every collaborator a subcommand might need, built once from
// Config + the user's persisted Settings file.
type app struct {
	cfg      config.Config
	settings *settings.Settings
	registry *units.Registry
	conv     *converter.Converter
	clock    *timezone.System
	det      *detector.Detector
	fmt      *formatter.Formatter
	cache    *ratecache.Service
	closeFn  func()
}

func newApp(cfg config.Config, settingsPath string) (*app, error) {
	s, err := settings.Load(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	registry := units.NewRegistry()
	conv := converter.New(registry)
	clock := timezone.NewSystem()
	det := detector.New(registry, conv, clock)
	f := formatter.New(s)

	st, closeFn, err := newStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}

	primary := ratesapi.NewPrimaryClient(cfg.PrimaryAPIBaseURL)
	fallback := ratesapi.NewFallbackClient(cfg.FallbackAPIBaseURL)
	rcCfg := ratecache.Config{
		CacheTimeout:        cfg.CacheTimeout,
		InactivityThreshold: cfg.InactivityThreshold,
		StaleThreshold:      cfg.StaleThreshold,
		RefreshThreshold:    cfg.RefreshThreshold,
	}
	cache := ratecache.New(rcCfg, st, primary, fallback)

	return &app{
		cfg:      cfg,
		settings: s,
		registry: registry,
		conv:     conv,
		clock:    clock,
		det:      det,
		fmt:      f,
		cache:    cache,
		closeFn:  closeFn,
	}, nil
}

func newStore(cfg config.Config) (store.Store, func(), error) {
	if !cfg.ValkeyEnabled {
		return store.NewMemory(), func() {}, nil
	}
	vk, err := store.NewValkey(store.ValkeyConfig{
		Address:   cfg.ValkeyAddress,
		Password:  cfg.ValkeyPassword,
		DB:        cfg.ValkeyDB,
		KeyPrefix: cfg.ValkeyKeyPrefix,
	})
	if err != nil {
		return nil, nil, err
	}
	logrus.Infof("[CONVERT] using valkey store at %s", cfg.ValkeyAddress)
	return vk, vk.Close, nil
}
