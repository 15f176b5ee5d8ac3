// Package ratecache is the rate cache service (C5): (fromCode, toCode) ->
// Rate with at-most-one in-flight fetch per pair, primary-then-fallback
// API selection, and staleness-aware refresh gated by user activity.
package ratecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/x7amod/Universal-Converter/pkg/store"
)

// ErrRateUnavailable is the sole fatal error GetCurrencyRate can return:
// both the primary and fallback fetch failed and no stale rate exists to
// fall back to.
var ErrRateUnavailable = errors.New("ratecache: rate unavailable")

const (
	cacheKey    = "currencyRatesCache"
	activityKey = "lastUserActivity"
)

// RateFetcher is the §6.4 HTTP contract, satisfied by ratesapi.PrimaryClient
// / ratesapi.FallbackClient.
type RateFetcher interface {
	Fetch(ctx context.Context, base string) (map[string]float64, error)
}

// CacheEntry is the persisted per-base rate snapshot (§3's
// CurrencyRateCacheEntry).
type CacheEntry struct {
	Rates        map[string]float64 `json:"rates"`
	Timestamp    int64              `json:"timestamp"`
	APITimestamp int64              `json:"apiTimestamp,omitempty"`
	UsedFallback bool               `json:"usedFallback"`
}

// RateResult is what GetCurrencyRate returns: a rate plus provenance.
// AsOf is the wall-clock time the underlying cache entry was written (or
// fetched, for a fresh result); callers use it to render a "cached N ago"
// warning for stale results.
type RateResult struct {
	Rate         float64
	UsedFallback bool
	FromCache    bool
	Stale        bool
	AsOf         time.Time
}

// Config carries the four tunable durations from §4.5.
type Config struct {
	CacheTimeout        time.Duration
	InactivityThreshold time.Duration
	StaleThreshold      time.Duration
	RefreshThreshold    time.Duration
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		CacheTimeout:        60 * time.Minute,
		InactivityThreshold: 5 * time.Minute,
		StaleThreshold:      45 * time.Minute,
		RefreshThreshold:    50 * time.Minute,
	}
}

// nowFunc is overridable by tests to control staleness calculations.
var nowFunc = func() time.Time { return time.Now() }

// Service is the concurrency-safe rate cache. Zero value is not usable;
// build with New.
type Service struct {
	cfg      Config
	store    store.Store
	primary  RateFetcher
	fallback RateFetcher

	inFlightMu sync.Mutex
	inFlight   map[string]*inFlightFetch

	activityMu sync.RWMutex
	activity   int64 // in-memory mirror of lastUserActivity
}

type inFlightFetch struct {
	done   chan struct{}
	result RateResult
	err    error
}

// New builds a Service over the given persistence and fetch collaborators.
func New(cfg Config, st store.Store, primary, fallback RateFetcher) *Service {
	return &Service{
		cfg:      cfg,
		store:    st,
		primary:  primary,
		fallback: fallback,
		inFlight: make(map[string]*inFlightFetch),
	}
}

func pairKey(from, to string) string {
	return strings.ToLower(from) + "|" + strings.ToLower(to)
}

// GetCurrencyRate resolves a single (from, to) rate, deduplicating
// concurrent callers onto one in-flight fetch per pair.
func (s *Service) GetCurrencyRate(ctx context.Context, from, to string) (RateResult, error) {
	from = strings.ToLower(from)
	to = strings.ToLower(to)
	key := pairKey(from, to)

	s.inFlightMu.Lock()
	if existing, ok := s.inFlight[key]; ok {
		s.inFlightMu.Unlock()
		<-existing.done
		return existing.result, existing.err
	}

	fut := &inFlightFetch{done: make(chan struct{})}
	s.inFlight[key] = fut
	s.inFlightMu.Unlock()

	fut.result, fut.err = s.fetchRate(ctx, from, to)
	close(fut.done)

	s.inFlightMu.Lock()
	delete(s.inFlight, key)
	s.inFlightMu.Unlock()

	return fut.result, fut.err
}

// fetchRate implements §4.5's fetch algorithm for a single pair.
func (s *Service) fetchRate(ctx context.Context, from, to string) (RateResult, error) {
	cached := s.loadCacheEntry(ctx, from)

	if cached != nil && s.isCacheValid(cached) {
		if rate, ok := cached.Rates[to]; ok {
			return RateResult{Rate: rate, FromCache: true, AsOf: time.UnixMilli(cached.Timestamp)}, nil
		}
	}

	var staleRate float64
	var haveStale bool
	var staleAsOf time.Time
	if cached != nil {
		if rate, ok := cached.Rates[to]; ok {
			staleRate, haveStale = rate, true
			staleAsOf = time.UnixMilli(cached.Timestamp)
		}
	}

	if !s.shouldRefreshCache(cached) && haveStale {
		return RateResult{Rate: staleRate, FromCache: true, Stale: true, AsOf: staleAsOf}, nil
	}

	rates, usedFallback, err := s.fetchFromAPIsRequiring(ctx, from, to)
	if err != nil {
		if haveStale {
			logrus.WithError(err).Warnf("[RATECACHE] both APIs failed for base %q, serving stale rate", from)
			return RateResult{Rate: staleRate, Stale: true, AsOf: staleAsOf}, nil
		}
		logrus.WithError(err).Errorf("[RATECACHE] both APIs failed for base %q, no stale rate available", from)
		return RateResult{}, ErrRateUnavailable
	}

	fetchedAt := nowFunc()
	s.storeCacheEntry(ctx, from, CacheEntry{
		Rates:        rates,
		Timestamp:    fetchedAt.UnixMilli(),
		UsedFallback: usedFallback,
	})

	rate, ok := rates[to]
	if !ok {
		if haveStale {
			return RateResult{Rate: staleRate, Stale: true, AsOf: staleAsOf}, nil
		}
		return RateResult{}, ErrRateUnavailable
	}
	return RateResult{Rate: rate, UsedFallback: usedFallback, AsOf: fetchedAt}, nil
}

// fetchFromAPIs tries the primary fetcher, falling back on failure.
func (s *Service) fetchFromAPIs(ctx context.Context, base string) (map[string]float64, bool, error) {
	return s.fetchFromAPIsRequiring(ctx, base, "")
}

// fetchFromAPIsRequiring is fetchFromAPIs plus §4.5's NotFound handling: a
// primary response that doesn't carry the requested code is treated the
// same as a primary failure, and the fallback is tried in its place. require
// may be empty when the caller wants every rate the base yields (WarmCache,
// RefreshCacheIfNeeded) rather than one specific pair.
func (s *Service) fetchFromAPIsRequiring(ctx context.Context, base, require string) (map[string]float64, bool, error) {
	rates, err := s.primary.Fetch(ctx, base)
	switch {
	case err == nil && (require == "" || hasRate(rates, require)):
		return rates, false, nil
	case err == nil:
		logrus.Warnf("[RATECACHE] primary API response for base %q missing %q, trying fallback", base, require)
		err = fmt.Errorf("ratecache: primary response for base %q missing rate %q", base, require)
	default:
		logrus.WithError(err).Warnf("[RATECACHE] primary API failed for base %q, trying fallback", base)
	}

	rates, fallbackErr := s.fallback.Fetch(ctx, base)
	if fallbackErr == nil {
		return rates, true, nil
	}
	logrus.WithError(fallbackErr).Errorf("[RATECACHE] fallback API failed for base %q", base)
	return nil, false, fallbackErr
}

func hasRate(rates map[string]float64, code string) bool {
	_, ok := rates[code]
	return ok
}

func (s *Service) isCacheValid(entry *CacheEntry) bool {
	age := nowFunc().UnixMilli() - entry.Timestamp
	return time.Duration(age)*time.Millisecond < s.cfg.CacheTimeout
}

func (s *Service) shouldRefreshCache(entry *CacheEntry) bool {
	if entry == nil {
		return true
	}
	return s.isUserActive() && !s.isCacheValid(entry)
}

func (s *Service) isUserActive() bool {
	s.activityMu.RLock()
	last := s.activity
	s.activityMu.RUnlock()
	age := nowFunc().UnixMilli() - last
	return time.Duration(age)*time.Millisecond < s.cfg.InactivityThreshold
}

// WarmCache fetches the "usd" base (which yields all rates in one call)
// unless an already-valid cache for it exists. Called on install/startup.
func (s *Service) WarmCache(ctx context.Context) {
	cached := s.loadCacheEntry(ctx, "usd")
	if cached != nil && s.isCacheValid(cached) {
		return
	}
	rates, usedFallback, err := s.fetchFromAPIs(ctx, "usd")
	if err != nil {
		logrus.WithError(err).Error("[RATECACHE] warmCache failed")
		return
	}
	s.storeCacheEntry(ctx, "usd", CacheEntry{
		Rates:        rates,
		Timestamp:    nowFunc().UnixMilli(),
		UsedFallback: usedFallback,
	})
}

// PrefetchIfStale is a fire-and-forget hook called from activity pings.
func (s *Service) PrefetchIfStale(ctx context.Context) {
	if !s.isUserActive() {
		return
	}
	cached := s.loadCacheEntry(ctx, "usd")
	if cached == nil {
		go s.WarmCache(context.Background())
		return
	}
	age := time.Duration(nowFunc().UnixMilli()-cached.Timestamp) * time.Millisecond
	if age >= s.cfg.StaleThreshold && age < s.cfg.CacheTimeout {
		go func() {
			rates, usedFallback, err := s.fetchFromAPIs(context.Background(), "usd")
			if err != nil {
				logrus.WithError(err).Warn("[RATECACHE] prefetchIfStale fetch failed")
				return
			}
			s.storeCacheEntry(context.Background(), "usd", CacheEntry{
				Rates:        rates,
				Timestamp:    nowFunc().UnixMilli(),
				UsedFallback: usedFallback,
			})
		}()
	}
}

// RefreshCacheIfNeeded is alarm-driven (§6.5): re-fetches every cached
// base whose age exceeds RefreshThreshold, logging and continuing past
// per-currency failures.
func (s *Service) RefreshCacheIfNeeded(ctx context.Context) {
	if !s.isUserActive() {
		return
	}
	all := s.loadAllCacheEntries(ctx)
	for base, entry := range all {
		age := time.Duration(nowFunc().UnixMilli()-entry.Timestamp) * time.Millisecond
		if age <= s.cfg.RefreshThreshold {
			continue
		}
		rates, err := s.primary.Fetch(ctx, base)
		if err != nil {
			logrus.WithError(err).Warnf("[RATECACHE] refreshCacheIfNeeded: re-fetch failed for base %q", base)
			continue
		}
		s.storeCacheEntry(ctx, base, CacheEntry{
			Rates:        rates,
			Timestamp:    nowFunc().UnixMilli(),
			UsedFallback: false,
		})
	}
}

// UpdateActivity records that the user is currently active.
func (s *Service) UpdateActivity(ctx context.Context) {
	now := nowFunc().UnixMilli()
	s.activityMu.Lock()
	s.activity = now
	s.activityMu.Unlock()

	raw, _ := json.Marshal(now)
	if err := s.store.Set(ctx, activityKey, raw); err != nil {
		logrus.WithError(err).Warn("[RATECACHE] updateActivity: store write failed")
	}
}

// LoadActivity reads the persisted lastUserActivity value at startup,
// defaulting to 0 (never active) if none is stored.
func (s *Service) LoadActivity(ctx context.Context) {
	raw, ok, err := s.store.Get(ctx, activityKey)
	if err != nil {
		logrus.WithError(err).Warn("[RATECACHE] loadActivity: store read failed")
		return
	}
	if !ok {
		return
	}
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	s.activityMu.Lock()
	s.activity = v
	s.activityMu.Unlock()
}

// ClearCache removes the cache record; the activity record is left intact.
func (s *Service) ClearCache(ctx context.Context) {
	if err := s.store.Remove(ctx, cacheKey); err != nil {
		logrus.WithError(err).Warn("[RATECACHE] clearCache: store remove failed")
	}
}

func (s *Service) loadCacheEntry(ctx context.Context, base string) *CacheEntry {
	all := s.loadAllCacheEntries(ctx)
	entry, ok := all[base]
	if !ok {
		return nil
	}
	return &entry
}

func (s *Service) loadAllCacheEntries(ctx context.Context) map[string]CacheEntry {
	raw, ok, err := s.store.Get(ctx, cacheKey)
	if err != nil {
		logrus.WithError(err).Warn("[RATECACHE] loadAllCacheEntries: store read failed")
		return map[string]CacheEntry{}
	}
	if !ok {
		return map[string]CacheEntry{}
	}
	var all map[string]CacheEntry
	if err := json.Unmarshal(raw, &all); err != nil {
		logrus.WithError(err).Warn("[RATECACHE] loadAllCacheEntries: decode failed")
		return map[string]CacheEntry{}
	}
	return all
}

func (s *Service) storeCacheEntry(ctx context.Context, base string, entry CacheEntry) {
	all := s.loadAllCacheEntries(ctx)
	all[base] = entry
	raw, err := json.Marshal(all)
	if err != nil {
		logrus.WithError(err).Error("[RATECACHE] storeCacheEntry: encode failed")
		return
	}
	if err := s.store.Set(ctx, cacheKey, raw); err != nil {
		logrus.WithError(err).Warn("[RATECACHE] storeCacheEntry: store write failed")
	}
}
