// Package scheduler is the §6.5 alarm contract: a named, periodic callback,
// backed by a time.Ticker goroutine.
package scheduler

import (
	"sync"
	"time"
)

// Scheduler runs named periodic callbacks ("alarms").
type Scheduler struct {
	mu     sync.Mutex
	alarms map[string]func()
}

// New builds an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{alarms: make(map[string]func())}
}

// CreateAlarm registers fn to run every period, starting after the first
// tick. Returns a stop function that cancels the ticker; calling it twice
// is safe.
func (s *Scheduler) CreateAlarm(name string, period time.Duration, fn func()) (stop func()) {
	s.mu.Lock()
	s.alarms[name] = fn
	s.mu.Unlock()

	ticker := time.NewTicker(period)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
			s.mu.Lock()
			delete(s.alarms, name)
			s.mu.Unlock()
		})
	}
}
