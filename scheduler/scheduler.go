// Package scheduler runs the periodic housekeeping of the medication review
// API: evicting expired reports from the local cache and warning when report
// generation looks stuck.
package scheduler

import (
	"fmt"
	"time"

	"github.com/giygas/medreview-api/interfaces"
	"github.com/giygas/medreview-api/logging"
	"github.com/giygas/medreview-api/metrics"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// staleAfter is how long the service may go without generating a report
// before the monitor warns.
const staleAfter = 24 * time.Hour

// Scheduler handles cache eviction and health monitoring
type Scheduler struct {
	cache           interfaces.ReportCache
	generator       interfaces.ReportGenerator
	cleanupInterval time.Duration
	scheduler       *gocron.Scheduler
	started         time.Time
	now             func() time.Time
}

// NewScheduler creates a scheduler that evicts expired cache entries every
// cleanupInterval.
func NewScheduler(cache interfaces.ReportCache, generator interfaces.ReportGenerator, cleanupInterval time.Duration) *Scheduler {
	return &Scheduler{
		cache:           cache,
		generator:       generator,
		cleanupInterval: cleanupInterval,
		scheduler:       gocron.NewScheduler(time.Local),
		now:             time.Now,
	}
}

// Start registers the jobs and runs them in the background
func (s *Scheduler) Start() error {
	if s.cleanupInterval <= 0 {
		return fmt.Errorf("invalid cache cleanup interval: %s", s.cleanupInterval)
	}
	s.started = s.now()

	_, err := s.scheduler.Every(s.cleanupInterval).SingletonMode().Do(func() {
		s.evictExpired()
	})
	if err != nil {
		logging.Error("Failed to schedule cache eviction", "error", err)
		return fmt.Errorf("failed to schedule cache eviction: %w", err)
	}

	_, err = s.scheduler.Every(1).Hour().WaitForSchedule().Do(func() {
		for _, warning := range s.checkHealth() {
			logging.Warn(warning)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule health monitoring", "error", err)
		return fmt.Errorf("failed to schedule health monitoring: %w", err)
	}

	s.scheduler.StartAsync()
	logging.Info("Scheduler started", "cache_cleanup_interval", s.cleanupInterval.String())

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// evictExpired drops expired reports and refreshes the cache gauge
func (s *Scheduler) evictExpired() int {
	removed := s.cache.EvictExpired()
	metrics.ReportCacheEntries.Set(float64(s.cache.Len()))

	if removed > 0 {
		logging.Info("Evicted expired reports from cache", "removed", removed, "remaining", s.cache.Len())
	}
	return removed
}

// checkHealth returns the warnings the hourly monitor should log
func (s *Scheduler) checkHealth() []string {
	var warnings []string

	if state := s.generator.State(); state == "open" {
		warnings = append(warnings, "Report webhook circuit breaker is open")
	}

	// Before the first report, measure from process start
	last := s.cache.LastStored()
	if last.IsZero() {
		last = s.started
	}
	if !last.IsZero() && s.now().Sub(last) > staleAfter {
		warnings = append(warnings, fmt.Sprintf("No report generated in over %d hours", int(staleAfter.Hours())))
	}

	return warnings
}
