package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fortuna/ratingsync/internal/reconcile"
	"github.com/fortuna/ratingsync/internal/report"
)

// Service wraps a Runner with run state: the latest report, run
// metrics and a one-run-at-a-time guard. It also drives the optional
// daily refresh loop in serve mode.
type Service struct {
	runner *Runner

	mu       sync.Mutex
	running  bool
	lastRun  time.Time
	lastErr  error
	latest   *report.Report
	metrics  reconcile.Metrics
	duration time.Duration
}

// NewService creates a service around a runner.
func NewService(runner *Runner) *Service {
	return &Service{
		runner: runner,
	}
}

// ErrRunInProgress is returned when a refresh is requested while a
// run is already executing.
var ErrRunInProgress = fmt.Errorf("a reconciliation run is already in progress")

// Run executes one reconciliation and stores its outcome. Only one
// run executes at a time.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrRunInProgress
	}
	s.running = true
	s.mu.Unlock()

	result, err := s.runner.Run(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.lastRun = time.Now()
	s.lastErr = err
	if err == nil {
		s.latest = result.Report
		s.metrics = result.Metrics
		s.duration = result.Duration
	}

	return result, err
}

// RefreshAsync starts a run in the background. Returns
// ErrRunInProgress without starting anything when one is active.
func (s *Service) RefreshAsync(ctx context.Context) error {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if running {
		return ErrRunInProgress
	}

	go func() {
		if _, err := s.Run(ctx); err != nil && err != ErrRunInProgress {
			log.Printf("⚠️  Background refresh failed: %v", err)
		}
	}()

	return nil
}

// Latest returns the most recent successful report, if any.
func (s *Service) Latest() (*report.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.latest != nil
}

// Status reports current run state for the API.
func (s *Service) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":      s.running,
		"has_report":   s.latest != nil,
		"last_run":     s.lastRun,
		"last_elapsed": s.duration.String(),
		"metrics":      s.metrics,
	}
	if s.lastErr != nil {
		status["last_error"] = s.lastErr.Error()
	}
	return status
}

// RunDaily refreshes the report once a day at the given hour until
// the context is cancelled.
func (s *Service) RunDaily(ctx context.Context, hour int) {
	log.Printf("→ Daily refresh scheduler started (runs at %02d:00 daily)", hour)

	for {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		waitDuration := time.Until(nextRun)
		log.Printf("  Next refresh: %s (in %v)", nextRun.Format("2006-01-02 15:04:05"), waitDuration.Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("→ Daily refresh scheduler stopped")
			return
		case <-time.After(waitDuration):
			log.Println("═══ Daily Refresh Starting ═══")
			if _, err := s.Run(ctx); err != nil {
				log.Printf("❌ Daily refresh failed: %v", err)
			}
			log.Println("═══ Daily Refresh Complete ═══")
		}
	}
}
