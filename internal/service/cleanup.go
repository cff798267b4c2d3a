package service

import (
	"context"
	"log"
	"sync"
	"time"

	"deposito626-api/internal/repository"
)

// CleanupConfig holds configuration for the order cleanup scheduler.
type CleanupConfig struct {
	// StaleThreshold is how old a pending order must be before it is
	// auto-cancelled. Customers who never followed through in the DM
	// leave these behind.
	StaleThreshold time.Duration

	// Interval is how often the cleanup runs.
	Interval time.Duration
}

// DefaultCleanupConfig returns the default cleanup configuration.
func DefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		StaleThreshold: 7 * 24 * time.Hour,
		Interval:       6 * time.Hour,
	}
}

// CleanupScheduler periodically cancels pending orders that were never
// confirmed by the admin.
type CleanupScheduler struct {
	repo     repository.OrderRepository
	config   CleanupConfig
	ticker   *time.Ticker
	stopCh   chan struct{}
	stopOnce sync.Once
	running  bool
	mu       sync.Mutex
}

// NewCleanupScheduler creates a cleanup scheduler.
func NewCleanupScheduler(repo repository.OrderRepository, config CleanupConfig) *CleanupScheduler {
	if config.StaleThreshold == 0 {
		config.StaleThreshold = 7 * 24 * time.Hour
	}
	if config.Interval == 0 {
		config.Interval = 6 * time.Hour
	}

	return &CleanupScheduler{
		repo:   repo,
		config: config,
		stopCh: make(chan struct{}),
	}
}

// Start begins the cleanup loop.
func (s *CleanupScheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.ticker = time.NewTicker(s.config.Interval)
	s.mu.Unlock()

	log.Printf("[CleanupScheduler] Started - interval: %v, threshold: %v",
		s.config.Interval, s.config.StaleThreshold)

	go s.run()
}

func (s *CleanupScheduler) run() {
	for {
		select {
		case <-s.ticker.C:
			s.runCleanup()
		case <-s.stopCh:
			log.Printf("[CleanupScheduler] Stopped")
			return
		}
	}
}

func (s *CleanupScheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cancelled, err := s.repo.CancelStalePending(ctx, s.config.StaleThreshold)
	if err != nil {
		log.Printf("[CleanupScheduler] Error during cleanup: %v", err)
		return
	}
	if cancelled > 0 {
		log.Printf("[CleanupScheduler] Auto-cancelled %d stale pending orders", cancelled)
	}
}

// Stop halts the cleanup loop.
func (s *CleanupScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
		s.running = false
	})
}

// RunNow triggers an immediate cleanup pass.
func (s *CleanupScheduler) RunNow() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	return s.repo.CancelStalePending(ctx, s.config.StaleThreshold)
}
