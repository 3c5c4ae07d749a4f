package scheduler

import (
	"context"
	"sync"
	"time"

	"tagebuch/internal/logger"
)

// DefaultInterval is how often idle editor sessions are swept.
const DefaultInterval = time.Minute

// Sweeper closes idle sessions and reports how many it closed.
type Sweeper interface {
	SweepIdle(ctx context.Context) int
}

type Scheduler struct {
	sweeper    Sweeper
	interval   time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	cancelFunc context.CancelFunc // cancels the current sweep
	mu         sync.Mutex         // protects cancelFunc
}

func New(sweeper Sweeper, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "sweep", "resource", "editor", "result", "ok", "interval_ms", s.interval.Milliseconds())
}

// Stop cancels a running sweep and waits for the loop to exit. Safe to call twice.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.cancelFunc != nil {
			s.cancelFunc()
		}
		s.mu.Unlock()

		close(s.stopCh)
		s.wg.Wait()
		logger.Info("scheduler stopped", "module", "scheduler", "action", "sweep", "resource", "editor", "result", "ok")
	})
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	closed := s.sweeper.SweepIdle(ctx)
	logger.Debug("scheduled sweep completed", "module", "scheduler", "action", "sweep", "resource", "editor", "result", "ok", "closed", closed)
}
