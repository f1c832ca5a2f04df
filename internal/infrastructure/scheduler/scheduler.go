package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alliyn/alliyn-backend/internal/infrastructure/clock"
)

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler runs jobs on self-rescheduling timers: each run arms the next one.
type Scheduler struct {
	clock   clock.Clock
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	timers  map[string]clock.Timer
	stopped bool
}

func New(clk clock.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		clock:   clk,
		logger:  logger,
		timeout: time.Minute,
		timers:  make(map[string]clock.Timer),
	}
}

// AtMidnight runs job at every local midnight.
func (s *Scheduler) AtMidnight(name string, job Job) {
	s.arm(name, func() time.Duration {
		return clock.UntilNextMidnight(s.clock.Now())
	}, job)
}

// Every runs job each interval.
func (s *Scheduler) Every(name string, interval time.Duration, job Job) {
	s.arm(name, func() time.Duration { return interval }, job)
}

func (s *Scheduler) arm(name string, next func() time.Duration, job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	delay := next()
	s.timers[name] = s.clock.AfterFunc(delay, func() {
		s.run(name, job)
		s.arm(name, next, job)
	})
	s.logger.Debug("job scheduled", "job", name, "in", delay)
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := s.clock.Now()
	if err := job(ctx); err != nil {
		s.logger.Error("scheduled job failed", "job", name, "error", err)
		return
	}
	s.logger.Info("scheduled job finished", "job", name, "took", s.clock.Now().Sub(start))
}

// Stop cancels every pending run. Jobs already running finish normally.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for name, t := range s.timers {
		t.Stop()
		delete(s.timers, name)
	}
}
