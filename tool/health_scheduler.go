package tool

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

const defaultHealthInterval = time.Minute

// HealthChecker verifies the news provider endpoint is reachable.
type HealthChecker interface {
	CheckReachable(ctx context.Context) error
}

// HealthSchedulerConfig controls background reachability probing.
type HealthSchedulerConfig struct {
	Checker  HealthChecker
	Endpoint string
	Interval time.Duration
	Logger   *slog.Logger
}

// HealthScheduler periodically probes the provider endpoint and reports
// the outcome through the observer and the logger. It holds no state the
// request path depends on; a failed probe never blocks invocations.
type HealthScheduler struct {
	checker  HealthChecker
	endpoint string
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHealthScheduler creates a health scheduler.
func NewHealthScheduler(cfg HealthSchedulerConfig) (*HealthScheduler, error) {
	if cfg.Checker == nil {
		return nil, errors.New("tool: health checker is nil")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultHealthInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &HealthScheduler{
		checker:  cfg.Checker,
		endpoint: cfg.Endpoint,
		interval: cfg.Interval,
		logger:   cfg.Logger,
	}, nil
}

// Start begins scheduler execution. Calling Start on a running scheduler
// is a no-op.
func (s *HealthScheduler) Start(ctx context.Context) error {
	if s == nil {
		return errors.New("tool: health scheduler is nil")
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return nil
	}
	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		s.RunOnce(loopCtx)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				s.RunOnce(loopCtx)
			}
		}
	}()

	return nil
}

// Stop terminates scheduler execution and waits for the loop to exit.
func (s *HealthScheduler) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce performs one probe.
func (s *HealthScheduler) RunOnce(ctx context.Context) {
	if s == nil || s.checker == nil {
		return
	}

	start := time.Now()
	err := s.checker.CheckReachable(ctx)
	emitHealthObservation(HealthObservation{
		Endpoint:   s.endpoint,
		Reachable:  err == nil,
		DurationMS: time.Since(start).Milliseconds(),
	})
	if err != nil {
		s.logger.Warn("news provider unreachable", "endpoint", s.endpoint, "error", err)
	}
}
