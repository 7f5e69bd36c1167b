package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Backend names accepted in Config.Backend.
const (
	BackendCron = "cron"
	BackendLoop = "loop"
)

// Job is the work the scheduler fires on each interval.
type Job func(ctx context.Context)

// Config holds scheduler settings.
type Config struct {
	// Interval between fires.
	Interval time.Duration
	// MisfireGrace is how late a fire may be and still execute. A fire
	// later than this is dropped, not backfilled.
	MisfireGrace time.Duration
	// Backend selects "cron" or "loop". Anything else falls back to the
	// cooperative loop with a warning.
	Backend string
}

// Scheduler fires a job on a fixed cadence with at-most-one concurrent
// execution. It runs either on a cron backend or on a cooperative
// sleep-loop, and always fires once immediately at startup.
type Scheduler struct {
	cfg    Config
	job    Job
	logger *zap.Logger

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	done     chan struct{}
	expected time.Time

	inFlight atomic.Bool
	ticks    sync.WaitGroup
}

func New(cfg Config, job Job, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{cfg: cfg, job: job, logger: logger}
}

// Start launches the scheduler. It is an error to start a running scheduler
// or one with no job or a non-positive interval; backend problems are not
// fatal and degrade to the cooperative loop.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	if s.job == nil {
		return fmt.Errorf("scheduler job is required")
	}
	if s.cfg.Interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.expected = time.Now().Add(s.cfg.Interval)
	s.running = true

	backend := s.cfg.Backend
	if backend == "" {
		backend = BackendCron
	}

	switch backend {
	case BackendCron:
		s.startCron(ctx)
	case BackendLoop:
		s.startLoop(ctx)
	default:
		s.logger.Warn("scheduler backend unavailable, falling back to loop",
			zap.String("backend", backend))
		s.startLoop(ctx)
	}

	// fire once at startup without waiting for the first interval
	go s.runOnce(ctx, time.Now())

	s.logger.Info("scheduler started",
		zap.String("backend", backend),
		zap.Duration("interval", s.cfg.Interval),
		zap.Duration("misfire_grace", s.cfg.MisfireGrace),
	)
	return nil
}

func (s *Scheduler) startCron(ctx context.Context) {
	c := cron.New()
	c.Schedule(cron.Every(s.cfg.Interval), cron.FuncJob(func() {
		s.fire(ctx)
	}))
	c.Start()

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		close(s.done)
	}()
}

func (s *Scheduler) startLoop(ctx context.Context) {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.fire(ctx)
			}
		}
	}()
}

// fire applies the misfire check, then runs the job once.
func (s *Scheduler) fire(ctx context.Context) {
	now := time.Now()

	s.mu.Lock()
	lateness := now.Sub(s.expected)
	s.expected = now.Add(s.cfg.Interval)
	s.mu.Unlock()

	if s.cfg.MisfireGrace > 0 && lateness > s.cfg.MisfireGrace {
		s.logger.Warn("fire past misfire grace, dropping",
			zap.Duration("lateness", lateness),
			zap.Duration("grace", s.cfg.MisfireGrace),
		)
		return
	}

	s.runOnce(ctx, now)
}

// runOnce executes the job under the single-flight guard. An overlapping
// fire is skipped, not queued.
func (s *Scheduler) runOnce(ctx context.Context, firedAt time.Time) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Warn("previous tick still running, skipping this fire",
			zap.Time("fired_at", firedAt))
		return
	}
	s.ticks.Add(1)
	defer s.ticks.Done()
	defer s.inFlight.Store(false)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tick panicked", zap.Any("panic", r))
		}
	}()

	start := time.Now()
	s.job(ctx)
	s.logger.Debug("tick finished", zap.Duration("elapsed", time.Since(start)))
}

// Stop cancels the schedule, lets an in-flight tick finish, and waits for
// the backend to wind down. It is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()
	<-done
	s.ticks.Wait()
	s.logger.Info("scheduler stopped")
}

// IsRunning reports whether the scheduler is started and not yet stopped.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
