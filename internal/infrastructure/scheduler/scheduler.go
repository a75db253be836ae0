package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/config"
)

const defaultSweepInterval = time.Minute

// EventCompleter flips upcoming events whose end time has passed to
// completed. The event repository satisfies it.
type EventCompleter interface {
	CompletePastEvents(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler periodically sweeps the events table so expired events settle
// into the completed state without waiting for a request to touch them.
type Scheduler struct {
	events   EventCompleter
	interval time.Duration
	logger   *zap.Logger

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewScheduler creates a new lifecycle sweep scheduler.
func NewScheduler(events EventCompleter, cfg config.SchedulerConfig, logger *zap.Logger) *Scheduler {
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Scheduler{
		events:   events,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Start launches the sweep loop. One sweep runs immediately so a restart
// catches up without waiting a full interval.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.sweep()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
	s.logger.Info("lifecycle scheduler started", zap.Duration("interval", s.interval))
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
	s.logger.Info("lifecycle scheduler stopped")
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	completed, err := s.events.CompletePastEvents(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("lifecycle sweep failed", zap.Error(err))
		return
	}
	if completed > 0 {
		s.logger.Info("events completed by sweep", zap.Int64("count", completed))
	}
}
