package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/config"
)

type countingCompleter struct {
	calls int64
}

func (c *countingCompleter) CompletePastEvents(ctx context.Context, now time.Time) (int64, error) {
	atomic.AddInt64(&c.calls, 1)
	return 0, nil
}

func TestSchedulerSweepsImmediatelyAndStops(t *testing.T) {
	completer := &countingCompleter{}
	cfg := config.SchedulerConfig{Enabled: true, SweepInterval: 10 * time.Millisecond}

	s := NewScheduler(completer, cfg, zap.NewNop())
	s.Start()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&completer.calls) >= 2
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	after := atomic.LoadInt64(&completer.calls)

	// No sweeps after Stop returns.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt64(&completer.calls))
}

func TestSchedulerDefaultsInterval(t *testing.T) {
	s := NewScheduler(&countingCompleter{}, config.SchedulerConfig{}, zap.NewNop())
	assert.Equal(t, defaultSweepInterval, s.interval)
}
