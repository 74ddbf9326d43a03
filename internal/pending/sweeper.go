package pending

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/clinickart/backend/internal/domain"
	"github.com/clinickart/backend/internal/metrics"
	"github.com/clinickart/backend/pkg/logger"

	"go.uber.org/zap"
)

// StatsSnapshot is the pending count as of the last sweep.
type StatsSnapshot struct {
	Stats domain.PendingStats
	At    time.Time
}

// Sweeper periodically purges expired entries and refreshes the pending gauges.
type Sweeper struct {
	store    Store
	interval time.Duration
	now      func() time.Time

	last atomic.Pointer[StatsSnapshot]
}

func NewSweeper(store Store, interval time.Duration) *Sweeper {
	return &Sweeper{store: store, interval: interval, now: time.Now}
}

// Run sweeps once right away and then every interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.SweepOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

func (s *Sweeper) SweepOnce(ctx context.Context) SweepResult {
	res, err := s.store.Sweep(ctx)
	if err != nil {
		logger.Warn("pending sweep interrupted", zap.Error(err))
	}

	metrics.PendingSwept.WithLabelValues("registration").Add(float64(res.Registrations))
	metrics.PendingSwept.WithLabelValues("otp").Add(float64(res.OTPs))

	if res.Registrations > 0 || res.OTPs > 0 {
		logger.Info("pending sweep done",
			zap.Int("registrations", res.Registrations),
			zap.Int("otps", res.OTPs),
		)
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		logger.Warn("pending stats failed", zap.Error(err))
		return res
	}
	metrics.PendingRegistrations.Set(float64(stats.Registrations))
	metrics.PendingOTPs.Set(float64(stats.OTPs))
	s.last.Store(&StatsSnapshot{Stats: stats, At: s.now()})

	return res
}

// LastStats returns the snapshot taken by the most recent successful sweep.
func (s *Sweeper) LastStats() (StatsSnapshot, bool) {
	snap := s.last.Load()
	if snap == nil {
		return StatsSnapshot{}, false
	}
	return *snap, true
}
