package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ExpiryRepo interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Reaper periodically deletes links that the resolver already treats as
// expired. Running it is optional: resolution does not depend on it.
type Reaper struct {
	repo     ExpiryRepo
	logger   *zap.Logger
	interval time.Duration
	now      func() time.Time
}

func NewReaper(logger *zap.Logger, repo ExpiryRepo, interval time.Duration) *Reaper {
	return &Reaper{
		repo:     repo,
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// ReapOnce deletes everything expired at the current time.
func (r *Reaper) ReapOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	n, err := r.repo.DeleteExpired(ctx, r.now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.logger.Info("expired links reaped", zap.Int("count", n))
	}
	return n, nil
}

// Run reaps every interval until ctx is done. A non-positive interval
// disables the reaper.
func (r *Reaper) Run(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info("expiry reaper disabled")
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := r.ReapOnce(ctx); err != nil {
				r.logger.Error("cannot reap expired links", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}
