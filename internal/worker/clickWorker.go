package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/storage"
)

type ClickRepo interface {
	AppendClicks(context.Context, []storage.ClickEvent) (int, error)
}

// ClickConfig tunes the click pipeline. Zero fields take the defaults.
type ClickConfig struct {
	Buffer         int
	BatchSize      int
	FlushInterval  time.Duration
	EnqueueTimeout time.Duration
	WriteTimeout   time.Duration
}

func (c ClickConfig) withDefaults() ClickConfig {
	if c.Buffer <= 0 {
		c.Buffer = 1024
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 25
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = time.Second
	}
	if c.EnqueueTimeout <= 0 {
		c.EnqueueTimeout = 2 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 3 * time.Second
	}
	return c
}

// ClickWorker is the Click Recorder pipeline: redirects hand events to
// Dispatch and return at once, and Run writes them in batches.
type ClickWorker struct {
	in     chan storage.ClickEvent
	logger *zap.Logger
	repo   ClickRepo
	cfg    ClickConfig

	stopped  chan struct{}
	stopOnce sync.Once
}

func NewClickWorker(logger *zap.Logger, repo ClickRepo, cfg ClickConfig) *ClickWorker {
	cfg = cfg.withDefaults()

	return &ClickWorker{
		in:      make(chan storage.ClickEvent, cfg.Buffer),
		logger:  logger,
		repo:    repo,
		cfg:     cfg,
		stopped: make(chan struct{}),
	}
}

// Dispatch enqueues e without blocking the caller. When the buffer is full
// the send is retried in the background for EnqueueTimeout, then the event
// is dropped.
func (w *ClickWorker) Dispatch(e storage.ClickEvent) {
	select {
	case <-w.stopped:
		w.logger.Warn("click dropped, recorder stopped", zap.String("link_id", e.LinkID))
		return
	default:
	}

	select {
	case w.in <- e:
		return
	default:
	}

	go func() {
		timer := time.NewTimer(w.cfg.EnqueueTimeout)
		defer timer.Stop()

		select {
		case w.in <- e:
		case <-timer.C:
			w.logger.Warn("click dropped, queue full", zap.String("link_id", e.LinkID))
		case <-w.stopped:
			w.logger.Warn("click dropped, recorder stopped", zap.String("link_id", e.LinkID))
		}
	}()
}

// Run collects events and writes them when BatchSize is reached or every
// FlushInterval. When ctx is done it drains what is already queued, writes
// it and returns.
func (w *ClickWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]storage.ClickEvent, 0, w.cfg.BatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}

		wctx, cancel := context.WithTimeout(context.Background(), w.cfg.WriteTimeout)
		defer cancel()

		stored, err := w.repo.AppendClicks(wctx, batch)
		if err != nil {
			w.logger.Error("cannot store clicks", zap.Int("count", len(batch)), zap.Error(err))
		} else if dropped := len(batch) - stored; dropped > 0 {
			// the links were deleted after the redirect
			w.logger.Warn("clicks for vanished links dropped", zap.Int("count", dropped))
		} else {
			w.logger.Debug("clicks stored", zap.Int("count", stored))
		}

		batch = batch[:0]
	}

	for {
		select {
		case e := <-w.in:
			batch = append(batch, e)
			if len(batch) >= w.cfg.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			w.stopOnce.Do(func() { close(w.stopped) })
			for {
				select {
				case e := <-w.in:
					batch = append(batch, e)
				default:
					flush()
					w.logger.Info("click recorder stopped")
					return
				}
			}
		}
	}
}
