package service

import (
	"context"
	"errors"

	"github.com/atinyakov/shortlink-registry/internal/storage"
)

// RecentClicks is the size of the recent-click feed in a summary.
const RecentClicks = 50

type AnalyticsStore interface {
	FindLinkByID(ctx context.Context, id string) (*storage.Link, error)
	ClickSummary(ctx context.Context, linkID string, recent int) (*storage.ClickSummary, error)
	GetStats(context.Context) (*storage.Stats, error)
}

// Analytics reads click aggregates. It never locks out writers, so a summary
// may miss clicks that are still queued.
type Analytics struct {
	store AnalyticsStore
}

func NewAnalytics(store AnalyticsStore) *Analytics {
	return &Analytics{store: store}
}

// Summary aggregates the clicks of a link owned by ownerID.
func (a *Analytics) Summary(ctx context.Context, ownerID, linkID string) (*storage.ClickSummary, error) {
	l, err := a.store.FindLinkByID(ctx, linkID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if l.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	summary, err := a.store.ClickSummary(ctx, linkID, RecentClicks)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return summary, err
}

func (a *Analytics) GlobalStats(ctx context.Context) (*storage.Stats, error) {
	return a.store.GetStats(ctx)
}
