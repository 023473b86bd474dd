package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/atinyakov/shortlink-registry/internal/storage"
)

const lookupTimeout = 5 * time.Second

// Resolver is the redirect hot path. Concurrent lookups of the same code are
// coalesced into one store read, and clicks are handed to a dispatcher
// without waiting for them to be stored.
type Resolver struct {
	links      LinkStore
	namespaces NamespaceIface
	clicks     ClickDispatcher
	logger     *zap.Logger
	now        Clock

	group singleflight.Group
}

func NewResolver(links LinkStore, namespaces NamespaceIface, clicks ClickDispatcher, logger *zap.Logger, opts ...Option) *Resolver {
	o := applyOptions(opts)
	return &Resolver{
		links:      links,
		namespaces: namespaces,
		clicks:     clicks,
		logger:     logger,
		now:        o.clock,
	}
}

// Resolve returns the target of code in namespace and records the visit.
// Missing, expired and orphaned links all yield ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, namespace, code string, v Visit) (string, error) {
	ownerID, err := r.namespaces.Resolve(ctx, namespace)
	if err != nil {
		return "", err
	}

	l, err := r.lookup(ctx, NormalizeLabel(namespace), code)
	if err != nil {
		return "", err
	}

	now := r.now()
	if l.Expired(now) {
		return "", ErrNotFound
	}
	if namespace != storage.RootNamespace && l.OwnerID != ownerID {
		return "", ErrNotFound
	}

	if v.At.IsZero() {
		v.At = now
	}
	r.clicks.Dispatch(NewClickEvent(l.ID, v))

	return l.OriginalURL, nil
}

func (r *Resolver) lookup(ctx context.Context, namespace, code string) (*storage.Link, error) {
	// the shared read outlives any single caller's cancellation
	ch := r.group.DoChan(namespace+"/"+code, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()
		return r.links.FindLink(sctx, namespace, code)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}

	err := res.Err
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if res.Shared {
		r.logger.Debug("lookup coalesced", zap.String("namespace", namespace), zap.String("short_code", code))
	}

	// callers sharing a result must not alias the same record
	l := *res.Val.(*storage.Link)
	return &l, nil
}
