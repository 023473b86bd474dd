package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/pagination"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

// AnonymousTTL is how long links created without an owner stay resolvable.
const AnonymousTTL = 3 * 24 * time.Hour

// LinkRegistryStore is what the Link Registry needs from a backend.
type LinkRegistryStore interface {
	LinkStore
	PingContext(context.Context) error
}

// LinkPatch carries the fields a caller may change. Nil means unchanged.
type LinkPatch struct {
	ShortCode   *string
	OriginalURL *string
}

// LinkService is the Link Registry: creation through the Allocator, owner
// scoped reads and mutations, and short URL building.
type LinkService struct {
	store      LinkRegistryStore
	alloc      *Allocator
	namespaces *NamespaceService
	logger     *zap.Logger
	baseURL    string
	rootDomain string
	now        Clock
}

func NewLinkService(store LinkRegistryStore, alloc *Allocator, namespaces *NamespaceService, logger *zap.Logger, baseURL, rootDomain string, opts ...Option) *LinkService {
	o := applyOptions(opts)
	return &LinkService{
		store:      store,
		alloc:      alloc,
		namespaces: namespaces,
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		rootDomain: rootDomain,
		now:        o.clock,
	}
}

func (s *LinkService) PingContext(ctx context.Context) error {
	return s.store.PingContext(ctx)
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(field, raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return invalid(field, "must be an absolute URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid(field, "must use http or https")
	}
	return nil
}

// Create stores an owned link in the owner's current namespace. Owned links
// do not expire.
func (s *LinkService) Create(ctx context.Context, ownerID, originalURL, customAlias string) (*storage.Link, error) {
	if err := ValidateURL("original_url", originalURL); err != nil {
		return nil, err
	}

	ns, err := s.namespaces.namespaceOf(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("resolve owner namespace: %w", err)
	}

	l, err := s.alloc.Claim(ctx, storage.Link{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Namespace:   ns,
		OriginalURL: strings.TrimSpace(originalURL),
		CreatedAt:   s.now().UTC(),
	}, customAlias)
	if err != nil {
		return nil, err
	}

	s.logger.Info("link created",
		zap.String("link_id", l.ID),
		zap.String("owner_id", ownerID),
		zap.String("namespace", l.Namespace),
		zap.String("short_code", l.ShortCode),
	)
	return l, nil
}

// CreateAnonymous stores an ownerless link in the root namespace that
// expires AnonymousTTL after creation.
func (s *LinkService) CreateAnonymous(ctx context.Context, originalURL string) (*storage.Link, error) {
	if err := ValidateURL("long_url", originalURL); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	expires := now.Add(AnonymousTTL)

	l, err := s.alloc.Claim(ctx, storage.Link{
		ID:          uuid.NewString(),
		Namespace:   storage.RootNamespace,
		OriginalURL: strings.TrimSpace(originalURL),
		CreatedAt:   now,
		ExpiresAt:   &expires,
	}, "")
	if err != nil {
		return nil, err
	}

	s.logger.Info("anonymous link created", zap.String("link_id", l.ID), zap.String("short_code", l.ShortCode))
	return l, nil
}

// Get returns the live link bound to code in namespace. Expired links are
// reported as missing.
func (s *LinkService) Get(ctx context.Context, namespace, code string) (*storage.Link, error) {
	l, err := s.store.FindLink(ctx, namespace, code)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if l.Expired(s.now()) {
		return nil, ErrNotFound
	}
	return l, nil
}

// GetOwned returns the link with id if ownerID owns it.
func (s *LinkService) GetOwned(ctx context.Context, ownerID, id string) (*storage.Link, error) {
	l, err := s.store.FindLinkByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if l.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return l, nil
}

// Update changes the short code and/or target of an owned link. The id and
// click history are kept.
func (s *LinkService) Update(ctx context.Context, ownerID, id string, patch LinkPatch) (*storage.Link, error) {
	if patch.ShortCode == nil && patch.OriginalURL == nil {
		return nil, invalid("short_code", "nothing to update")
	}
	if patch.OriginalURL != nil {
		if err := ValidateURL("original_url", *patch.OriginalURL); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(*patch.OriginalURL)
		patch.OriginalURL = &trimmed
	}

	if _, err := s.GetOwned(ctx, ownerID, id); err != nil {
		return nil, err
	}

	l, err := s.alloc.Apply(ctx, id, storage.LinkUpdate{
		ShortCode:   patch.ShortCode,
		OriginalURL: patch.OriginalURL,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("link updated", zap.String("link_id", id), zap.String("short_code", l.ShortCode))
	return l, nil
}

// Delete removes an owned link and its clicks. A second delete of the same
// id reports ErrNotFound.
func (s *LinkService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.GetOwned(ctx, ownerID, id); err != nil {
		return err
	}

	err := s.store.DeleteLink(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}

	s.logger.Info("link deleted", zap.String("link_id", id), zap.String("owner_id", ownerID))
	return nil
}

// List pages through the owner's links, newest first, optionally filtered by
// a substring of the code or target.
func (s *LinkService) List(ctx context.Context, ownerID string, req pagination.Request) (*pagination.Page[storage.Link], error) {
	count := func(ctx context.Context, search string) (int, error) {
		return s.store.CountLinks(ctx, storage.LinkFilter{OwnerID: ownerID, Search: search})
	}
	fetch := func(ctx context.Context, search string, offset, limit int) ([]storage.Link, error) {
		return s.store.ListLinks(ctx, storage.LinkFilter{OwnerID: ownerID, Search: search}, offset, limit)
	}

	return pagination.Query(ctx, req, count, fetch)
}

// ShortURL is the externally visible URL of l. Subdomain links use
// <label>.<root domain> when a root domain is configured and the /s/<label>
// path otherwise. Orphaned links have none.
func (s *LinkService) ShortURL(l *storage.Link) string {
	switch {
	case l.Namespace == storage.RootNamespace:
		return s.baseURL + "/" + l.ShortCode
	case storage.IsOrphan(l.Namespace):
		return ""
	case s.rootDomain != "":
		scheme := "http"
		if u, err := url.Parse(s.baseURL); err == nil && u.Scheme != "" {
			scheme = u.Scheme
		}
		return scheme + "://" + l.Namespace + "." + s.rootDomain + "/" + l.ShortCode
	}

	return s.baseURL + "/s/" + l.Namespace + "/" + l.ShortCode
}
