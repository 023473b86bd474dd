package service

import (
	"context"
	"time"

	"github.com/atinyakov/shortlink-registry/internal/pagination"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

type UserStore interface {
	EnsureUser(context.Context, storage.User) (*storage.User, error)
	FindUser(context.Context, string) (*storage.User, error)
	UpdateUserName(ctx context.Context, id, name string) (*storage.User, error)
	DeleteUser(context.Context, string) error
	CountUsers(ctx context.Context, search string) (int, error)
	ListUsers(ctx context.Context, search string, offset, limit int) ([]storage.User, error)
}

type NamespaceStore interface {
	BindSubdomain(context.Context, storage.Subdomain) (*storage.Subdomain, error)
	UnbindSubdomain(ctx context.Context, ownerID string) error
	FindSubdomainByOwner(ctx context.Context, ownerID string) (*storage.Subdomain, error)
	FindSubdomainByLabel(ctx context.Context, label string) (*storage.Subdomain, error)
}

type LinkStore interface {
	CreateLink(context.Context, storage.Link) (*storage.Link, error)
	FindLink(ctx context.Context, namespace, code string) (*storage.Link, error)
	FindLinkByID(ctx context.Context, id string) (*storage.Link, error)
	UpdateLink(ctx context.Context, id string, upd storage.LinkUpdate) (*storage.Link, error)
	DeleteLink(ctx context.Context, id string) error
	CountLinks(context.Context, storage.LinkFilter) (int, error)
	ListLinks(ctx context.Context, f storage.LinkFilter, offset, limit int) ([]storage.Link, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type ClickStore interface {
	AppendClicks(context.Context, []storage.ClickEvent) (int, error)
	ClickSummary(ctx context.Context, linkID string, recent int) (*storage.ClickSummary, error)
}

// Storage is implemented by every backend: memory, file journal and SQL.
type Storage interface {
	UserStore
	NamespaceStore
	LinkStore
	ClickStore
	GetStats(context.Context) (*storage.Stats, error)
	PingContext(context.Context) error
	Close() error
}

// LinkServiceIface is the Link Registry as seen by the transports.
type LinkServiceIface interface {
	Create(ctx context.Context, ownerID, originalURL, customAlias string) (*storage.Link, error)
	CreateAnonymous(ctx context.Context, originalURL string) (*storage.Link, error)
	GetOwned(ctx context.Context, ownerID, id string) (*storage.Link, error)
	Update(ctx context.Context, ownerID, id string, patch LinkPatch) (*storage.Link, error)
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, req pagination.Request) (*pagination.Page[storage.Link], error)
	ShortURL(l *storage.Link) string
	PingContext(context.Context) error
}

// NamespaceIface is the Namespace Store as seen by the transports.
type NamespaceIface interface {
	Bind(ctx context.Context, ownerID, label string) (*storage.Subdomain, error)
	Unbind(ctx context.Context, ownerID string) error
	Current(ctx context.Context, ownerID string) (*storage.Subdomain, error)
	Resolve(ctx context.Context, label string) (string, error)
}

// ResolverIface is the redirect hot path.
type ResolverIface interface {
	Resolve(ctx context.Context, namespace, code string, v Visit) (string, error)
}

type AnalyticsIface interface {
	Summary(ctx context.Context, ownerID, linkID string) (*storage.ClickSummary, error)
	GlobalStats(ctx context.Context) (*storage.Stats, error)
}

type AdminIface interface {
	Users(ctx context.Context, req pagination.Request) (*pagination.Page[storage.User], error)
}

type UserIface interface {
	Get(ctx context.Context, id string) (*storage.User, error)
	Rename(ctx context.Context, id, name string) (*storage.User, error)
	Delete(ctx context.Context, id string) error
}

// ClickDispatcher accepts click events without waiting for them to be stored.
type ClickDispatcher interface {
	Dispatch(storage.ClickEvent)
}
