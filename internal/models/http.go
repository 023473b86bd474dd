// Package models defines the request and response bodies exchanged with the
// HTTP API consumers.
package models

import (
	"time"

	"github.com/atinyakov/shortlink-registry/internal/pagination"
	"github.com/atinyakov/shortlink-registry/internal/storage"
)

// ShortenRequest is the anonymous creation body of POST /long-url.
type ShortenRequest struct {
	LongURL string `json:"long_url"`
}

// ShortenResponse carries the externally visible short URL.
type ShortenResponse struct {
	ShortURL string `json:"short_url"`
}

// CreateLinkRequest is the body of POST /links. CustomAlias is optional;
// without it a code is generated.
type CreateLinkRequest struct {
	OriginalURL string `json:"original_url"`
	CustomAlias string `json:"custom_alias,omitempty"`
}

// UpdateLinkRequest is the body of PUT /links/{id}. Absent fields are left
// unchanged.
type UpdateLinkRequest struct {
	ShortCode   *string `json:"short_code,omitempty"`
	OriginalURL *string `json:"original_url,omitempty"`
}

// Link is the public view of a link record.
type Link struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id,omitempty"`
	Subdomain   string     `json:"subdomain,omitempty"`
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	ShortURL    string     `json:"short_url"`
	Clicks      int64      `json:"clicks"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// NewLink builds the public view. Orphaned links have no subdomain and no
// short URL.
func NewLink(l *storage.Link, shortURL string) Link {
	out := Link{
		ID:          l.ID,
		UserID:      l.OwnerID,
		ShortCode:   l.ShortCode,
		OriginalURL: l.OriginalURL,
		ShortURL:    shortURL,
		Clicks:      l.Clicks,
		CreatedAt:   l.CreatedAt,
		ExpiresAt:   l.ExpiresAt,
	}
	if !storage.IsOrphan(l.Namespace) {
		out.Subdomain = l.Namespace
	}
	return out
}

type CreateLinkResponse struct {
	Data     Link   `json:"data"`
	ShortURL string `json:"short_url"`
}

type LinkResponse struct {
	Data Link `json:"data"`
}

type LinkListResponse struct {
	Data       []Link          `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// DomainRequest is the body of POST /domain.
type DomainRequest struct {
	Subdomain string `json:"subdomain"`
}

// DomainResponse reports the caller's subdomain, null when none is bound.
type DomainResponse struct {
	Subdomain *string `json:"subdomain"`
}

type AdminStatsResponse struct {
	TotalUsers int             `json:"total_users"`
	TotalLinks int             `json:"total_links"`
	Users      []storage.User  `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}

type UsersResponse struct {
	Users      []storage.User  `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}

// UserRequest is the body of PUT /user.
type UserRequest struct {
	Name string `json:"name"`
}

type UserResponse struct {
	Data storage.User `json:"data"`
}

// MessageResponse is used for plain acknowledgements and errors. Field names
// the rejected input on validation errors.
type MessageResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
