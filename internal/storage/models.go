package storage

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrConflict is returned when a unique key (alias in a namespace,
	// subdomain label, user email) is already claimed.
	ErrConflict = errors.New("already exists")
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")
)

// RootNamespace is the namespace key of links served from the bare root domain.
const RootNamespace = ""

// OrphanNamespace returns the tombstone namespace a link is moved to when its
// subdomain is released. The leading "!" can never appear in a valid label,
// so orphaned links are unreachable and their old codes are free again.
func OrphanNamespace(linkID string) string {
	return "!" + linkID
}

// IsOrphan reports whether the namespace is a tombstone.
func IsOrphan(namespace string) bool {
	return strings.HasPrefix(namespace, "!")
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Subdomain struct {
	OwnerID   string    `json:"owner_id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

type Link struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"user_id"`
	Namespace   string     `json:"namespace"`
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	Clicks      int64      `json:"clicks"`
}

// Expired reports whether the link is past its expiry at now. Both the
// resolver and the reaper use this predicate.
func (l *Link) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !now.Before(*l.ExpiresAt)
}

type ClickEvent struct {
	ID        string    `json:"id"`
	LinkID    string    `json:"link_id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	Browser   string    `json:"browser"`
	Platform  string    `json:"platform"`
	ClickedAt time.Time `json:"clicked_at"`
}

type BrowserCount struct {
	Browser string `json:"browser"`
	Total   int64  `json:"total"`
}

// ClickSummary is a point-in-time aggregate over one link's click log.
type ClickSummary struct {
	TotalClicks int64          `json:"total_clicks"`
	Browsers    []BrowserCount `json:"browsers"`
	Recent      []ClickEvent   `json:"recent"`
}

type Stats struct {
	Users int `json:"total_users"`
	Links int `json:"total_links"`
}

// LinkFilter narrows link listings. Empty fields do not filter.
type LinkFilter struct {
	OwnerID string
	Search  string
}

// LinkUpdate carries the mutable link fields. Nil fields are left unchanged.
type LinkUpdate struct {
	ShortCode   *string
	OriginalURL *string
}
