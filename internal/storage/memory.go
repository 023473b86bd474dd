package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

type linkKey struct {
	namespace string
	code      string
}

// MemoryStorage keeps every record in process memory. One mutex guards all
// maps so that claims (alias, label) are check-and-insert under a single lock.
type MemoryStorage struct {
	mu sync.RWMutex

	users      map[string]User
	subdomains map[string]Subdomain // owner id -> subdomain
	labels     map[string]string    // label -> owner id
	links      map[string]*Link     // link id -> link
	codes      map[linkKey]string   // (namespace, code) -> link id
	clicks     map[string][]ClickEvent
}

func CreateMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		users:      make(map[string]User),
		subdomains: make(map[string]Subdomain),
		labels:     make(map[string]string),
		links:      make(map[string]*Link),
		codes:      make(map[linkKey]string),
		clicks:     make(map[string][]ClickEvent),
	}, nil
}

func (m *MemoryStorage) EnsureUser(_ context.Context, u User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.users[u.ID]; ok {
		return &existing, nil
	}
	for _, other := range m.users {
		if u.Email != "" && other.Email == u.Email {
			return nil, ErrConflict
		}
	}

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	m.users[u.ID] = u

	return &u, nil
}

func (m *MemoryStorage) FindUser(_ context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStorage) UpdateUserName(_ context.Context, id, name string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Name = name
	m.users[id] = u

	return &u, nil
}

// DeleteUser removes the user together with the owned subdomain, links and
// their click events.
func (m *MemoryStorage) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}

	if sd, ok := m.subdomains[id]; ok {
		delete(m.labels, sd.Label)
		delete(m.subdomains, id)
	}
	for linkID, l := range m.links {
		if l.OwnerID == id {
			m.deleteLinkLocked(linkID)
		}
	}
	delete(m.users, id)

	return nil
}

func (m *MemoryStorage) CountUsers(_ context.Context, search string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.filterUsersLocked(search)), nil
}

func (m *MemoryStorage) ListUsers(_ context.Context, search string, offset, limit int) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return window(m.filterUsersLocked(search), offset, limit), nil
}

// filterUsersLocked returns matching users, newest first.
func (m *MemoryStorage) filterUsersLocked(search string) []User {
	res := make([]User, 0, len(m.users))
	for _, u := range m.users {
		if search == "" || containsFold(u.Name, search) || containsFold(u.Email, search) {
			res = append(res, u)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	return res
}

// BindSubdomain claims sd.Label for sd.OwnerID. A label held by another owner
// is a conflict. When the owner already holds a different label, the old one
// is released and the owner's links move to the new label.
func (m *MemoryStorage) BindSubdomain(_ context.Context, sd Subdomain) (*Subdomain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if holder, ok := m.labels[sd.Label]; ok {
		if holder != sd.OwnerID {
			return nil, ErrConflict
		}
		current := m.subdomains[sd.OwnerID]
		return &current, nil
	}

	if sd.CreatedAt.IsZero() {
		sd.CreatedAt = time.Now().UTC()
	}

	if old, ok := m.subdomains[sd.OwnerID]; ok {
		delete(m.labels, old.Label)
		for _, l := range m.links {
			if l.OwnerID == sd.OwnerID && l.Namespace == old.Label {
				delete(m.codes, linkKey{l.Namespace, l.ShortCode})
				l.Namespace = sd.Label
				m.codes[linkKey{l.Namespace, l.ShortCode}] = l.ID
			}
		}
	}

	m.labels[sd.Label] = sd.OwnerID
	m.subdomains[sd.OwnerID] = sd

	return &sd, nil
}

// UnbindSubdomain releases the owner's label and orphans the links scoped to it.
func (m *MemoryStorage) UnbindSubdomain(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sd, ok := m.subdomains[ownerID]
	if !ok {
		return ErrNotFound
	}

	for _, l := range m.links {
		if l.OwnerID == ownerID && l.Namespace == sd.Label {
			delete(m.codes, linkKey{l.Namespace, l.ShortCode})
			l.Namespace = OrphanNamespace(l.ID)
			m.codes[linkKey{l.Namespace, l.ShortCode}] = l.ID
		}
	}
	delete(m.labels, sd.Label)
	delete(m.subdomains, ownerID)

	return nil
}

func (m *MemoryStorage) FindSubdomainByOwner(_ context.Context, ownerID string) (*Subdomain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sd, ok := m.subdomains[ownerID]
	if !ok {
		return nil, ErrNotFound
	}
	return &sd, nil
}

func (m *MemoryStorage) FindSubdomainByLabel(_ context.Context, label string) (*Subdomain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owner, ok := m.labels[label]
	if !ok {
		return nil, ErrNotFound
	}
	sd := m.subdomains[owner]
	return &sd, nil
}

// CreateLink inserts l if (namespace, short code) is free.
func (m *MemoryStorage) CreateLink(_ context.Context, l Link) (*Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := linkKey{l.Namespace, l.ShortCode}
	if _, taken := m.codes[key]; taken {
		return nil, ErrConflict
	}
	if _, taken := m.links[l.ID]; taken {
		return nil, ErrConflict
	}

	stored := l
	m.links[l.ID] = &stored
	m.codes[key] = l.ID

	res := stored
	return &res, nil
}

func (m *MemoryStorage) FindLink(_ context.Context, namespace, code string) (*Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.codes[linkKey{namespace, code}]
	if !ok {
		return nil, ErrNotFound
	}
	res := *m.links[id]
	return &res, nil
}

func (m *MemoryStorage) FindLinkByID(_ context.Context, id string) (*Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.links[id]
	if !ok {
		return nil, ErrNotFound
	}
	res := *l
	return &res, nil
}

// UpdateLink applies upd to the link. A rename releases the old code and
// claims the new one under the same lock; on conflict nothing changes.
func (m *MemoryStorage) UpdateLink(_ context.Context, id string, upd LinkUpdate) (*Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.links[id]
	if !ok {
		return nil, ErrNotFound
	}

	if upd.ShortCode != nil && *upd.ShortCode != l.ShortCode {
		next := linkKey{l.Namespace, *upd.ShortCode}
		if _, taken := m.codes[next]; taken {
			return nil, ErrConflict
		}
		delete(m.codes, linkKey{l.Namespace, l.ShortCode})
		m.codes[next] = l.ID
		l.ShortCode = *upd.ShortCode
	}
	if upd.OriginalURL != nil {
		l.OriginalURL = *upd.OriginalURL
	}

	res := *l
	return &res, nil
}

func (m *MemoryStorage) DeleteLink(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.links[id]; !ok {
		return ErrNotFound
	}
	m.deleteLinkLocked(id)

	return nil
}

func (m *MemoryStorage) deleteLinkLocked(id string) {
	l := m.links[id]
	delete(m.codes, linkKey{l.Namespace, l.ShortCode})
	delete(m.links, id)
	delete(m.clicks, id)
}

func (m *MemoryStorage) CountLinks(_ context.Context, f LinkFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.filterLinksLocked(f)), nil
}

func (m *MemoryStorage) ListLinks(_ context.Context, f LinkFilter, offset, limit int) ([]Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return window(m.filterLinksLocked(f), offset, limit), nil
}

func (m *MemoryStorage) filterLinksLocked(f LinkFilter) []Link {
	res := make([]Link, 0)
	for _, l := range m.links {
		if f.OwnerID != "" && l.OwnerID != f.OwnerID {
			continue
		}
		if f.Search != "" && !containsFold(l.ShortCode, f.Search) && !containsFold(l.OriginalURL, f.Search) {
			continue
		}
		res = append(res, *l)
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	return res
}

// DeleteExpired removes every link whose expiry is at or before now.
func (m *MemoryStorage) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, l := range m.links {
		if l.Expired(now) {
			m.deleteLinkLocked(id)
			n++
		}
	}
	return n, nil
}

// AppendClicks stores the events whose link still exists and bumps the cached
// click counters. Events for vanished links are skipped. It returns the
// number of stored events.
func (m *MemoryStorage) AppendClicks(_ context.Context, events []ClickEvent) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, e := range events {
		l, ok := m.links[e.LinkID]
		if !ok {
			continue
		}
		m.clicks[e.LinkID] = append(m.clicks[e.LinkID], e)
		l.Clicks++
		n++
	}
	return n, nil
}

func (m *MemoryStorage) ClickSummary(_ context.Context, linkID string, recent int) (*ClickSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.links[linkID]; !ok {
		return nil, ErrNotFound
	}

	events := m.clicks[linkID]
	counts := make(map[string]int64)
	for _, e := range events {
		counts[e.Browser]++
	}

	summary := &ClickSummary{
		TotalClicks: int64(len(events)),
		Browsers:    make([]BrowserCount, 0, len(counts)),
		Recent:      make([]ClickEvent, 0, recent),
	}
	for b, total := range counts {
		summary.Browsers = append(summary.Browsers, BrowserCount{Browser: b, Total: total})
	}
	SortBrowsers(summary.Browsers)

	sorted := make([]ClickEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ClickedAt.After(sorted[j].ClickedAt)
	})
	summary.Recent = append(summary.Recent, window(sorted, 0, recent)...)

	return summary, nil
}

func (m *MemoryStorage) GetStats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return &Stats{Users: len(m.users), Links: len(m.links)}, nil
}

func (m *MemoryStorage) PingContext(_ context.Context) error {
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) || limit <= 0 {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
