// Package pagination implements windowed, searchable paging over record sets
// whose size changes concurrently. Nothing here is cached between calls.
package pagination

import (
	"context"
)

const (
	// WindowSize is the number of page links shown around the current page.
	WindowSize     = 5
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Request is what a caller asks for. Out of range values are clamped, never
// rejected.
type Request struct {
	Page    int
	PerPage int
	Search  string
}

// Page is one window of a collection plus the cursor describing it.
type Page[T any] struct {
	Items       []T
	Total       int
	PerPage     int
	CurrentPage int
	LastPage    int
	From        int
	To          int
}

// Meta is the serialized cursor.
type Meta struct {
	CurrentPage int     `json:"current_page"`
	LastPage    int     `json:"last_page"`
	PerPage     int     `json:"per_page"`
	Total       int     `json:"total"`
	From        int     `json:"from"`
	To          int     `json:"to"`
	PrevPageURL *string `json:"prev_page_url"`
	NextPageURL *string `json:"next_page_url"`
	Pages       []int   `json:"pages"`
}

// Query counts the filtered set, clamps the requested page into range and
// fetches that window. Total always reflects the filter.
func Query[T any](
	ctx context.Context,
	req Request,
	count func(ctx context.Context, search string) (int, error),
	fetch func(ctx context.Context, search string, offset, limit int) ([]T, error),
) (*Page[T], error) {
	perPage := ClampPerPage(req.PerPage)

	total, err := count(ctx, req.Search)
	if err != nil {
		return nil, err
	}

	last := LastPage(total, perPage)
	current := clamp(req.Page, 1, last)
	offset := (current - 1) * perPage

	items, err := fetch(ctx, req.Search, offset, perPage)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0)
	}

	p := &Page[T]{
		Items:       items,
		Total:       total,
		PerPage:     perPage,
		CurrentPage: current,
		LastPage:    last,
	}
	if len(items) > 0 {
		p.From = offset + 1
		p.To = offset + len(items)
	}

	return p, nil
}

// Meta describes the page. link builds the URL of another page; a nil link
// leaves the prev/next URLs empty.
func (p *Page[T]) Meta(link func(page int) string) Meta {
	m := Meta{
		CurrentPage: p.CurrentPage,
		LastPage:    p.LastPage,
		PerPage:     p.PerPage,
		Total:       p.Total,
		From:        p.From,
		To:          p.To,
		Pages:       Window(p.CurrentPage, p.LastPage, WindowSize),
	}

	if link != nil {
		if p.CurrentPage > 1 {
			prev := link(p.CurrentPage - 1)
			m.PrevPageURL = &prev
		}
		if p.CurrentPage < p.LastPage {
			next := link(p.CurrentPage + 1)
			m.NextPageURL = &next
		}
	}

	return m
}

// Window returns the page numbers to display: all pages when they fit,
// otherwise size pages centered on current, pinned to the first or last
// pages near the edges.
func Window(current, last, size int) []int {
	if last < 1 || size < 1 {
		return []int{}
	}
	current = clamp(current, 1, last)

	if last <= size {
		return seq(1, last)
	}

	half := size / 2
	switch {
	case current <= half+1:
		return seq(1, size)
	case current >= last-half:
		return seq(last-size+1, last)
	}

	start := current - half
	return seq(start, start+size-1)
}

// ClampPerPage maps a requested page size into [1, MaxPerPage], using the
// default for anything below 1.
func ClampPerPage(perPage int) int {
	if perPage < 1 {
		return DefaultPerPage
	}
	if perPage > MaxPerPage {
		return MaxPerPage
	}
	return perPage
}

// LastPage is never below 1, so an empty collection still has one page.
func LastPage(total, perPage int) int {
	if total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
