package feed

import (
	"context"

	"github.com/Guyuepp/conduit-feed/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 20
)

// NewWindow normalizes a page request. The limit defaults to DefaultLimit and
// is clamped to [1, MaxLimit]. With a cursor the offset is always zero: cursor
// and page index are alternative strategies and the cursor wins.
func NewWindow(p domain.PageRequest) domain.PageWindow {
	limit := p.Limit
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 1:
		limit = 1
	case limit > MaxLimit:
		limit = MaxLimit
	}

	w := domain.PageWindow{Limit: limit}
	if p.Cursor != nil {
		c := *p.Cursor
		w.Cursor = &c
		return w
	}
	w.Offset = max(p.Page-1, 0) * limit
	return w
}

// Trim cuts the look-ahead row. hasMore is true iff the store returned
// exactly window.Fetch() rows.
func Trim[T any](rows []T, w domain.PageWindow) (items []T, hasMore bool) {
	if len(rows) > w.Limit {
		return rows[:w.Limit], len(rows) == w.Fetch()
	}
	return rows, false
}

// Paginate runs fetch with w and trims the result.
func Paginate[T any](ctx context.Context, w domain.PageWindow, fetch func(context.Context, domain.PageWindow) ([]T, error)) ([]T, bool, error) {
	rows, err := fetch(ctx, w)
	if err != nil {
		return nil, false, err
	}
	items, hasMore := Trim(rows, w)
	return items, hasMore, nil
}
