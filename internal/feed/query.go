package feed

import (
	"fmt"
	"strings"

	"github.com/Guyuepp/conduit-feed/domain"
)

// Query is a validated combination of feed filters and an order.
// The zero value lists everything newest first.
type Query struct {
	order   domain.FeedOrder
	filters []domain.FeedFilter
}

// NewQuery validates filters and order. An empty order means OrderDesc.
// Each filter kind may appear at most once, text filters must not be blank
// and user filters need a positive id.
func NewQuery(order domain.FeedOrder, filters ...domain.FeedFilter) (Query, error) {
	if order == "" {
		order = domain.OrderDesc
	}
	if !order.Valid() {
		return Query{}, fmt.Errorf("order %q: %w", order, domain.ErrBadParamInput)
	}

	seen := make(map[domain.FilterKind]bool, len(filters))
	out := make([]domain.FeedFilter, 0, len(filters))
	for _, f := range filters {
		if f == nil {
			continue
		}
		if seen[f.Kind()] {
			return Query{}, fmt.Errorf("duplicate %s filter: %w", f.Kind(), domain.ErrBadParamInput)
		}
		seen[f.Kind()] = true

		if err := validateFilter(f); err != nil {
			return Query{}, err
		}
		out = append(out, f)
	}

	return Query{order: order, filters: out}, nil
}

// MustQuery is NewQuery for filter sets built by the service itself.
func MustQuery(order domain.FeedOrder, filters ...domain.FeedFilter) Query {
	q, err := NewQuery(order, filters...)
	if err != nil {
		panic(err)
	}
	return q
}

func (q Query) Order() domain.FeedOrder {
	if q.order == "" {
		return domain.OrderDesc
	}
	return q.order
}

func (q Query) Filters() []domain.FeedFilter {
	return q.filters
}

func validateFilter(f domain.FeedFilter) error {
	blank := func(s string) bool { return strings.TrimSpace(s) == "" }

	switch v := f.(type) {
	case domain.TagFilter:
		if blank(v.Tag) {
			return fmt.Errorf("empty tag filter: %w", domain.ErrBadParamInput)
		}
	case domain.AuthorFilter:
		if blank(v.Username) {
			return fmt.Errorf("empty author filter: %w", domain.ErrBadParamInput)
		}
	case domain.FavoritedByFilter:
		if blank(v.Username) {
			return fmt.Errorf("empty favorited filter: %w", domain.ErrBadParamInput)
		}
	case domain.SearchFilter:
		if blank(v.Text) {
			return fmt.Errorf("empty search filter: %w", domain.ErrBadParamInput)
		}
	case domain.FollowedByFilter:
		if v.UserID <= 0 {
			return fmt.Errorf("followed_by filter needs a user: %w", domain.ErrBadParamInput)
		}
	case domain.BookmarkedByFilter:
		if v.UserID <= 0 {
			return fmt.Errorf("bookmarked_by filter needs a user: %w", domain.ErrBadParamInput)
		}
	default:
		return fmt.Errorf("unsupported filter %T: %w", f, domain.ErrBadParamInput)
	}
	return nil
}
