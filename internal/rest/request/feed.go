package request

import (
	"fmt"
	"strings"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/repository"
)

// FeedQuery is the query string of article listings.
type FeedQuery struct {
	Tag       string `form:"tag"`
	Author    string `form:"author"`
	Favorited string `form:"favorited"`
	Search    string `form:"search"`
	Order     string `form:"order" binding:"omitempty,oneof=ASC DESC TOP asc desc top"`
	Limit     int    `form:"limit"`
	Page      int    `form:"p"`
	Cursor    string `form:"cursor"`
}

// Filters returns one filter per non-blank parameter.
func (q *FeedQuery) Filters() []domain.FeedFilter {
	var res []domain.FeedFilter
	if s := strings.TrimSpace(q.Tag); s != "" {
		res = append(res, domain.TagFilter{Tag: s})
	}
	if s := strings.TrimSpace(q.Author); s != "" {
		res = append(res, domain.AuthorFilter{Username: s})
	}
	if s := strings.TrimSpace(q.Favorited); s != "" {
		res = append(res, domain.FavoritedByFilter{Username: s})
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		res = append(res, domain.SearchFilter{Text: s})
	}
	return res
}

func (q *FeedQuery) FeedOrder() domain.FeedOrder {
	return domain.FeedOrder(strings.ToUpper(q.Order))
}

// PageRequest decodes the cursor, if any.
func (q *FeedQuery) PageRequest() (domain.PageRequest, error) {
	p := domain.PageRequest{Limit: q.Limit, Page: q.Page}
	if q.Cursor != "" {
		t, err := repository.DecodeCursor(q.Cursor)
		if err != nil {
			return domain.PageRequest{}, fmt.Errorf("cursor %q: %w", q.Cursor, domain.ErrBadParamInput)
		}
		p.Cursor = &t
	}
	return p, nil
}
