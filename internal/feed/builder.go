package feed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Guyuepp/conduit-feed/domain"
)

// Builder turns a Query into a FeedPlan, resolving usernames and membership
// sets on the way. Unresolvable references produce an empty plan, not an error.
type Builder struct {
	users     domain.UserRepository
	relations domain.RelationRepository
}

func NewBuilder(users domain.UserRepository, relations domain.RelationRepository) *Builder {
	return &Builder{
		users:     users,
		relations: relations,
	}
}

// Build composes the plan of q for window. The window cursor becomes the
// created-before predicate.
func (b *Builder) Build(ctx context.Context, q Query, window domain.PageWindow) (domain.FeedPlan, error) {
	plan := domain.FeedPlan{
		Order:         q.Order(),
		CreatedBefore: window.Cursor,
	}

	for _, f := range q.Filters() {
		var err error
		switch v := f.(type) {
		case domain.TagFilter:
			plan.TagContains = strings.ToLower(strings.TrimSpace(v.Tag))
		case domain.SearchFilter:
			plan.Search = strings.ToLower(strings.TrimSpace(v.Text))
		case domain.AuthorFilter:
			err = b.constrainAuthor(ctx, &plan, v.Username)
		case domain.FavoritedByFilter:
			err = b.constrainFavorited(ctx, &plan, v.Username)
		case domain.FollowedByFilter:
			err = b.constrainFollowed(ctx, &plan, v.UserID)
		case domain.BookmarkedByFilter:
			err = b.constrainArticles(ctx, &plan, domain.Bookmark, v.UserID)
		}
		if err != nil {
			return domain.FeedPlan{}, err
		}
		if plan.Empty {
			return emptyPlan(plan.Order), nil
		}
	}

	return plan, nil
}

func emptyPlan(order domain.FeedOrder) domain.FeedPlan {
	return domain.FeedPlan{Empty: true, Order: order}
}

// resolve returns ok=false when username does not exist.
func (b *Builder) resolve(ctx context.Context, username string) (domain.User, bool, error) {
	u, err := b.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("resolve user %q: %w", username, err)
	}
	return u, true, nil
}

func (b *Builder) constrainAuthor(ctx context.Context, plan *domain.FeedPlan, username string) error {
	u, ok, err := b.resolve(ctx, username)
	if err != nil {
		return err
	}
	if !ok {
		plan.Empty = true
		return nil
	}
	plan.AuthorIDs = intersect(plan.AuthorIDs, []int64{u.ID})
	plan.Empty = len(plan.AuthorIDs) == 0
	return nil
}

func (b *Builder) constrainFavorited(ctx context.Context, plan *domain.FeedPlan, username string) error {
	u, ok, err := b.resolve(ctx, username)
	if err != nil {
		return err
	}
	if !ok {
		plan.Empty = true
		return nil
	}
	return b.constrainArticles(ctx, plan, domain.Favorite, u.ID)
}

func (b *Builder) constrainArticles(ctx context.Context, plan *domain.FeedPlan, kind domain.RelationKind, userID int64) error {
	ids, err := b.relations.Targets(ctx, kind, userID)
	if err != nil {
		return fmt.Errorf("load %s set of user %d: %w", kind, userID, err)
	}
	if len(ids) == 0 {
		plan.Empty = true
		return nil
	}
	plan.ArticleIDs = intersect(plan.ArticleIDs, ids)
	plan.Empty = len(plan.ArticleIDs) == 0
	return nil
}

func (b *Builder) constrainFollowed(ctx context.Context, plan *domain.FeedPlan, userID int64) error {
	ids, err := b.relations.Targets(ctx, domain.Follow, userID)
	if err != nil {
		return fmt.Errorf("load follow set of user %d: %w", userID, err)
	}
	if len(ids) == 0 {
		plan.Empty = true
		return nil
	}
	plan.AuthorIDs = intersect(plan.AuthorIDs, ids)
	plan.Empty = len(plan.AuthorIDs) == 0
	return nil
}

// intersect treats a nil cur as "everything". The result is sorted and
// never nil, so an empty intersection stays distinguishable from no constraint.
func intersect(cur, next []int64) []int64 {
	out := make([]int64, 0, len(next))
	if cur == nil {
		out = append(out, next...)
	} else {
		in := make(map[int64]struct{}, len(cur))
		for _, id := range cur {
			in[id] = struct{}{}
		}
		for _, id := range next {
			if _, ok := in[id]; ok {
				out = append(out, id)
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
