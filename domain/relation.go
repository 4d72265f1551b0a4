package domain

import (
	"context"
	"time"
)

// RelationKind identifies one of the membership sets kept between users and
// articles or between users.
type RelationKind string

const (
	// Favorite links a user (source) to an article (target).
	Favorite RelationKind = "favorite"
	// Bookmark links a user (source) to an article (target).
	Bookmark RelationKind = "bookmark"
	// Follow links a follower (source) to the followed user (target).
	Follow RelationKind = "follow"
)

// Valid reports whether k is one of the known relation kinds.
func (k RelationKind) Valid() bool {
	switch k {
	case Favorite, Bookmark, Follow:
		return true
	default:
		return false
	}
}

// Relation is a single (source, target) pair of a membership set.
type Relation struct {
	Kind      RelationKind
	SourceID  int64
	TargetID  int64
	CreatedAt time.Time
}

// Direction tells a toggle whether the pair should end up present or absent.
type Direction int8

const (
	Add    Direction = 1
	Remove Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Add:
		return "ADD"
	case Remove:
		return "REMOVE"
	default:
		return "UNKNOWN"
	}
}

// DirectionOf converts the boolean flag used by the toggle endpoints.
func DirectionOf(add bool) Direction {
	if add {
		return Add
	}
	return Remove
}

// RelationSide selects which end of a pair a counter belongs to.
type RelationSide int8

const (
	SourceSide RelationSide = iota
	TargetSide
)

// Counter names a denormalized counter kept next to an entity.
type Counter string

const (
	CounterFavorites Counter = "favorites_count" // Article.FavoritesCount
	CounterFollowers Counter = "followers"       // User.Followers
	CounterFollowee  Counter = "followee"        // User.Followee
)

// CounterBinding ties a counter to the side of a membership set it summarizes:
// the counter of the row at Side equals the number of pairs that row takes part in.
type CounterBinding struct {
	Counter Counter
	Side    RelationSide
}

// Bindings returns the counters maintained for kind. Bookmarks carry none.
func (k RelationKind) Bindings() []CounterBinding {
	switch k {
	case Favorite:
		return []CounterBinding{{Counter: CounterFavorites, Side: TargetSide}}
	case Follow:
		return []CounterBinding{
			{Counter: CounterFollowers, Side: TargetSide},
			{Counter: CounterFollowee, Side: SourceSide},
		}
	default:
		return nil
	}
}

// Pick returns the id of rel on side s.
func (s RelationSide) Pick(rel Relation) int64 {
	if s == SourceSide {
		return rel.SourceID
	}
	return rel.TargetID
}

// RelationRepository defines the contract for the membership sets.
// Mutations are idempotent: inserting a present pair or deleting an absent
// pair reports false and does not fail.
type RelationRepository interface {
	// Insert adds the pair and reports whether a row was actually created.
	Insert(ctx context.Context, rel Relation) (bool, error)

	// Delete removes the pair and reports whether a row was actually removed.
	Delete(ctx context.Context, rel Relation) (bool, error)

	Contains(ctx context.Context, rel Relation) (bool, error)

	// ContainsBatch tests many targets of the same source at once.
	ContainsBatch(ctx context.Context, kind RelationKind, sourceID int64, targetIDs []int64) (map[int64]bool, error)

	// Targets returns the full target id set of a source.
	Targets(ctx context.Context, kind RelationKind, sourceID int64) ([]int64, error)

	// Count returns how many sources point at the target.
	Count(ctx context.Context, kind RelationKind, targetID int64) (int64, error)

	// DeleteByTarget drops every pair pointing at the target, used when articles are deleted.
	DeleteByTarget(ctx context.Context, kind RelationKind, targetID int64) error
}

// CounterRepository mutates and re-derives denormalized counters.
type CounterRepository interface {
	// Add applies delta to the counter of row id. A decrement that would make
	// the counter negative is not applied and reported as false.
	Add(ctx context.Context, binding CounterBinding, id int64, delta int64) (bool, error)

	// Recount re-derives the counter of every row from the membership set of kind.
	Recount(ctx context.Context, kind RelationKind, binding CounterBinding) (int64, error)
}

// RelationCache keeps viewer membership sets hot for hydration.
type RelationCache interface {
	// IsMemberBatch returns ErrCacheMiss when the set of sourceID is not loaded.
	IsMemberBatch(ctx context.Context, kind RelationKind, sourceID int64, targetIDs []int64) (map[int64]bool, error)

	// Load replaces the cached set of sourceID with targetIDs.
	Load(ctx context.Context, kind RelationKind, sourceID int64, targetIDs []int64) error

	// Apply mutates a cached set only if it is already loaded.
	Apply(ctx context.Context, rel Relation, dir Direction) error

	Invalidate(ctx context.Context, kind RelationKind, sourceID int64) error
}

// Transactor runs fn inside a single store transaction. Repositories called
// with the ctx handed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CounterUsecase is the single entry point for toggling membership together
// with its denormalized counters.
type CounterUsecase interface {
	Toggle(ctx context.Context, rel Relation, dir Direction) (bool, error)
	Reconcile(ctx context.Context, kind RelationKind) error
}
