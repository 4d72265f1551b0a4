package domain

import (
	"context"
	"time"
)

// Article is representing the Article data struct
type Article struct {
	ID             int64     // Unique identifier
	Slug           string    // URL key derived from the title, unique
	Title          string    // Article title
	Description    string    // Short summary
	Body           string    // Article body content
	TagList        []string  // Ordered tag list as submitted
	Image          string    // Cover image URL
	Author         Profile   // Author information, viewer relative
	FavoritesCount int64     // Number of users who favorited the article
	CreatedAt      time.Time // Creation timestamp
	UpdatedAt      time.Time // Last update timestamp

	// Viewer relative flags, false when there is no viewer
	Favorited  bool
	Bookmarked bool
}

// ArticleInput carries the writable fields of an article. Nil fields are left
// untouched by updates.
type ArticleInput struct {
	Title       *string
	Description *string
	Body        *string
	TagList     []string
	Image       *string
}

// ArticleRepository defines the contract for article data persistence
type ArticleRepository interface {
	// FetchPlan runs a feed plan and reads window.Fetch() rows at most.
	FetchPlan(ctx context.Context, plan FeedPlan, window PageWindow) ([]Article, error)

	// GetByID retrieves a single article by its ID.
	// Returns ErrNotFound if the article doesn't exist.
	GetByID(ctx context.Context, id int64) (Article, error)

	// GetBySlug retrieves a single article by its slug.
	// Returns ErrNotFound if the article doesn't exist.
	GetBySlug(ctx context.Context, slug string) (Article, error)

	// Store creates a new article and backfills ID and timestamps.
	// Returns ErrConflict if the slug is taken.
	Store(ctx context.Context, a *Article) error

	// Update writes the editable fields of an existing article.
	Update(ctx context.Context, a *Article) error

	// Delete removes an article together with its comments.
	// Returns ErrNotFound if not exists
	Delete(ctx context.Context, id int64) error

	// FetchSlugs pages through articles by id, filling only ID and Slug.
	// Used to warm the slug bloom filter.
	FetchSlugs(ctx context.Context, afterID int64, limit int64) ([]Article, error)
}

type ArticleUsecase interface {
	ListFeed(ctx context.Context, filters []FeedFilter, order FeedOrder, page PageRequest, viewerID int64) (FeedPage, error)
	ListFollowing(ctx context.Context, viewerID int64, page PageRequest) (FeedPage, error)
	ListBookmarked(ctx context.Context, viewerID int64, page PageRequest) (FeedPage, error)
	GetBySlug(ctx context.Context, slug string, viewerID int64) (Article, error)
	Create(ctx context.Context, authorID int64, in ArticleInput) (Article, error)
	Update(ctx context.Context, slug string, userID int64, in ArticleInput) (Article, error)
	Delete(ctx context.Context, slug string, userID int64) (Article, error)
	ToggleFavorite(ctx context.Context, viewerID int64, slug string, add bool) (Article, error)
	ToggleBookmark(ctx context.Context, viewerID int64, slug string, add bool) (Article, error)
	PopularTags(ctx context.Context) ([]string, error)
	InitBloomFilter(ctx context.Context) error
}
