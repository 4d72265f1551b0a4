package domain

import "context"

// PopularTagLimit is how many tags PopularTags returns.
const PopularTagLimit = 10

// Tag is a distinct tag and the number of times it was used.
// Count is only ever incremented: deleting or editing articles does not lower it.
type Tag struct {
	ID    int64
	Tag   string
	Count int64
}

// TagRepository is the tag ledger.
type TagRepository interface {
	// Upsert adds one usage per occurrence in tags, creating missing tags.
	Upsert(ctx context.Context, tags []string) error
	Popular(ctx context.Context, limit int) ([]Tag, error)
}

// TagCache caches the popular tag list.
type TagCache interface {
	// GetPopular returns ErrCacheMiss when nothing is cached. expired is true
	// when the cached value is past its logical expiry and should be rebuilt.
	GetPopular(ctx context.Context) (tags []Tag, expired bool, err error)
	SetPopular(ctx context.Context, tags []Tag) error
}
