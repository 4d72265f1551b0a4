package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/repository/cache"
)

const (
	KeyPopularTags = "tag:popular"

	// 逻辑过期时间, 物理 key 保留更久, 过期后先返回旧值再后台重建
	popularTagsLogicalTTL  = 5 * time.Minute
	popularTagsPhysicalTTL = 24 * time.Hour
)

type tagCache struct {
	client *redis.Client
}

var _ domain.TagCache = (*tagCache)(nil)

func NewTagCache(client *redis.Client) *tagCache {
	return &tagCache{client}
}

func (c *tagCache) GetPopular(ctx context.Context) ([]domain.Tag, bool, error) {
	data, err := c.client.Get(ctx, KeyPopularTags).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, false, err
	}

	var entry cache.Entry[[]domain.Tag]
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, err
	}
	return entry.Data, entry.Stale(), nil
}

func (c *tagCache) SetPopular(ctx context.Context, tags []domain.Tag) error {
	if tags == nil {
		tags = []domain.Tag{}
	}
	data, err := json.Marshal(cache.NewEntry(tags, popularTagsLogicalTTL))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, KeyPopularTags, data, popularTagsPhysicalTTL).Err()
}
