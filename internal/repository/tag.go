package repository

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/conduit-feed/domain"
)

// tagRepository 协调层，协调缓存和数据库
type tagRepository struct {
	db           domain.TagRepository
	cache        domain.TagCache
	rebuildGroup singleflight.Group
}

var _ domain.TagRepository = (*tagRepository)(nil)

// NewTagRepository 创建协调层repository
func NewTagRepository(db domain.TagRepository, cache domain.TagCache) *tagRepository {
	return &tagRepository{
		db:    db,
		cache: cache,
	}
}

// Upsert 只写数据库, 热门标签由逻辑过期自然刷新
func (r *tagRepository) Upsert(ctx context.Context, tags []string) error {
	return r.db.Upsert(ctx, tags)
}

// Popular 热门标签, 只有默认数量走缓存
func (r *tagRepository) Popular(ctx context.Context, limit int) ([]domain.Tag, error) {
	if limit != domain.PopularTagLimit {
		return r.db.Popular(ctx, limit)
	}

	tags, expired, err := r.cache.GetPopular(ctx)
	if err == nil {
		if expired {
			go r.rebuild(context.Background())
		}
		return tags, nil
	}

	// 缓存未命中，使用singleflight避免缓存击穿
	result, err, _ := r.rebuildGroup.Do("popular", func() (any, error) {
		return r.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Tag), nil
}

func (r *tagRepository) load(ctx context.Context) ([]domain.Tag, error) {
	tags, err := r.db.Popular(ctx, domain.PopularTagLimit)
	if err != nil {
		return nil, err
	}
	if err := r.cache.SetPopular(ctx, tags); err != nil {
		logrus.Warnf("failed to set popular tags cache: %v", err)
	}
	return tags, nil
}

// rebuild 异步重建热门标签缓存
func (r *tagRepository) rebuild(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err, _ := r.rebuildGroup.Do("popular", func() (any, error) {
		return r.load(ctx)
	})
	if err != nil {
		logrus.Errorf("rebuild popular tags cache failed: %v", err)
	}
}
