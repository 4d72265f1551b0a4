// Package viewer computes the viewer relative flags of listings.
package viewer

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/metrics"
)

// Membership answers "which of these targets does the viewer hold in set kind",
// reading through the relation cache. Cache failures fall back to the store.
type Membership struct {
	relations domain.RelationRepository
	cache     domain.RelationCache
}

// NewMembership creates a Membership. cache may be nil.
func NewMembership(relations domain.RelationRepository, cache domain.RelationCache) *Membership {
	return &Membership{
		relations: relations,
		cache:     cache,
	}
}

// Check returns a flag for every target. Without a viewer every flag is false.
func (m *Membership) Check(ctx context.Context, kind domain.RelationKind, viewerID int64, targets []int64) (map[int64]bool, error) {
	res := make(map[int64]bool, len(targets))
	if viewerID <= 0 || len(targets) == 0 {
		for _, id := range targets {
			res[id] = false
		}
		return res, nil
	}

	if m.cache == nil {
		return m.relations.ContainsBatch(ctx, kind, viewerID, targets)
	}

	hits, err := m.cache.IsMemberBatch(ctx, kind, viewerID, targets)
	switch {
	case err == nil:
		metrics.CacheResults.WithLabelValues("relation", "hit").Inc()
		return hits, nil
	case errors.Is(err, domain.ErrCacheMiss):
		metrics.CacheResults.WithLabelValues("relation", "miss").Inc()
		return m.loadAndCheck(ctx, kind, viewerID, targets)
	default:
		metrics.CacheResults.WithLabelValues("relation", "error").Inc()
		logrus.Warnf("relation cache error, kind: %s, viewer: %d, err: %v", kind, viewerID, err)
		return m.relations.ContainsBatch(ctx, kind, viewerID, targets)
	}
}

// loadAndCheck 回源加载完整集合并写入缓存
func (m *Membership) loadAndCheck(ctx context.Context, kind domain.RelationKind, viewerID int64, targets []int64) (map[int64]bool, error) {
	all, err := m.relations.Targets(ctx, kind, viewerID)
	if err != nil {
		return nil, err
	}
	if err := m.cache.Load(ctx, kind, viewerID, all); err != nil {
		logrus.Warnf("failed to load relation cache, kind: %s, viewer: %d, err: %v", kind, viewerID, err)
	}

	set := make(map[int64]struct{}, len(all))
	for _, id := range all {
		set[id] = struct{}{}
	}
	res := make(map[int64]bool, len(targets))
	for _, id := range targets {
		_, res[id] = set[id]
	}
	return res, nil
}
