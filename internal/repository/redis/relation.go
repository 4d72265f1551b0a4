package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/conduit-feed/domain"
)

const (
	// KeyRelationSet 某个用户在某种关系下的目标集合, 如 relation:favorite:42
	KeyRelationSet = "relation:%s:%d"

	relationSetTTL = 30 * time.Minute
)

// 只读取已加载的集合, 未加载时返回 nil 让调用方回源
var isMemberBatchScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 0 then
		return nil
	end

	redis.call('EXPIRE', KEYS[1], ARGV[1])

	local results = {}
	for i = 2, #ARGV do
		results[i - 1] = redis.call('SISMEMBER', KEYS[1], ARGV[i])
	end
	return results
`)

// ARGV = {方向(1 添加 / -1 删除), 目标ID, TTL}
var applyScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 0 then
		return -1 -- 未缓存, 无需更新
	end

	if ARGV[1] == '1' then
		redis.call('SADD', KEYS[1], ARGV[2])
	else
		redis.call('SREM', KEYS[1], ARGV[2])
	end
	redis.call('EXPIRE', KEYS[1], ARGV[3])
	return 1
`)

type relationCache struct {
	client *redis.Client
}

var _ domain.RelationCache = (*relationCache)(nil)

func NewRelationCache(client *redis.Client) *relationCache {
	return &relationCache{client}
}

func relationKey(kind domain.RelationKind, sourceID int64) string {
	return fmt.Sprintf(KeyRelationSet, kind, sourceID)
}

func (c *relationCache) IsMemberBatch(ctx context.Context, kind domain.RelationKind, sourceID int64, targetIDs []int64) (map[int64]bool, error) {
	if len(targetIDs) == 0 {
		return map[int64]bool{}, nil
	}
	args := make([]any, 0, len(targetIDs)+1)
	args = append(args, int64(relationSetTTL.Seconds()))
	for _, id := range targetIDs {
		args = append(args, id)
	}

	result, err := isMemberBatchScript.Run(ctx, c.client, []string{relationKey(kind, sourceID)}, args...).Slice()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	if len(result) != len(targetIDs) {
		return nil, fmt.Errorf("relation cache: got %d results for %d targets", len(result), len(targetIDs))
	}

	resMap := make(map[int64]bool, len(targetIDs))
	for i, val := range result {
		n, _ := val.(int64)
		resMap[targetIDs[i]] = n == 1
	}
	return resMap, nil
}

// Load 用数据库中的完整集合覆盖缓存. 空集合也会写入一个占位成员, 避免反复回源
func (c *relationCache) Load(ctx context.Context, kind domain.RelationKind, sourceID int64, targetIDs []int64) error {
	key := relationKey(kind, sourceID)
	members := make([]any, 0, len(targetIDs)+1)
	members = append(members, 0) // 占位, id 从 1 开始
	for _, id := range targetIDs {
		members = append(members, id)
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, relationSetTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *relationCache) Apply(ctx context.Context, rel domain.Relation, dir domain.Direction) error {
	args := []any{int(dir), rel.TargetID, int64(relationSetTTL.Seconds())}
	return applyScript.Run(ctx, c.client, []string{relationKey(rel.Kind, rel.SourceID)}, args...).Err()
}

func (c *relationCache) Invalidate(ctx context.Context, kind domain.RelationKind, sourceID int64) error {
	return c.client.Del(ctx, relationKey(kind, sourceID)).Err()
}
