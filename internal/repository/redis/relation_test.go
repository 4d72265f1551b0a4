package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/conduit-feed/domain"
	rediscache "github.com/Guyuepp/conduit-feed/internal/repository/redis"
)

const ttlSeconds = int64(30 * 60)

func TestIsMemberBatch(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := rediscache.NewRelationCache(client)
	ctx := context.Background()

	mock.ExpectEvalSha(rediscache.IsMemberBatchScript().Hash(), []string{"relation:favorite:7"}, ttlSeconds, int64(1), int64(2), int64(3)).
		SetVal([]interface{}{int64(1), int64(0), int64(1)})

	res, err := cache.IsMemberBatch(ctx, domain.Favorite, 7, []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{1: true, 2: false, 3: true}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsMemberBatchMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := rediscache.NewRelationCache(client)

	mock.ExpectEvalSha(rediscache.IsMemberBatchScript().Hash(), []string{"relation:bookmark:7"}, ttlSeconds, int64(4)).
		RedisNil()

	_, err := cache.IsMemberBatch(context.Background(), domain.Bookmark, 7, []int64{4})
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsMemberBatchEmptyInput(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := rediscache.NewRelationCache(client)

	res, err := cache.IsMemberBatch(context.Background(), domain.Favorite, 7, nil)
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := rediscache.NewRelationCache(client)
	rel := domain.Relation{Kind: domain.Follow, SourceID: 3, TargetID: 9}

	mock.ExpectEvalSha(rediscache.ApplyScript().Hash(), []string{"relation:follow:3"}, int(domain.Remove), int64(9), ttlSeconds).
		SetVal(int64(-1))
	require.NoError(t, cache.Apply(context.Background(), rel, domain.Remove))

	mock.ExpectEvalSha(rediscache.ApplyScript().Hash(), []string{"relation:follow:3"}, int(domain.Add), int64(9), ttlSeconds).
		SetErr(errors.New("connection refused"))
	assert.Error(t, cache.Apply(context.Background(), rel, domain.Add))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadAndInvalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := rediscache.NewRelationCache(client)
	ctx := context.Background()

	mock.ExpectTxPipeline()
	mock.ExpectDel("relation:favorite:5").SetVal(1)
	mock.ExpectSAdd("relation:favorite:5", 0, int64(11), int64(12)).SetVal(3)
	mock.ExpectExpire("relation:favorite:5", 30*time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()
	require.NoError(t, cache.Load(ctx, domain.Favorite, 5, []int64{11, 12}))

	mock.ExpectDel("relation:favorite:5").SetVal(1)
	require.NoError(t, cache.Invalidate(ctx, domain.Favorite, 5))

	assert.NoError(t, mock.ExpectationsWereMet())
}
