package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/domain/mocks"
	"github.com/Guyuepp/conduit-feed/internal/repository"
)

var popular = []domain.Tag{{ID: 1, Tag: "go", Count: 9}, {ID: 2, Tag: "db", Count: 4}}

func TestPopularCacheHit(t *testing.T) {
	db := new(mocks.TagRepository)
	cache := new(mocks.TagCache)
	cache.On("GetPopular", mock.Anything).Return(popular, false, nil).Once()

	tags, err := repository.NewTagRepository(db, cache).Popular(context.Background(), domain.PopularTagLimit)
	require.NoError(t, err)
	assert.Equal(t, popular, tags)
	db.AssertNotCalled(t, "Popular", mock.Anything, mock.Anything)
}

func TestPopularExpiredServesStaleAndRebuilds(t *testing.T) {
	db := new(mocks.TagRepository)
	cache := new(mocks.TagCache)
	stale := popular[:1]
	rebuilt := make(chan struct{})

	cache.On("GetPopular", mock.Anything).Return(stale, true, nil).Once()
	db.On("Popular", mock.Anything, domain.PopularTagLimit).Return(popular, nil).Once()
	cache.On("SetPopular", mock.Anything, popular).Return(nil).Run(func(mock.Arguments) {
		close(rebuilt)
	}).Once()

	tags, err := repository.NewTagRepository(db, cache).Popular(context.Background(), domain.PopularTagLimit)
	require.NoError(t, err)
	assert.Equal(t, stale, tags)

	select {
	case <-rebuilt:
	case <-time.After(2 * time.Second):
		t.Fatal("cache was not rebuilt")
	}
}

func TestPopularMissLoadsOnce(t *testing.T) {
	db := new(mocks.TagRepository)
	cache := new(mocks.TagCache)
	release := make(chan struct{})

	cache.On("GetPopular", mock.Anything).Return(nil, false, domain.ErrCacheMiss)
	db.On("Popular", mock.Anything, domain.PopularTagLimit).Return(popular, nil).
		WaitUntil(release)
	cache.On("SetPopular", mock.Anything, popular).Return(errors.New("readonly replica"))

	repo := repository.NewTagRepository(db, cache)
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tags, err := repo.Popular(context.Background(), domain.PopularTagLimit)
			assert.NoError(t, err)
			assert.Equal(t, popular, tags)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	db.AssertNumberOfCalls(t, "Popular", 1)
}

func TestPopularOtherLimitBypassesCache(t *testing.T) {
	db := new(mocks.TagRepository)
	cache := new(mocks.TagCache)
	db.On("Popular", mock.Anything, 3).Return(popular, nil).Once()

	_, err := repository.NewTagRepository(db, cache).Popular(context.Background(), 3)
	require.NoError(t, err)
	cache.AssertNotCalled(t, "GetPopular", mock.Anything)
}

func TestUpsertGoesToStore(t *testing.T) {
	db := new(mocks.TagRepository)
	db.On("Upsert", mock.Anything, []string{"go"}).Return(nil).Once()

	require.NoError(t, repository.NewTagRepository(db, new(mocks.TagCache)).Upsert(context.Background(), []string{"go"}))
	db.AssertExpectations(t)
}
