package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/conduit-feed/domain/mocks"
	"github.com/Guyuepp/conduit-feed/internal/repository"
)

func TestGuardedBloomPassesThrough(t *testing.T) {
	inner := new(mocks.BloomRepository)
	inner.On("Add", mock.Anything, "a").Return(nil).Once()
	inner.On("Exists", mock.Anything, "b").Return(false, nil).Once()

	b := repository.NewGuardedBloom(inner)
	require.NoError(t, b.Add(context.Background(), "a"))
	ok, err := b.Exists(context.Background(), "b")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, b.Degraded())
	inner.AssertExpectations(t)
}

func TestGuardedBloomRetriesAdd(t *testing.T) {
	inner := new(mocks.BloomRepository)
	inner.On("Add", mock.Anything, "a").Return(errors.New("timeout")).Once()
	inner.On("Add", mock.Anything, "a").Return(nil).Once()

	b := repository.NewGuardedBloom(inner)
	require.NoError(t, b.Add(context.Background(), "a"))
	assert.False(t, b.Degraded())
	inner.AssertNumberOfCalls(t, "Add", 2)
}

func TestGuardedBloomFailsOpenAfterLostWrite(t *testing.T) {
	inner := new(mocks.BloomRepository)
	inner.On("Add", mock.Anything, "new-slug").Return(errors.New("redis down"))

	b := repository.NewGuardedBloom(inner)
	assert.Error(t, b.Add(context.Background(), "new-slug"))
	assert.True(t, b.Degraded())
	inner.AssertNumberOfCalls(t, "Add", 3)

	ok, err := b.Exists(context.Background(), "new-slug")
	require.NoError(t, err)
	assert.True(t, ok)
	inner.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestGuardedBloomFailsOpenAfterBulkFailure(t *testing.T) {
	inner := new(mocks.BloomRepository)
	inner.On("BulkAdd", mock.Anything, []string{"x", "y"}).Return(errors.New("redis down")).Once()

	b := repository.NewGuardedBloom(inner)
	assert.Error(t, b.BulkAdd(context.Background(), []string{"x", "y"}))

	ok, err := b.Exists(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, ok)
}
