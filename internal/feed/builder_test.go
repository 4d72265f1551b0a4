package feed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/domain/mocks"
	"github.com/Guyuepp/conduit-feed/internal/feed"
)

func newBuilder() (*feed.Builder, *mocks.UserRepository, *mocks.RelationRepository) {
	users := new(mocks.UserRepository)
	relations := new(mocks.RelationRepository)
	return feed.NewBuilder(users, relations), users, relations
}

func TestBuildPlainListing(t *testing.T) {
	b, users, relations := newBuilder()
	cursor := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	w := feed.NewWindow(domain.PageRequest{Cursor: &cursor})

	plan, err := b.Build(context.Background(), feed.MustQuery(domain.OrderAsc), w)
	require.NoError(t, err)
	assert.False(t, plan.Empty)
	assert.Equal(t, domain.OrderAsc, plan.Order)
	assert.Nil(t, plan.AuthorIDs)
	assert.Nil(t, plan.ArticleIDs)
	require.NotNil(t, plan.CreatedBefore)
	assert.True(t, cursor.Equal(*plan.CreatedBefore))

	users.AssertExpectations(t)
	relations.AssertExpectations(t)
}

func TestBuildLowercasesTextFilters(t *testing.T) {
	b, _, _ := newBuilder()

	plan, err := b.Build(context.Background(),
		feed.MustQuery("", domain.TagFilter{Tag: " GoLang "}, domain.SearchFilter{Text: "Clean Arch"}),
		feed.NewWindow(domain.PageRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "golang", plan.TagContains)
	assert.Equal(t, "clean arch", plan.Search)
	assert.Nil(t, plan.CreatedBefore)
}

func TestBuildUnknownAuthorShortCircuits(t *testing.T) {
	b, users, relations := newBuilder()
	users.On("GetByUsername", mock.Anything, "ghost").Return(domain.User{}, domain.ErrNotFound).Once()

	plan, err := b.Build(context.Background(),
		feed.MustQuery(domain.OrderTop, domain.AuthorFilter{Username: "ghost"}, domain.FavoritedByFilter{Username: "alice"}),
		feed.NewWindow(domain.PageRequest{}))
	require.NoError(t, err)
	assert.True(t, plan.Empty)
	assert.Equal(t, domain.OrderTop, plan.Order)

	users.AssertExpectations(t)
	relations.AssertNotCalled(t, "Targets", mock.Anything, mock.Anything, mock.Anything)
}

func TestBuildFavoritedBy(t *testing.T) {
	b, users, relations := newBuilder()
	users.On("GetByUsername", mock.Anything, "alice").Return(domain.User{ID: 7, Username: "alice"}, nil).Once()
	relations.On("Targets", mock.Anything, domain.Favorite, int64(7)).Return([]int64{9, 3, 5}, nil).Once()

	plan, err := b.Build(context.Background(),
		feed.MustQuery("", domain.FavoritedByFilter{Username: "alice"}),
		feed.NewWindow(domain.PageRequest{}))
	require.NoError(t, err)
	assert.False(t, plan.Empty)
	assert.Equal(t, []int64{3, 5, 9}, plan.ArticleIDs)

	users.AssertExpectations(t)
	relations.AssertExpectations(t)
}

func TestBuildEmptyFavoriteSetShortCircuits(t *testing.T) {
	b, users, relations := newBuilder()
	users.On("GetByUsername", mock.Anything, "alice").Return(domain.User{ID: 7}, nil).Once()
	relations.On("Targets", mock.Anything, domain.Favorite, int64(7)).Return([]int64{}, nil).Once()

	plan, err := b.Build(context.Background(),
		feed.MustQuery("", domain.FavoritedByFilter{Username: "alice"}),
		feed.NewWindow(domain.PageRequest{}))
	require.NoError(t, err)
	assert.True(t, plan.Empty)
}

func TestBuildIntersectsArticleSets(t *testing.T) {
	b, users, relations := newBuilder()
	users.On("GetByUsername", mock.Anything, "alice").Return(domain.User{ID: 7}, nil).Once()
	relations.On("Targets", mock.Anything, domain.Favorite, int64(7)).Return([]int64{1, 2, 3}, nil).Once()
	relations.On("Targets", mock.Anything, domain.Bookmark, int64(8)).Return([]int64{2, 3, 4}, nil).Once()

	plan, err := b.Build(context.Background(),
		feed.MustQuery("", domain.FavoritedByFilter{Username: "alice"}, domain.BookmarkedByFilter{UserID: 8}),
		feed.NewWindow(domain.PageRequest{}))
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, plan.ArticleIDs)
}

func TestBuildDisjointSetsShortCircuit(t *testing.T) {
	b, users, relations := newBuilder()
	users.On("GetByUsername", mock.Anything, "alice").Return(domain.User{ID: 7}, nil).Once()
	relations.On("Targets", mock.Anything, domain.Follow, int64(8)).Return([]int64{2, 3}, nil).Once()

	plan, err := b.Build(context.Background(),
		feed.MustQuery("", domain.AuthorFilter{Username: "alice"}, domain.FollowedByFilter{UserID: 8}),
		feed.NewWindow(domain.PageRequest{}))
	require.NoError(t, err)
	assert.True(t, plan.Empty)
	assert.Nil(t, plan.AuthorIDs)
}

func TestBuildFollowedBy(t *testing.T) {
	b, _, relations := newBuilder()
	relations.On("Targets", mock.Anything, domain.Follow, int64(8)).Return([]int64{4, 2}, nil).Once()

	plan, err := b.Build(context.Background(),
		feed.MustQuery("", domain.FollowedByFilter{UserID: 8}),
		feed.NewWindow(domain.PageRequest{}))
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, plan.AuthorIDs)
}

func TestBuildSurfacesLookupErrors(t *testing.T) {
	b, users, relations := newBuilder()
	boom := errors.New("connection reset")
	users.On("GetByUsername", mock.Anything, "alice").Return(domain.User{}, boom).Once()
	relations.On("Targets", mock.Anything, domain.Bookmark, int64(3)).Return(nil, boom).Once()

	_, err := b.Build(context.Background(),
		feed.MustQuery("", domain.AuthorFilter{Username: "alice"}),
		feed.NewWindow(domain.PageRequest{}))
	assert.ErrorIs(t, err, boom)

	_, err = b.Build(context.Background(),
		feed.MustQuery("", domain.BookmarkedByFilter{UserID: 3}),
		feed.NewWindow(domain.PageRequest{}))
	assert.ErrorIs(t, err, boom)
}
