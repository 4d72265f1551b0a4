package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/conduit-feed/domain"
)

type ArticleUsecase struct {
	mock.Mock
}

func (m *ArticleUsecase) ListFeed(ctx context.Context, filters []domain.FeedFilter, order domain.FeedOrder, page domain.PageRequest, viewerID int64) (domain.FeedPage, error) {
	args := m.Called(ctx, filters, order, page, viewerID)
	return args.Get(0).(domain.FeedPage), args.Error(1)
}

func (m *ArticleUsecase) ListFollowing(ctx context.Context, viewerID int64, page domain.PageRequest) (domain.FeedPage, error) {
	args := m.Called(ctx, viewerID, page)
	return args.Get(0).(domain.FeedPage), args.Error(1)
}

func (m *ArticleUsecase) ListBookmarked(ctx context.Context, viewerID int64, page domain.PageRequest) (domain.FeedPage, error) {
	args := m.Called(ctx, viewerID, page)
	return args.Get(0).(domain.FeedPage), args.Error(1)
}

func (m *ArticleUsecase) GetBySlug(ctx context.Context, slug string, viewerID int64) (domain.Article, error) {
	args := m.Called(ctx, slug, viewerID)
	return args.Get(0).(domain.Article), args.Error(1)
}

func (m *ArticleUsecase) Create(ctx context.Context, authorID int64, in domain.ArticleInput) (domain.Article, error) {
	args := m.Called(ctx, authorID, in)
	return args.Get(0).(domain.Article), args.Error(1)
}

func (m *ArticleUsecase) Update(ctx context.Context, slug string, userID int64, in domain.ArticleInput) (domain.Article, error) {
	args := m.Called(ctx, slug, userID, in)
	return args.Get(0).(domain.Article), args.Error(1)
}

func (m *ArticleUsecase) Delete(ctx context.Context, slug string, userID int64) (domain.Article, error) {
	args := m.Called(ctx, slug, userID)
	return args.Get(0).(domain.Article), args.Error(1)
}

func (m *ArticleUsecase) ToggleFavorite(ctx context.Context, viewerID int64, slug string, add bool) (domain.Article, error) {
	args := m.Called(ctx, viewerID, slug, add)
	return args.Get(0).(domain.Article), args.Error(1)
}

func (m *ArticleUsecase) ToggleBookmark(ctx context.Context, viewerID int64, slug string, add bool) (domain.Article, error) {
	args := m.Called(ctx, viewerID, slug, add)
	return args.Get(0).(domain.Article), args.Error(1)
}

func (m *ArticleUsecase) PopularTags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]string)
	return res, args.Error(1)
}

func (m *ArticleUsecase) InitBloomFilter(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type ProfileUsecase struct {
	mock.Mock
}

func (m *ProfileUsecase) GetProfile(ctx context.Context, username string, viewerID int64) (domain.Profile, error) {
	args := m.Called(ctx, username, viewerID)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *ProfileUsecase) SearchProfiles(ctx context.Context, text string, viewerID int64) ([]domain.Profile, error) {
	args := m.Called(ctx, text, viewerID)
	res, _ := args.Get(0).([]domain.Profile)
	return res, args.Error(1)
}

func (m *ProfileUsecase) ToggleFollow(ctx context.Context, viewerID int64, username string, add bool) (domain.Profile, error) {
	args := m.Called(ctx, viewerID, username, add)
	return args.Get(0).(domain.Profile), args.Error(1)
}

type CommentUsecase struct {
	mock.Mock
}

func (m *CommentUsecase) List(ctx context.Context, slug string) ([]domain.Comment, error) {
	args := m.Called(ctx, slug)
	res, _ := args.Get(0).([]domain.Comment)
	return res, args.Error(1)
}

func (m *CommentUsecase) Create(ctx context.Context, userID int64, slug string, body string) (domain.Comment, error) {
	args := m.Called(ctx, userID, slug, body)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *CommentUsecase) Delete(ctx context.Context, userID int64, slug string, id int64) (domain.Comment, error) {
	args := m.Called(ctx, userID, slug, id)
	return args.Get(0).(domain.Comment), args.Error(1)
}
