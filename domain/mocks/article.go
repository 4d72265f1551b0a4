package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/conduit-feed/domain"
)

type ArticleRepository struct {
	mock.Mock
}

func (m *ArticleRepository) FetchPlan(ctx context.Context, plan domain.FeedPlan, window domain.PageWindow) ([]domain.Article, error) {
	args := m.Called(ctx, plan, window)
	res, _ := args.Get(0).([]domain.Article)
	return res, args.Error(1)
}

func (m *ArticleRepository) GetByID(ctx context.Context, id int64) (domain.Article, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Article), args.Error(1)
}

func (m *ArticleRepository) GetBySlug(ctx context.Context, slug string) (domain.Article, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.Article), args.Error(1)
}

func (m *ArticleRepository) Store(ctx context.Context, a *domain.Article) error {
	return m.Called(ctx, a).Error(0)
}

func (m *ArticleRepository) Update(ctx context.Context, a *domain.Article) error {
	return m.Called(ctx, a).Error(0)
}

func (m *ArticleRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ArticleRepository) FetchSlugs(ctx context.Context, afterID int64, limit int64) ([]domain.Article, error) {
	args := m.Called(ctx, afterID, limit)
	res, _ := args.Get(0).([]domain.Article)
	return res, args.Error(1)
}

type TagRepository struct {
	mock.Mock
}

func (m *TagRepository) Upsert(ctx context.Context, tags []string) error {
	return m.Called(ctx, tags).Error(0)
}

func (m *TagRepository) Popular(ctx context.Context, limit int) ([]domain.Tag, error) {
	args := m.Called(ctx, limit)
	res, _ := args.Get(0).([]domain.Tag)
	return res, args.Error(1)
}

type TagCache struct {
	mock.Mock
}

func (m *TagCache) GetPopular(ctx context.Context) ([]domain.Tag, bool, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]domain.Tag)
	return res, args.Bool(1), args.Error(2)
}

func (m *TagCache) SetPopular(ctx context.Context, tags []domain.Tag) error {
	return m.Called(ctx, tags).Error(0)
}

type BloomRepository struct {
	mock.Mock
}

func (m *BloomRepository) Add(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

func (m *BloomRepository) Exists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *BloomRepository) BulkAdd(ctx context.Context, slugs []string) error {
	return m.Called(ctx, slugs).Error(0)
}

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Store(ctx context.Context, c *domain.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CommentRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id int64) (domain.Comment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *CommentRepository) FetchByArticle(ctx context.Context, articleID int64) ([]domain.Comment, error) {
	args := m.Called(ctx, articleID)
	res, _ := args.Get(0).([]domain.Comment)
	return res, args.Error(1)
}
