package article

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/feed"
	"github.com/Guyuepp/conduit-feed/internal/metrics"
	"github.com/Guyuepp/conduit-feed/internal/usecase/viewer"
)

// 36^6, 随机后缀最多 6 位 base36
const suffixSpace = 36 * 36 * 36 * 36 * 36 * 36

const bloomInitBatch = 1000

type Service struct {
	tx          domain.Transactor
	articleRepo domain.ArticleRepository
	userRepo    domain.UserRepository
	tagRepo     domain.TagRepository
	counter     domain.CounterUsecase
	builder     *feed.Builder
	members     *viewer.Membership
	bloom       domain.BloomRepository
}

var _ domain.ArticleUsecase = (*Service)(nil)

// NewService will create a new article service object. bloom may be nil.
func NewService(
	tx domain.Transactor,
	a domain.ArticleRepository,
	u domain.UserRepository,
	t domain.TagRepository,
	c domain.CounterUsecase,
	b *feed.Builder,
	m *viewer.Membership,
	bloom domain.BloomRepository,
) *Service {
	return &Service{
		tx:          tx,
		articleRepo: a,
		userRepo:    u,
		tagRepo:     t,
		counter:     c,
		builder:     b,
		members:     m,
		bloom:       bloom,
	}
}

func (s *Service) ListFeed(ctx context.Context, filters []domain.FeedFilter, order domain.FeedOrder, page domain.PageRequest, viewerID int64) (domain.FeedPage, error) {
	q, err := feed.NewQuery(order, filters...)
	if err != nil {
		return domain.FeedPage{}, err
	}
	return s.list(ctx, q, page, viewerID)
}

// ListFollowing 关注作者的文章, 新的在前
func (s *Service) ListFollowing(ctx context.Context, viewerID int64, page domain.PageRequest) (domain.FeedPage, error) {
	if viewerID <= 0 {
		return domain.FeedPage{}, domain.ErrUnauthorized
	}
	return s.list(ctx, feed.MustQuery(domain.OrderDesc, domain.FollowedByFilter{UserID: viewerID}), page, viewerID)
}

// ListBookmarked 收藏夹, 新的在前
func (s *Service) ListBookmarked(ctx context.Context, viewerID int64, page domain.PageRequest) (domain.FeedPage, error) {
	if viewerID <= 0 {
		return domain.FeedPage{}, domain.ErrUnauthorized
	}
	return s.list(ctx, feed.MustQuery(domain.OrderDesc, domain.BookmarkedByFilter{UserID: viewerID}), page, viewerID)
}

func (s *Service) list(ctx context.Context, q feed.Query, page domain.PageRequest, viewerID int64) (domain.FeedPage, error) {
	w := feed.NewWindow(page)
	plan, err := s.builder.Build(ctx, q, w)
	if err != nil {
		logrus.Errorf("failed to build feed plan: %v", err)
		return domain.FeedPage{}, err
	}
	if plan.Empty {
		metrics.FeedShortCircuits.Inc()
		return domain.FeedPage{Articles: []domain.Article{}}, nil
	}

	articles, hasMore, err := feed.Paginate(ctx, w, func(ctx context.Context, w domain.PageWindow) ([]domain.Article, error) {
		return s.articleRepo.FetchPlan(ctx, plan, w)
	})
	if err != nil {
		return domain.FeedPage{}, err
	}

	articles, err = s.hydrate(ctx, articles, viewerID)
	if err != nil {
		return domain.FeedPage{}, err
	}
	return domain.FeedPage{Articles: articles, HasMore: hasMore}, nil
}

/*
* hydrate fills author profiles and viewer flags. The four lookups are
* independent, so they run concurrently with errgroup.
 */
func (s *Service) hydrate(ctx context.Context, data []domain.Article, viewerID int64) ([]domain.Article, error) {
	if len(data) == 0 {
		return []domain.Article{}, nil
	}

	articleIDs := make([]int64, len(data))
	authorIDs := make([]int64, 0, len(data))
	seen := make(map[int64]bool, len(data))
	for i, a := range data {
		articleIDs[i] = a.ID
		if !seen[a.Author.ID] {
			seen[a.Author.ID] = true
			authorIDs = append(authorIDs, a.Author.ID)
		}
	}

	var (
		authors    []domain.User
		favorited  map[int64]bool
		bookmarked map[int64]bool
		following  map[int64]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		authors, err = s.userRepo.GetByIDs(gctx, authorIDs)
		return
	})
	g.Go(func() (err error) {
		favorited, err = s.members.Check(gctx, domain.Favorite, viewerID, articleIDs)
		return
	})
	g.Go(func() (err error) {
		bookmarked, err = s.members.Check(gctx, domain.Bookmark, viewerID, articleIDs)
		return
	})
	g.Go(func() (err error) {
		following, err = s.members.Check(gctx, domain.Follow, viewerID, authorIDs)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profiles := make(map[int64]domain.Profile, len(authors))
	for _, u := range authors {
		profiles[u.ID] = u.ToProfile()
	}
	for i := range data {
		if p, ok := profiles[data[i].Author.ID]; ok {
			data[i].Author = p
		}
		data[i].Author.Following = following[data[i].Author.ID]
		data[i].Favorited = favorited[data[i].ID]
		data[i].Bookmarked = bookmarked[data[i].ID]
	}
	return data, nil
}

func (s *Service) hydrateOne(ctx context.Context, a domain.Article, viewerID int64) (domain.Article, error) {
	res, err := s.hydrate(ctx, []domain.Article{a}, viewerID)
	if err != nil {
		return domain.Article{}, err
	}
	return res[0], nil
}

// find 先查布隆过滤器, 确定不存在时直接返回
func (s *Service) find(ctx context.Context, slug string) (domain.Article, error) {
	if s.bloom != nil {
		exists, err := s.bloom.Exists(ctx, slug)
		if err != nil {
			logrus.Warnf("bloom filter error, slug: %s, err: %v", slug, err)
		} else if !exists {
			return domain.Article{}, domain.ErrNotFound
		}
	}
	return s.articleRepo.GetBySlug(ctx, slug)
}

func (s *Service) GetBySlug(ctx context.Context, slug string, viewerID int64) (domain.Article, error) {
	res, err := s.find(ctx, slug)
	if err != nil {
		return domain.Article{}, err
	}
	return s.hydrateOne(ctx, res, viewerID)
}

func randomSuffix() string {
	return strconv.FormatInt(rand.Int64N(suffixSpace), 36)
}

// NewSlug derives the URL key of a new article from its title.
func NewSlug(title string) string {
	return slug.Make(title) + "-" + randomSuffix()
}

// DefaultImage is the cover used when an article is created without one.
func DefaultImage() string {
	return "https://picsum.photos/seed/" + randomSuffix() + "/1080"
}

func required(field string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", fmt.Errorf("%s is required: %w", field, domain.ErrBadParamInput)
	}
	return *v, nil
}

// normalizeTags 去掉首尾空白和空标签, 保留顺序和重复
func normalizeTags(tags []string) []string {
	res := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			res = append(res, t)
		}
	}
	return res
}

func (s *Service) Create(ctx context.Context, authorID int64, in domain.ArticleInput) (domain.Article, error) {
	if authorID <= 0 {
		return domain.Article{}, domain.ErrUnauthorized
	}
	title, err := required("title", in.Title)
	if err != nil {
		return domain.Article{}, err
	}
	description, err := required("description", in.Description)
	if err != nil {
		return domain.Article{}, err
	}
	body, err := required("body", in.Body)
	if err != nil {
		return domain.Article{}, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return domain.Article{}, err
	}

	ar := domain.Article{
		Slug:        NewSlug(title),
		Title:       title,
		Description: description,
		Body:        body,
		TagList:     normalizeTags(in.TagList),
		Image:       DefaultImage(),
		Author:      author.ToProfile(),
	}
	if in.Image != nil && strings.TrimSpace(*in.Image) != "" {
		ar.Image = *in.Image
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.articleRepo.Store(ctx, &ar); err != nil {
			return err
		}
		return s.tagRepo.Upsert(ctx, ar.TagList)
	})
	if err != nil {
		return domain.Article{}, err
	}

	if s.bloom != nil {
		if err := s.bloom.Add(ctx, ar.Slug); err != nil {
			logrus.Errorf("failed to add slug to bloom filter, slug: %s, err: %v", ar.Slug, err)
		}
	}
	return ar, nil
}

// owned 读取文章并校验作者
func (s *Service) owned(ctx context.Context, slug string, userID int64) (domain.Article, error) {
	ar, err := s.find(ctx, slug)
	if err != nil {
		return domain.Article{}, err
	}
	if userID <= 0 || ar.Author.ID != userID {
		return domain.Article{}, domain.ErrUnauthorized
	}
	return ar, nil
}

// Update 部分更新, slug 保持不变, 标签计数不受影响
func (s *Service) Update(ctx context.Context, slug string, userID int64, in domain.ArticleInput) (domain.Article, error) {
	ar, err := s.owned(ctx, slug, userID)
	if err != nil {
		return domain.Article{}, err
	}

	if in.Title != nil {
		if ar.Title, err = required("title", in.Title); err != nil {
			return domain.Article{}, err
		}
	}
	if in.Description != nil {
		if ar.Description, err = required("description", in.Description); err != nil {
			return domain.Article{}, err
		}
	}
	if in.Body != nil {
		if ar.Body, err = required("body", in.Body); err != nil {
			return domain.Article{}, err
		}
	}
	if in.Image != nil {
		ar.Image = *in.Image
	}
	if in.TagList != nil {
		ar.TagList = normalizeTags(in.TagList)
	}
	ar.UpdatedAt = time.Now()

	if err := s.articleRepo.Update(ctx, &ar); err != nil {
		return domain.Article{}, err
	}
	return s.hydrateOne(ctx, ar, userID)
}

// Delete 删除文章及其评论、收藏和书签; 标签计数不回退
func (s *Service) Delete(ctx context.Context, slug string, userID int64) (domain.Article, error) {
	ar, err := s.owned(ctx, slug, userID)
	if err != nil {
		return domain.Article{}, err
	}
	res, err := s.hydrateOne(ctx, ar, userID)
	if err != nil {
		return domain.Article{}, err
	}

	if err := s.articleRepo.Delete(ctx, ar.ID); err != nil {
		return domain.Article{}, err
	}
	return res, nil
}

func (s *Service) ToggleFavorite(ctx context.Context, viewerID int64, slug string, add bool) (domain.Article, error) {
	return s.toggle(ctx, domain.Favorite, viewerID, slug, add)
}

func (s *Service) ToggleBookmark(ctx context.Context, viewerID int64, slug string, add bool) (domain.Article, error) {
	return s.toggle(ctx, domain.Bookmark, viewerID, slug, add)
}

func (s *Service) toggle(ctx context.Context, kind domain.RelationKind, viewerID int64, slug string, add bool) (domain.Article, error) {
	if viewerID <= 0 {
		return domain.Article{}, domain.ErrUnauthorized
	}
	ar, err := s.find(ctx, slug)
	if err != nil {
		return domain.Article{}, err
	}

	rel := domain.Relation{Kind: kind, SourceID: viewerID, TargetID: ar.ID}
	if _, err := s.counter.Toggle(ctx, rel, domain.DirectionOf(add)); err != nil {
		return domain.Article{}, err
	}

	// 重新读取最新的计数
	ar, err = s.articleRepo.GetByID(ctx, ar.ID)
	if err != nil {
		return domain.Article{}, err
	}
	return s.hydrateOne(ctx, ar, viewerID)
}

func (s *Service) PopularTags(ctx context.Context) ([]string, error) {
	tags, err := s.tagRepo.Popular(ctx, domain.PopularTagLimit)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(tags))
	for i, t := range tags {
		res[i] = t.Tag
	}
	return res, nil
}

// InitBloomFilter 启动时把所有 slug 写入布隆过滤器
func (s *Service) InitBloomFilter(ctx context.Context) error {
	if s.bloom == nil {
		return nil
	}

	var afterID, total int64
	for {
		batch, err := s.articleRepo.FetchSlugs(ctx, afterID, bloomInitBatch)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}

		slugs := make([]string, len(batch))
		for i, a := range batch {
			slugs[i] = a.Slug
		}
		if err := s.bloom.BulkAdd(ctx, slugs); err != nil {
			return err
		}

		total += int64(len(batch))
		afterID = batch[len(batch)-1].ID
		if len(batch) < bloomInitBatch {
			break
		}
	}

	logrus.Infof("bloom filter initialized with %d slugs", total)
	return nil
}
