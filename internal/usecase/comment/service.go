package comment

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/conduit-feed/domain"
)

type service struct {
	commentRepo domain.CommentRepository
	articleRepo domain.ArticleRepository
	userRepo    domain.UserRepository
	bloomRepo   domain.BloomRepository
}

var _ domain.CommentUsecase = (*service)(nil)

// NewService creates the comment usecase. bloomRepo may be nil.
func NewService(commentRepo domain.CommentRepository, articleRepo domain.ArticleRepository, userRepo domain.UserRepository, bloomRepo domain.BloomRepository) *service {
	return &service{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		userRepo:    userRepo,
		bloomRepo:   bloomRepo,
	}
}

func (s *service) article(ctx context.Context, slug string) (domain.Article, error) {
	if s.bloomRepo != nil {
		exists, err := s.bloomRepo.Exists(ctx, slug)
		if err == nil && !exists {
			logrus.Warnf("bloom filter says article %s does not exist", slug)
			return domain.Article{}, domain.ErrNotFound
		}
	}
	return s.articleRepo.GetBySlug(ctx, slug)
}

// List 按发表顺序返回评论及作者
func (s *service) List(ctx context.Context, slug string) ([]domain.Comment, error) {
	ar, err := s.article(ctx, slug)
	if err != nil {
		return nil, err
	}
	res, err := s.commentRepo.FetchByArticle(ctx, ar.ID)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return []domain.Comment{}, nil
	}

	seen := make(map[int64]bool, len(res))
	authorIDs := make([]int64, 0, len(res))
	for _, c := range res {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}
	users, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	profiles := make(map[int64]domain.Profile, len(users))
	for _, u := range users {
		profiles[u.ID] = u.ToProfile()
	}

	for i := range res {
		if p, ok := profiles[res[i].AuthorID]; ok {
			res[i].Author = &p
		}
	}
	return res, nil
}

func (s *service) Create(ctx context.Context, userID int64, slug string, body string) (domain.Comment, error) {
	if userID <= 0 {
		return domain.Comment{}, domain.ErrUnauthorized
	}
	if strings.TrimSpace(body) == "" {
		return domain.Comment{}, fmt.Errorf("comment body is required: %w", domain.ErrBadParamInput)
	}

	ar, err := s.article(ctx, slug)
	if err != nil {
		return domain.Comment{}, err
	}
	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.Comment{}, err
	}

	c := domain.Comment{
		ArticleID: ar.ID,
		AuthorID:  author.ID,
		Body:      body,
	}
	if err := s.commentRepo.Store(ctx, &c); err != nil {
		return domain.Comment{}, err
	}
	p := author.ToProfile()
	c.Author = &p
	return c, nil
}

// Delete 只有评论作者可以删除; 评论不属于该文章时视为不存在
func (s *service) Delete(ctx context.Context, userID int64, slug string, id int64) (domain.Comment, error) {
	ar, err := s.article(ctx, slug)
	if err != nil {
		return domain.Comment{}, err
	}
	c, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}
	if c.ArticleID != ar.ID {
		return domain.Comment{}, domain.ErrNotFound
	}
	if userID <= 0 || c.AuthorID != userID {
		return domain.Comment{}, domain.ErrUnauthorized
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return domain.Comment{}, err
	}

	author, err := s.userRepo.GetByID(ctx, c.AuthorID)
	if err != nil {
		logrus.Warnf("failed to load comment author %d: %v", c.AuthorID, err)
		return c, nil
	}
	p := author.ToProfile()
	c.Author = &p
	return c, nil
}
