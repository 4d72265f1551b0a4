package mysql

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/repository/mysql/model"
)

type articleRepository struct {
	DB *gorm.DB
}

// mysql层只负责数据库操作
var _ domain.ArticleRepository = (*articleRepository)(nil)

// NewArticleRepository 创建数据库操作层
func NewArticleRepository(db *gorm.DB) *articleRepository {
	return &articleRepository{db}
}

// likeEscaper escapes LIKE wildcards with '!', which both MySQL and SQLite
// accept as an explicit ESCAPE character.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (m *articleRepository) FetchPlan(ctx context.Context, plan domain.FeedPlan, window domain.PageWindow) ([]domain.Article, error) {
	if plan.Empty {
		return []domain.Article{}, nil
	}

	q := conn(ctx, m.DB).Model(&model.Article{})
	if plan.TagContains != "" {
		q = q.Where("LOWER(tag_list) LIKE ? ESCAPE '!'", containsPattern(model.EncodeTagFragment(plan.TagContains)))
	}
	if plan.AuthorIDs != nil {
		q = q.Where("author_id IN ?", plan.AuthorIDs)
	}
	if plan.ArticleIDs != nil {
		q = q.Where("id IN ?", plan.ArticleIDs)
	}
	if plan.Search != "" {
		p := containsPattern(plan.Search)
		q = q.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", p, p)
	}
	if plan.CreatedBefore != nil {
		q = q.Where("created_at < ?", *plan.CreatedBefore)
	}

	switch plan.Order {
	case domain.OrderAsc:
		q = q.Order("created_at ASC").Order("id ASC")
	case domain.OrderTop:
		q = q.Order("favorites_count DESC").Order("id ASC")
	default:
		q = q.Order("created_at DESC").Order("id DESC")
	}

	q = q.Limit(window.Fetch())
	if window.Cursor == nil && window.Offset > 0 {
		q = q.Offset(window.Offset)
	}

	var articles []model.Article
	if err := q.Find(&articles).Error; err != nil {
		return nil, err
	}

	res := make([]domain.Article, len(articles))
	for i := range articles {
		res[i] = articles[i].ToDomain()
	}
	return res, nil
}

func (m *articleRepository) GetByID(ctx context.Context, id int64) (domain.Article, error) {
	var article model.Article
	if err := conn(ctx, m.DB).First(&article, "id = ?", id).Error; err != nil {
		return domain.Article{}, notFound(err)
	}
	return article.ToDomain(), nil
}

func (m *articleRepository) GetBySlug(ctx context.Context, slug string) (domain.Article, error) {
	var article model.Article
	if err := conn(ctx, m.DB).First(&article, "slug = ?", slug).Error; err != nil {
		return domain.Article{}, notFound(err)
	}
	return article.ToDomain(), nil
}

func (m *articleRepository) Store(ctx context.Context, a *domain.Article) error {
	articleModel := model.NewArticleFromDomain(a)
	result := conn(ctx, m.DB).Create(articleModel)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return fmt.Errorf("slug %q: %w", a.Slug, domain.ErrConflict)
		}
		return result.Error
	}
	a.ID = articleModel.ID
	a.CreatedAt = articleModel.CreatedAt
	a.UpdatedAt = articleModel.UpdatedAt
	return nil
}

func (m *articleRepository) Update(ctx context.Context, a *domain.Article) error {
	articleModel := model.NewArticleFromDomain(a)
	result := conn(ctx, m.DB).Model(&model.Article{ID: a.ID}).
		Select("title", "description", "body", "tag_list", "image", "updated_at").
		Updates(articleModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete 删除文章，同时删除评论和指向该文章的收藏/书签
func (m *articleRepository) Delete(ctx context.Context, id int64) error {
	return transact(ctx, m.DB, func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("kind IN ? AND target_id = ?",
			[]string{string(domain.Favorite), string(domain.Bookmark)}, id).
			Delete(&model.Relationship{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Article{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (m *articleRepository) FetchSlugs(ctx context.Context, afterID int64, limit int64) ([]domain.Article, error) {
	var articles []model.Article
	err := conn(ctx, m.DB).
		Select("id", "slug").
		Where("id > ?", afterID).
		Order("id").
		Limit(int(limit)).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Article, len(articles))
	for i := range articles {
		res[i] = domain.Article{ID: articles[i].ID, Slug: articles[i].Slug}
	}
	return res, nil
}
