package mysql

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/repository/mysql/model"
)

type tagRepository struct {
	DB *gorm.DB
}

var _ domain.TagRepository = (*tagRepository)(nil)

func NewTagRepository(db *gorm.DB) *tagRepository {
	return &tagRepository{DB: db}
}

// countOccurrences trims tags, drops empty ones and counts how often each
// remaining tag occurs, keeping first-seen order.
func countOccurrences(tags []string) ([]string, map[string]int64) {
	order := make([]string, 0, len(tags))
	counts := make(map[string]int64, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := counts[t]; !ok {
			order = append(order, t)
		}
		counts[t]++
	}
	return order, counts
}

// Upsert 已存在的标签按出现次数累加，不存在的新建；没有递减路径
func (r *tagRepository) Upsert(ctx context.Context, tags []string) error {
	order, counts := countOccurrences(tags)
	if len(order) == 0 {
		return nil
	}

	return transact(ctx, r.DB, func(tx *gorm.DB) error {
		for _, t := range order {
			n := counts[t]
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "tag"}},
				DoUpdates: clause.Assignments(map[string]any{"usage_count": gorm.Expr("usage_count + ?", n)}),
			}).Create(&model.Tag{Tag: t, Count: n}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *tagRepository) Popular(ctx context.Context, limit int) ([]domain.Tag, error) {
	var tags []model.Tag
	err := conn(ctx, r.DB).
		Order("usage_count DESC").
		Order("id ASC").
		Limit(limit).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Tag, len(tags))
	for i := range tags {
		res[i] = tags[i].ToDomain()
	}
	return res, nil
}
