package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/repository/mysql/model"
)

type relationRepository struct {
	DB *gorm.DB
}

var _ domain.RelationRepository = (*relationRepository)(nil)

func NewRelationRepository(db *gorm.DB) *relationRepository {
	return &relationRepository{DB: db}
}

// Insert 依赖联合主键：并发插入同一对时只有一个会真正写入
func (r *relationRepository) Insert(ctx context.Context, rel domain.Relation) (bool, error) {
	if rel.CreatedAt.IsZero() {
		rel.CreatedAt = time.Now()
	}
	result := conn(ctx, r.DB).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model.NewRelationshipFromDomain(rel))
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *relationRepository) Delete(ctx context.Context, rel domain.Relation) (bool, error) {
	result := conn(ctx, r.DB).
		Where("kind = ? AND source_id = ? AND target_id = ?", rel.Kind, rel.SourceID, rel.TargetID).
		Delete(&model.Relationship{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *relationRepository) Contains(ctx context.Context, rel domain.Relation) (bool, error) {
	var n int64
	err := conn(ctx, r.DB).Model(&model.Relationship{}).
		Where("kind = ? AND source_id = ? AND target_id = ?", rel.Kind, rel.SourceID, rel.TargetID).
		Count(&n).Error
	return n > 0, err
}

func (r *relationRepository) ContainsBatch(ctx context.Context, kind domain.RelationKind, sourceID int64, targetIDs []int64) (map[int64]bool, error) {
	res := make(map[int64]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return res, nil
	}
	for _, id := range targetIDs {
		res[id] = false
	}

	var hits []int64
	err := conn(ctx, r.DB).Model(&model.Relationship{}).
		Where("kind = ? AND source_id = ? AND target_id IN ?", kind, sourceID, targetIDs).
		Pluck("target_id", &hits).Error
	if err != nil {
		return nil, err
	}
	for _, id := range hits {
		res[id] = true
	}
	return res, nil
}

func (r *relationRepository) Targets(ctx context.Context, kind domain.RelationKind, sourceID int64) ([]int64, error) {
	ids := []int64{}
	err := conn(ctx, r.DB).Model(&model.Relationship{}).
		Where("kind = ? AND source_id = ?", kind, sourceID).
		Order("target_id").
		Pluck("target_id", &ids).Error
	return ids, err
}

func (r *relationRepository) Count(ctx context.Context, kind domain.RelationKind, targetID int64) (int64, error) {
	var n int64
	err := conn(ctx, r.DB).Model(&model.Relationship{}).
		Where("kind = ? AND target_id = ?", kind, targetID).
		Count(&n).Error
	return n, err
}

func (r *relationRepository) DeleteByTarget(ctx context.Context, kind domain.RelationKind, targetID int64) error {
	return conn(ctx, r.DB).
		Where("kind = ? AND target_id = ?", kind, targetID).
		Delete(&model.Relationship{}).Error
}
