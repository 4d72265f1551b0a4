package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/repository/mysql/model"
)

type counterColumn struct {
	table  string
	column string
}

// counterColumns maps each counter to the column holding it.
var counterColumns = map[domain.Counter]counterColumn{
	domain.CounterFavorites: {table: model.Article{}.TableName(), column: "favorites_count"},
	domain.CounterFollowers: {table: model.User{}.TableName(), column: "followers"},
	domain.CounterFollowee:  {table: model.User{}.TableName(), column: "followee"},
}

type counterRepository struct {
	DB *gorm.DB
}

var _ domain.CounterRepository = (*counterRepository)(nil)

func NewCounterRepository(db *gorm.DB) *counterRepository {
	return &counterRepository{DB: db}
}

func lookupColumn(c domain.Counter) (counterColumn, error) {
	col, ok := counterColumns[c]
	if !ok {
		return counterColumn{}, fmt.Errorf("unknown counter %q: %w", c, domain.ErrBadParamInput)
	}
	return col, nil
}

func (r *counterRepository) Add(ctx context.Context, binding domain.CounterBinding, id int64, delta int64) (bool, error) {
	col, err := lookupColumn(binding.Counter)
	if err != nil {
		return false, err
	}

	q := conn(ctx, r.DB).Table(col.table).Where("id = ?", id)
	if delta < 0 {
		// 不允许计数变为负数
		q = q.Where(col.column+" + ? >= 0", delta)
	}
	result := q.UpdateColumn(col.column, gorm.Expr(col.column+" + ?", delta))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Recount 按成员集合重新求和，修复可能的计数漂移
func (r *counterRepository) Recount(ctx context.Context, kind domain.RelationKind, binding domain.CounterBinding) (int64, error) {
	col, err := lookupColumn(binding.Counter)
	if err != nil {
		return 0, err
	}

	side := "target_id"
	if binding.Side == domain.SourceSide {
		side = "source_id"
	}
	rel := model.Relationship{}.TableName()
	sub := fmt.Sprintf("(SELECT COUNT(*) FROM %s WHERE %s.kind = ? AND %s.%s = %s.id)",
		rel, rel, rel, side, col.table)

	result := conn(ctx, r.DB).Table(col.table).
		Where(col.column+" <> "+sub, kind).
		UpdateColumn(col.column, gorm.Expr(sub, kind))
	return result.RowsAffected, result.Error
}
