package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guyuepp/conduit-feed/domain"
)

type RelationRepository struct {
	mock.Mock
}

func (m *RelationRepository) Insert(ctx context.Context, rel domain.Relation) (bool, error) {
	args := m.Called(ctx, rel)
	return args.Bool(0), args.Error(1)
}

func (m *RelationRepository) Delete(ctx context.Context, rel domain.Relation) (bool, error) {
	args := m.Called(ctx, rel)
	return args.Bool(0), args.Error(1)
}

func (m *RelationRepository) Contains(ctx context.Context, rel domain.Relation) (bool, error) {
	args := m.Called(ctx, rel)
	return args.Bool(0), args.Error(1)
}

func (m *RelationRepository) ContainsBatch(ctx context.Context, kind domain.RelationKind, sourceID int64, targetIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, kind, sourceID, targetIDs)
	res, _ := args.Get(0).(map[int64]bool)
	return res, args.Error(1)
}

func (m *RelationRepository) Targets(ctx context.Context, kind domain.RelationKind, sourceID int64) ([]int64, error) {
	args := m.Called(ctx, kind, sourceID)
	res, _ := args.Get(0).([]int64)
	return res, args.Error(1)
}

func (m *RelationRepository) Count(ctx context.Context, kind domain.RelationKind, targetID int64) (int64, error) {
	args := m.Called(ctx, kind, targetID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RelationRepository) DeleteByTarget(ctx context.Context, kind domain.RelationKind, targetID int64) error {
	return m.Called(ctx, kind, targetID).Error(0)
}

type RelationCache struct {
	mock.Mock
}

func (m *RelationCache) IsMemberBatch(ctx context.Context, kind domain.RelationKind, sourceID int64, targetIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, kind, sourceID, targetIDs)
	res, _ := args.Get(0).(map[int64]bool)
	return res, args.Error(1)
}

func (m *RelationCache) Load(ctx context.Context, kind domain.RelationKind, sourceID int64, targetIDs []int64) error {
	return m.Called(ctx, kind, sourceID, targetIDs).Error(0)
}

func (m *RelationCache) Apply(ctx context.Context, rel domain.Relation, dir domain.Direction) error {
	return m.Called(ctx, rel, dir).Error(0)
}

func (m *RelationCache) Invalidate(ctx context.Context, kind domain.RelationKind, sourceID int64) error {
	return m.Called(ctx, kind, sourceID).Error(0)
}

type CounterUsecase struct {
	mock.Mock
}

func (m *CounterUsecase) Toggle(ctx context.Context, rel domain.Relation, dir domain.Direction) (bool, error) {
	args := m.Called(ctx, rel, dir)
	return args.Bool(0), args.Error(1)
}

func (m *CounterUsecase) Reconcile(ctx context.Context, kind domain.RelationKind) error {
	return m.Called(ctx, kind).Error(0)
}

// Transactor runs fn directly, without a transaction.
type Transactor struct{}

func (Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
