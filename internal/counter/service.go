// Package counter keeps membership sets and the counters derived from them in step.
package counter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/metrics"
)

// Service is the only writer of relationship rows and their counters.
type Service struct {
	tx        domain.Transactor
	relations domain.RelationRepository
	counters  domain.CounterRepository
	cache     domain.RelationCache
}

var _ domain.CounterUsecase = (*Service)(nil)

// NewService builds the counter service. cache may be nil.
func NewService(tx domain.Transactor, relations domain.RelationRepository, counters domain.CounterRepository, cache domain.RelationCache) *Service {
	return &Service{
		tx:        tx,
		relations: relations,
		counters:  counters,
		cache:     cache,
	}
}

// Toggle drives rel to the state dir asks for and reports whether the set
// changed. Counters move only when a row was really inserted or deleted, in
// the same transaction as the row.
func (s *Service) Toggle(ctx context.Context, rel domain.Relation, dir domain.Direction) (bool, error) {
	if !rel.Kind.Valid() {
		return false, fmt.Errorf("relation kind %q: %w", rel.Kind, domain.ErrBadParamInput)
	}
	if dir != domain.Add && dir != domain.Remove {
		return false, fmt.Errorf("direction %d: %w", dir, domain.ErrBadParamInput)
	}
	if rel.Kind == domain.Follow && rel.SourceID == rel.TargetID {
		return false, fmt.Errorf("user %d cannot follow itself: %w", rel.SourceID, domain.ErrInvalidInput)
	}

	var changed bool
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if dir == domain.Add {
			changed, err = s.relations.Insert(ctx, rel)
		} else {
			changed, err = s.relations.Delete(ctx, rel)
		}
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		delta := int64(dir)
		for _, b := range rel.Kind.Bindings() {
			id := b.Side.Pick(rel)
			applied, err := s.counters.Add(ctx, b, id, delta)
			if err != nil {
				return fmt.Errorf("update %s of %d: %w", b.Counter, id, err)
			}
			if !applied {
				// 计数已与成员集合不一致, 交给对账任务修复
				metrics.CounterDrift.WithLabelValues(string(b.Counter)).Inc()
				logrus.WithFields(logrus.Fields{
					"counter": b.Counter,
					"id":      id,
					"delta":   delta,
				}).Warn("counter update skipped, drift left for reconciliation")
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	metrics.RelationToggles.WithLabelValues(string(rel.Kind), dir.String(), strconv.FormatBool(changed)).Inc()

	if changed && s.cache != nil {
		if err := s.cache.Apply(ctx, rel, dir); err != nil {
			logrus.Warnf("failed to apply %s %s to relation cache, source: %d, err: %v", rel.Kind, dir, rel.SourceID, err)
			if err := s.cache.Invalidate(ctx, rel.Kind, rel.SourceID); err != nil {
				logrus.Errorf("failed to invalidate relation cache, source: %d, err: %v", rel.SourceID, err)
			}
		}
	}
	return changed, nil
}

// Reconcile re-derives every counter bound to kind from the membership set.
func (s *Service) Reconcile(ctx context.Context, kind domain.RelationKind) error {
	if !kind.Valid() {
		return fmt.Errorf("relation kind %q: %w", kind, domain.ErrBadParamInput)
	}
	for _, b := range kind.Bindings() {
		n, err := s.counters.Recount(ctx, kind, b)
		if err != nil {
			return fmt.Errorf("recount %s: %w", b.Counter, err)
		}
		if n > 0 {
			metrics.CounterReconciled.WithLabelValues(string(b.Counter)).Add(float64(n))
			logrus.Infof("reconciled %d rows of %s", n, b.Counter)
		}
	}
	return nil
}
