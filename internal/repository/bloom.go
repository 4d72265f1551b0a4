package repository

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/conduit-feed/domain"
)

// bloomAddAttempts 写入失败时的重试次数
const bloomAddAttempts = 3

// guardedBloom 包装布隆过滤器: 一旦有 slug 没能写进去, 过滤器就不再可信,
// 之后 Exists 一律返回"可能存在", 让请求回到数据库
type guardedBloom struct {
	inner    domain.BloomRepository
	degraded atomic.Bool
}

var _ domain.BloomRepository = (*guardedBloom)(nil)

func NewGuardedBloom(inner domain.BloomRepository) *guardedBloom {
	return &guardedBloom{inner: inner}
}

// Degraded reports whether a failed write disabled the short-circuit.
func (b *guardedBloom) Degraded() bool {
	return b.degraded.Load()
}

func (b *guardedBloom) Add(ctx context.Context, slug string) error {
	var err error
	for range bloomAddAttempts {
		if err = b.inner.Add(ctx, slug); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			break
		}
	}
	b.degrade(err)
	return err
}

func (b *guardedBloom) BulkAdd(ctx context.Context, slugs []string) error {
	if err := b.inner.BulkAdd(ctx, slugs); err != nil {
		b.degrade(err)
		return err
	}
	return nil
}

func (b *guardedBloom) Exists(ctx context.Context, slug string) (bool, error) {
	if b.degraded.Load() {
		return true, nil
	}
	return b.inner.Exists(ctx, slug)
}

func (b *guardedBloom) degrade(err error) {
	if b.degraded.CompareAndSwap(false, true) {
		logrus.Errorf("bloom filter missed a write, falling back to the database: %v", err)
	}
}
