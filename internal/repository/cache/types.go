// Package cache holds the envelope used for logically expiring cache entries.
package cache

import "time"

// Entry 逻辑过期的缓存值. 物理 TTL 比 ExpireAt 长, 过期后仍可读出旧值
type Entry[T any] struct {
	Data      T         `json:"data"`
	ExpireAt  time.Time `json:"expire_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the entry is past its logical expiry at now.
func (e *Entry[T]) Expired(now time.Time) bool {
	return now.After(e.ExpireAt)
}

// Stale reports whether the entry should be rebuilt.
func (e *Entry[T]) Stale() bool {
	return e.Expired(time.Now())
}

func NewEntry[T any](data T, ttl time.Duration) Entry[T] {
	now := time.Now()
	return Entry[T]{
		Data:      data,
		ExpireAt:  now.Add(ttl),
		CreatedAt: now,
	}
}
