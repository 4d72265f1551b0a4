package redis

import (
	"context"
	"hash/crc32"
	"hash/fnv"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/conduit-feed/domain"
)

const (
	KeyArticleBloom = "bloom:article:slugs"

	defaultBloomBits = 1 << 20
	// 每个 slug 置位的数量
	bloomHashes = 3
	// BulkAdd 每个 pipeline 最多写入的 slug 数
	bloomPipelineSlugs = 500
)

// slugBloom is a bloom filter over article slugs stored as a redis bitmap.
type slugBloom struct {
	client *redis.Client
	bits   uint64
}

var _ domain.BloomRepository = (*slugBloom)(nil)

// NewSlugBloom creates the filter. bits defaults to 1<<20 when zero.
func NewSlugBloom(client *redis.Client, bits uint64) *slugBloom {
	if bits == 0 {
		bits = defaultBloomBits
	}
	return &slugBloom{
		client: client,
		bits:   bits,
	}
}

// offsets derives bloomHashes bit positions by double hashing:
// h1 + i*h2, with h1 from CRC32 and h2 from FNV-1a.
func (r *slugBloom) offsets(slug string) [bloomHashes]int64 {
	data := []byte(slug)
	h1 := uint64(crc32.ChecksumIEEE(data))
	h := fnv.New64a()
	_, _ = h.Write(data)
	h2 := h.Sum64() | 1 // 奇数, 避免步长为 0

	var res [bloomHashes]int64
	for i := range res {
		res[i] = int64((h1 + uint64(i)*h2) % r.bits)
	}
	return res
}

func (r *slugBloom) Add(ctx context.Context, slug string) error {
	return r.BulkAdd(ctx, []string{slug})
}

func (r *slugBloom) BulkAdd(ctx context.Context, slugs []string) error {
	for start := 0; start < len(slugs); start += bloomPipelineSlugs {
		end := min(start+bloomPipelineSlugs, len(slugs))

		pipe := r.client.Pipeline()
		for _, slug := range slugs[start:end] {
			for _, offset := range r.offsets(slug) {
				pipe.SetBit(ctx, KeyArticleBloom, offset, 1)
			}
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Exists reports false only when slug was certainly never added. A missing
// bitmap (never built, or flushed) proves nothing, so it reports true.
func (r *slugBloom) Exists(ctx context.Context, slug string) (bool, error) {
	pipe := r.client.Pipeline()
	built := pipe.Exists(ctx, KeyArticleBloom)
	cmds := make([]*redis.IntCmd, 0, bloomHashes)
	for _, offset := range r.offsets(slug) {
		cmds = append(cmds, pipe.GetBit(ctx, KeyArticleBloom, offset))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if built.Val() == 0 {
		return true, nil
	}
	for _, cmd := range cmds {
		if cmd.Val() == 0 {
			return false, nil
		}
	}
	return true, nil
}
