package redis

import "github.com/redis/go-redis/v9"

func IsMemberBatchScript() *redis.Script { return isMemberBatchScript }

func ApplyScript() *redis.Script { return applyScript }
