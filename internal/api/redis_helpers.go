package api

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginRateKeyPrefix = "rate:login:"

type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// loginRateKey 按 IP、用户名与小时分桶；用户名不区分大小写。
func loginRateKey(ip, username string, now time.Time) string {
	return loginRateKeyPrefix + ip + ":" + strings.ToLower(username) + ":" + now.UTC().Format("2006010215")
}

// incrWithTTL 自增计数，首次创建时设置过期时间。
func incrWithTTL(ctx context.Context, client redisRateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}
