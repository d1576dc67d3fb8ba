package config

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var (
	rdb    *redis.Client
	locker *redislock.Client
)

func GetRedisDB() *redis.Client {
	return rdb
}

// GetRedisLock returns the distributed locker, or nil when redis is not
// configured. Callers must handle the nil case.
func GetRedisLock() *redislock.Client {
	return locker
}

// InitRedis connects to redis when REDIS_ADDR is set. Redis is optional: a
// single-replica deployment runs fine without it, the reconciliation service
// falls back to an in-process lock.
func InitRedis() {
	addr := getenvDefault("REDIS_ADDR", "")
	if addr == "" {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: getenvDefault("REDIS_PASSWORD", ""),
		DB:       intFromEnv("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warnf("redis unreachable at %s, continuing without distributed lock: %v", addr, err)
		return
	}

	rdb = client
	locker = redislock.New(client)
}
