// childcare-crm/config/redis.go
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// UserCacheKey is the Redis key holding the cached principal for a user.
// Population (auth middleware) and eviction (account changes, logout) must
// agree on it.
func UserCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d:data", userID)
}

func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		slog.Warn("REDIS_ADDR is not set, caching is disabled")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		RDB = nil // leave caching disabled rather than failing requests later
		return
	}

	slog.Info("Redis connection established")
}
