package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"mobileshop-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	settingKey   = "policy:setting"
	settingTTL   = 10 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: every
// accessor degrades to a no-op when Redis is unavailable.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCachedSetting returns the cached revenue policy, if present.
func GetCachedSetting(ctx context.Context) (*models.Setting, bool) {
	if client == nil {
		return nil, false
	}
	raw, err := client.Get(ctx, settingKey).Bytes()
	if err != nil {
		return nil, false
	}
	var s models.Setting
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}

// CacheSetting stores the revenue policy for the read path.
func CacheSetting(ctx context.Context, s *models.Setting) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	client.Set(ctx, settingKey, raw, settingTTL)
}

// InvalidateSetting drops the cached policy after a settings write.
func InvalidateSetting(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, settingKey)
}
