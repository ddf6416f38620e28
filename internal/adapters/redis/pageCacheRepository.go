package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"yatube/internal/config"
)

// PageCacheRedis keeps rendered listing pages for a short time.
type PageCacheRedis struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewPageCacheRedis(client *redis.Client, ttl time.Duration) *PageCacheRedis {
	return &PageCacheRedis{
		Client: client,
		TTL:    ttl,
		Prefix: "page:",
	}
}

// Get reports false without an error on a cache miss.
func (r *PageCacheRedis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := r.Client.Get(ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (r *PageCacheRedis) Set(ctx context.Context, key string, body []byte) error {
	return r.Client.Set(ctx, r.Prefix+key, body, r.TTL).Err()
}

// Clear drops every cached page.
func (r *PageCacheRedis) Clear(ctx context.Context) error {
	iter := r.Client.Scan(ctx, 0, r.Prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	config.Logger.Debug("Clearing page cache", zap.Int("keys", len(keys)))
	return r.Client.Del(ctx, keys...).Err()
}
