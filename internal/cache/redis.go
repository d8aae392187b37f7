package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/courtbooking/config"
	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps the active-courts listing warm for the public API. The
// time-slot configuration is deliberately not cached here: it must be
// re-read per request.
type RedisCache struct {
	client    *redis.Client
	courtsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, courtsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		courtsTTL: courtsTTL,
	}
}

func (c *RedisCache) GetActiveCourts(ctx context.Context) ([]domain.Court, error) {
	data, err := c.client.Get(ctx, courtsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var courts []domain.Court
	if err := json.Unmarshal(data, &courts); err != nil {
		return nil, err
	}
	return courts, nil
}

func (c *RedisCache) SetActiveCourts(ctx context.Context, courts []domain.Court) error {
	payload, err := json.Marshal(courts)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, courtsKey(), payload, c.courtsTTL).Err()
}

// InvalidateCourts drops the cached listing after any court mutation.
func (c *RedisCache) InvalidateCourts(ctx context.Context) error {
	return c.client.Del(ctx, courtsKey()).Err()
}

func courtsKey() string {
	return "cache:courts:active"
}
