package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/rizosfelices/pedidos-api/internal/application/analytics"
	"github.com/rizosfelices/pedidos-api/internal/application/dto"
)

// Ambas implementaciones satisfacen el puerto del dashboard.
var (
	_ analytics.StatsCache = (*RedisStatsCache)(nil)
	_ analytics.StatsCache = NoopStatsCache{}
)

// RedisStatsCache caché de dashboard sobre Redis.
type RedisStatsCache struct {
	client *redis.Client
}

// NewRedisStatsCache construye la caché con su propio cliente Redis.
func NewRedisStatsCache(addr, password string, db int) *RedisStatsCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStatsCache{client: client}
}

// Ping verifica la conexión.
func (c *RedisStatsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisStatsCache) Close() error {
	return c.client.Close()
}

func (c *RedisStatsCache) Get(ctx context.Context, key string) (*dto.DashboardStatsResponse, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var resp dto.DashboardStatsResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, false, err
	}
	return &resp, true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, key string, value *dto.DashboardStatsResponse, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
