package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-interview-crm/core/constants"
	"go-interview-crm/core/logger"

	"github.com/redis/go-redis/v9"
)

const scheduleSettingsTTL = 5 * time.Minute

type Cache struct {
	client *redis.Client
}

type CacheConfig struct {
	Addr     string
	Password string
	DB       int
}

func InitCache(cfg CacheConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Cache initialized successfully", "addr", cfg.Addr)
	return &Cache{client: client}, nil
}

// GetScheduleSettings returns the cached tenant scheduling settings, or nil on
// a miss. Cache failures degrade to a miss so the database stays the source
// of truth.
func (c *Cache) GetScheduleSettings(ctx context.Context) map[string]string {
	raw, err := c.client.Get(ctx, constants.CacheKeyScheduleSettings).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Cache:GetScheduleSettings:Error", "error", err)
		}
		return nil
	}

	var settings map[string]string
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		logger.Warn("Cache:GetScheduleSettings:Unmarshal", "error", err)
		return nil
	}
	return settings
}

func (c *Cache) SetScheduleSettings(ctx context.Context, settings map[string]string) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, constants.CacheKeyScheduleSettings, raw, scheduleSettingsTTL).Err(); err != nil {
		logger.Warn("Cache:SetScheduleSettings:Error", "error", err)
	}
}

func (c *Cache) InvalidateScheduleSettings(ctx context.Context) {
	if err := c.client.Del(ctx, constants.CacheKeyScheduleSettings).Err(); err != nil {
		logger.Warn("Cache:InvalidateScheduleSettings:Error", "error", err)
	}
}

// AddToTokenBlacklist marks a revoked token until its natural expiry.
func (c *Cache) AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	return c.client.Set(ctx, constants.CacheKeyTokenBlacklist+token, "1", ttl).Err()
}

func (c *Cache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	_, err := c.client.Get(ctx, constants.CacheKeyTokenBlacklist+token).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
