package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"taskly/pkg/config"
	"taskly/pkg/logger"
)

// Client wraps the Redis client used for the stats cache and the
// password-reset token store.
type Client struct {
	rdb *redis.Client
}

func NewClient(cfg *config.RedisConfig) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	if cfg.DB > 0 {
		opt.DB = cfg.DB
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("Redis connected", "url", cfg.URL)

	return &Client{rdb: rdb}, nil
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// ========== JSON cache helpers ==========

func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, expiration).Err()
}

// GetJSON returns redis.Nil when the key does not exist.
func (c *Client) GetJSON(ctx context.Context, key string, target interface{}) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// IsCacheMiss reports whether err is the missing-key sentinel.
func IsCacheMiss(err error) bool {
	return err == redis.Nil
}

// ========== Password reset tokens ==========

const resetTokenPrefix = "pwreset:"

// StoreResetToken maps a reset token to a user ID with a TTL.
func (c *Client) StoreResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	return c.rdb.Set(ctx, resetTokenPrefix+token, userID, ttl).Err()
}

// ConsumeResetToken returns the user ID for a token and deletes it, so a
// token can only be used once. Returns redis.Nil for unknown or expired
// tokens.
func (c *Client) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	key := resetTokenPrefix + token
	userID, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		logger.Warn("Failed to delete consumed reset token", "error", err)
	}
	return userID, nil
}
