// Package redis owns the optional Redis connection backing the audit trail.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lunchgate/internal/platform/config"
)

// Client wraps go-redis with a startup health check. A nil *Client means
// Redis is not configured; callers select another audit backend.
type Client struct {
	*redis.Client
}

// New connects using the configured URL and verifies the connection with a
// ping before handing it out. An empty URL yields (nil, nil).
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health reports whether the connection is still usable.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
