// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/danielhkuo/quickpoll/models"
)

// Publisher delivers change notifications after a write has committed.
type Publisher interface {
	Publish(ctx context.Context, event models.Event) error
	Close() error
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, models.Event) error { return nil }

func (Nop) Close() error { return nil }

// RedisPublisher publishes events as JSON on a Redis pub/sub channel.
type RedisPublisher struct {
	rdb     *goredis.Client
	channel string
}

// NewRedisPublisher connects to addr and verifies the connection.
func NewRedisPublisher(addr, channel string) (*RedisPublisher, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address required")
	}
	if channel == "" {
		channel = "quickpoll.events"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisPublisher{rdb: rdb, channel: channel}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, event models.Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return p.rdb.Publish(ctx, p.channel, raw).Err()
}

func (p *RedisPublisher) Close() error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}
