package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPublisher publishes status events on a Redis pub/sub channel.
type RedisPublisher struct {
	rdb     *goredis.Client
	channel string
}

// NewRedisPublisher connects to Redis and verifies it with a ping.
func NewRedisPublisher(ctx context.Context, addr, channel string, logger *zap.Logger) (*RedisPublisher, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if channel == "" {
		channel = "simulator-status"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("status publisher connected",
		zap.String("addr", addr), zap.String("channel", channel))

	return &RedisPublisher{rdb: rdb, channel: channel}, nil
}

func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}

type statusMessage struct {
	Event     string `json:"event"`
	Payload   any    `json:"payload,omitempty"`
	EmittedAt string `json:"emitted_at"`
}

// Publish sends one event on the configured channel.
func (p *RedisPublisher) Publish(ctx context.Context, event string, payload any) error {
	raw, err := json.Marshal(statusMessage{
		Event:     event,
		Payload:   payload,
		EmittedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal status message: %w", err)
	}
	return p.rdb.Publish(ctx, p.channel, raw).Err()
}
