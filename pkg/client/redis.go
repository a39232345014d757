package client

import (
	"context"
	"time"

	"tripdesk/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	Client *redis.Client
}

func (c *Client) SetRedis(log *logger.Logger, addr, password string, db int, connTimeout time.Duration) {
	rc := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	if err := rc.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to ping Redis", "error", err, "addr", addr)
	}

	log.Info("Connected to Redis", "addr", addr)
	c.Redis = &RedisClient{Client: rc}
}

func (r *RedisClient) Close(log *logger.Logger) {
	if err := r.Client.Close(); err != nil {
		log.Error("Failed to close Redis connection", "error", err)
		return
	}
	log.Info("Redis connection closed")
}
