package xredis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spinmall/backend/pkg/xcontext"
)

var ErrNil = redis.Nil

type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type redisClient struct {
	client *redis.Client
}

func NewClient(ctx context.Context) (Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: xcontext.Configs(ctx).Redis.Addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &redisClient{client: client}, nil
}

func (c *redisClient) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *redisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *redisClient) Del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}
