package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/spinmall/backend/pkg/xredis"
)

// MockRedisClient is an in-memory xredis.Client. It never expires keys; tests
// that care about invalidation delete explicitly through the code under test.
type MockRedisClient struct {
	mutex  sync.Mutex
	values map[string]string
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{values: make(map[string]string)}
}

func (c *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	value, ok := c.values[key]
	if !ok {
		return "", xredis.ErrNil
	}

	return value, nil
}

func (c *MockRedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.values[key] = value
	return nil
}

func (c *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, key := range keys {
		delete(c.values, key)
	}

	return nil
}
